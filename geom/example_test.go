package geom_test

import (
	"fmt"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleIntersect
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Cross two orthogonal lines and read back the single hit.
//	  a = (0,0)→(10,0)
//	  b = (5,-5)→(5,5)
//
// The classification debug entry distinguishes a tangent/single hit from a
// secant pair; here one point means "tangent_or_single".
func ExampleIntersect() {
	eps := epsilon.Default()
	a := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0})
	b := geom.Line(geom.Vec2{X: 5, Y: -5}, geom.Vec2{X: 5, Y: 5})

	set, r := geom.Intersect(a, b, eps)
	if r != nil {
		fmt.Println("error:", r.Code)
		return
	}
	fmt.Printf("points=%d ambiguous=%v\n", len(set.Points), set.Ambiguous)
	fmt.Printf("hit=(%.0f,%.0f)\n", set.Points[0].X, set.Points[0].Y)
	for _, kv := range set.Debug {
		if kv.Key == "classification" {
			fmt.Println("classification=" + kv.Value.(string))
		}
	}
	// Output:
	// points=1 ambiguous=false
	// hit=(5,0)
	// classification=tangent_or_single
}

// ExampleTrimLineToIntersection cuts the half of a line away from the pick
// point, bounded by an orthogonal cutter.
func ExampleTrimLineToIntersection() {
	eps := epsilon.Default()
	target := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0})
	cutter := geom.Line(geom.Vec2{X: 5, Y: -1}, geom.Vec2{X: 5, Y: 1})

	trimmed, r := geom.TrimLineToIntersection(target, cutter, geom.Vec2{X: 9, Y: 0}, eps, nil)
	if r != nil {
		fmt.Println("error:", r.Code)
		return
	}
	fmt.Printf("(%.0f,%.0f)→(%.0f,%.0f)\n", trimmed.A.X, trimmed.A.Y, trimmed.B.X, trimmed.B.Y)
	// Output:
	// (5,0)→(10,0)
}

// ExampleFilletLines rounds the corner between two perpendicular lines
// with a radius-2 arc.
func ExampleFilletLines() {
	eps := epsilon.Default()
	a := geom.Line(geom.Vec2{X: 0, Y: 10}, geom.Vec2{X: 0, Y: 0})
	b := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0})

	newA, arc, newB, r := geom.FilletLines(a, b, 2, eps)
	if r != nil {
		fmt.Println("error:", r.Code)
		return
	}
	fmt.Printf("a ends at (%.0f,%.0f)\n", newA.B.X, newA.B.Y)
	fmt.Printf("b starts at (%.0f,%.0f)\n", newB.A.X, newB.A.Y)
	fmt.Printf("arc r=%.0f\n", arc.R)
	// Output:
	// a ends at (0,2)
	// b starts at (2,0)
	// arc r=2
}
