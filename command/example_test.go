package command_test

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/teru1991/craftcad/command"
	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/model"
)

// ExampleCommand walks the full begin/update/commit lifecycle for a line
// creation, applies the resulting delta, and reverts it.
func ExampleCommand() {
	eps := epsilon.Default()
	layerID := uuid.New()
	doc := &model.Document{
		SchemaVersion: model.SchemaVersion,
		ID:            uuid.New(),
		Units:         model.UnitsMM,
		Layers: []model.Layer{
			{ID: layerID, Name: "default", Visible: true, Editable: true},
		},
	}

	cmd := command.NewCreateLineCommand(eps)
	cmd.Begin()
	if r := cmd.Update(command.CreateEntityInput{
		LayerID: layerID,
		Geom:    geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0}),
	}); r != nil {
		fmt.Println("error:", r.Code)
		return
	}
	delta, r := cmd.Commit()
	if r != nil {
		fmt.Println("error:", r.Code)
		return
	}

	delta.Apply(doc)
	fmt.Printf("after apply: %d entities\n", len(doc.Entities))
	delta.Revert(doc)
	fmt.Printf("after revert: %d entities\n", len(doc.Entities))
	// Output:
	// after apply: 1 entities
	// after revert: 0 entities
}
