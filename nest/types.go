package nest

// RunLimits bounds one nesting search: a wall-clock budget and
// a cap on how many full packing iterations may run. At least one of the
// two should be set to a finite value; Run treats IterationLimit<=0 as 1.
type RunLimits struct {
	TimeLimitMS    int64
	IterationLimit int
}

type expandedCopy struct {
	partID      string
	w, h        float64
	allowRotate bool
}

type sheetInstance struct {
	defIndex int
	width    float64
	height   float64
	cx, cy   float64
	rowH     float64
}

type placementAttempt struct {
	partID     string
	sheetIndex int
	x, y       float64
	rotated    bool
	placed     bool
	failCode   string
}

type iterationResult struct {
	placements []placementAttempt
	score      float64
	sheetsUsed int
	util       []float64
}
