package command

import (
	"sync"

	"github.com/google/uuid"

	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/nest"
	"github.com/teru1991/craftcad/reason"
)

// RunNestingInput is the preview payload for RunNesting: the
// job to (re)run and the search bounds to run it under.
type RunNestingInput struct {
	JobID  uuid.UUID
	Limits nest.RunLimits
}

func validateRunNesting(in RunNestingInput) *reason.Reason {
	if in.Limits.IterationLimit <= 0 && in.Limits.TimeLimitMS <= 0 {
		return reason.New(reason.EditInvalidNumeric).WithDebug("reason", "no_run_limit_given")
	}
	return nil
}

func buildRunNesting(in RunNestingInput) (Delta, *reason.Reason) {
	return &runNestingDelta{jobID: in.JobID, limits: in.Limits}, nil
}

// NewRunNestingCommand replaces a NestJob's result/trace with a fresh run
// of the nesting engine.
func NewRunNestingCommand() *Command[RunNestingInput] {
	return New(validateRunNesting, buildRunNesting)
}

type runNestingDelta struct {
	jobID  uuid.UUID
	limits nest.RunLimits

	mu        sync.Mutex
	cached    bool
	oldResult *model.NestResult
	oldTrace  *model.NestTrace
	newResult *model.NestResult
	newTrace  *model.NestTrace
}

func (d *runNestingDelta) sealed() {}

func (d *runNestingDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := doc.JobIndex(d.jobID.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("job_id", d.jobID.String())
	}

	if !d.cached {
		job := doc.Jobs[idx]
		res, trace, r := nest.Run(job, doc, d.limits)
		if r != nil {
			return r
		}
		d.oldResult = doc.Jobs[idx].Result
		d.oldTrace = doc.Jobs[idx].Trace
		d.newResult = res
		d.newTrace = trace
		d.cached = true
	}
	doc.Jobs[idx].Result = d.newResult
	doc.Jobs[idx].Trace = d.newTrace
	return nil
}

func (d *runNestingDelta) Revert(doc *model.Document) *reason.Reason {
	idx := doc.JobIndex(d.jobID.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("job_id", d.jobID.String())
	}
	doc.Jobs[idx].Result = d.oldResult
	doc.Jobs[idx].Trace = d.oldTrace
	return nil
}

// EditPlacementInput is the preview payload for EditPlacement:
// translate and/or rotate a single placement within a job's most
// recent nesting result.
type EditPlacementInput struct {
	JobID          uuid.UUID
	PlacementIndex int
	DX, DY         float64
	ToggleRotated  bool
}

func validateEditPlacement(in EditPlacementInput) *reason.Reason {
	if in.PlacementIndex < 0 {
		return reason.New(reason.EditInvalidNumeric).WithDebug("reason", "negative_placement_index")
	}
	return nil
}

func buildEditPlacement(in EditPlacementInput) (Delta, *reason.Reason) {
	return &editPlacementDelta{input: in}, nil
}

// NewEditPlacementCommand nudges a single placement's pose without
// re-running the nesting search. A placement's bounding box is derived
// from (x, y, rotated) and the part's inflated dimensions, so updating
// the pose is the whole edit; there is no stored bbox to refresh.
func NewEditPlacementCommand() *Command[EditPlacementInput] {
	return New(validateEditPlacement, buildEditPlacement)
}

type editPlacementDelta struct {
	input EditPlacementInput

	mu         sync.Mutex
	cached     bool
	oldX, oldY float64
	oldRotated bool
	newX, newY float64
	newRotated bool
}

func (d *editPlacementDelta) sealed() {}

func (d *editPlacementDelta) resolve(doc *model.Document) (jobIdx int, r *reason.Reason) {
	jobIdx = doc.JobIndex(d.input.JobID.String())
	if jobIdx < 0 {
		return -1, reason.New(reason.ModelReferenceNotFound).WithParam("job_id", d.input.JobID.String())
	}
	job := doc.Jobs[jobIdx]
	if job.Result == nil || d.input.PlacementIndex >= len(job.Result.Placements) {
		return -1, reason.New(reason.ModelReferenceNotFound).WithParam("placement_index", d.input.PlacementIndex)
	}
	return jobIdx, nil
}

func (d *editPlacementDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	jobIdx, r := d.resolve(doc)
	if r != nil {
		return r
	}
	p := &doc.Jobs[jobIdx].Result.Placements[d.input.PlacementIndex]
	if !d.cached {
		d.oldX, d.oldY, d.oldRotated = p.X, p.Y, p.Rotated
		d.newX, d.newY = p.X+d.input.DX, p.Y+d.input.DY
		d.newRotated = p.Rotated
		if d.input.ToggleRotated {
			d.newRotated = !d.newRotated
		}
		d.cached = true
	}
	p.X, p.Y, p.Rotated = d.newX, d.newY, d.newRotated
	return nil
}

func (d *editPlacementDelta) Revert(doc *model.Document) *reason.Reason {
	jobIdx, r := d.resolve(doc)
	if r != nil {
		return r
	}
	p := &doc.Jobs[jobIdx].Result.Placements[d.input.PlacementIndex]
	p.X, p.Y, p.Rotated = d.oldX, d.oldY, d.oldRotated
	return nil
}
