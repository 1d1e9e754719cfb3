package history

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/teru1991/craftcad/command"
	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/model"
)

func freshDoc() (*model.Document, uuid.UUID) {
	layerID := uuid.New()
	return &model.Document{
		SchemaVersion: model.SchemaVersion,
		ID:            uuid.New(),
		Units:         model.UnitsMM,
		Layers: []model.Layer{
			{ID: layerID, Name: "default", Visible: true, Editable: true},
		},
		Settings: model.Settings{Units: model.UnitsMM},
	}, layerID
}

func commitLine(t *testing.T, layerID uuid.UUID, a, b geom.Vec2) command.Delta {
	t.Helper()
	eps := epsilon.Default()
	cmd := command.NewCreateLineCommand(eps)
	cmd.Begin()
	require.Nil(t, cmd.Update(command.CreateEntityInput{LayerID: layerID, Geom: geom.Line(a, b)}))
	d, r := cmd.Commit()
	require.Nil(t, r)
	return d
}

func TestHistoryUndoRedoSingleDelta(t *testing.T) {
	doc, layerID := freshDoc()
	before := *doc
	h := New()

	d := commitLine(t, layerID, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0})
	require.Nil(t, d.Apply(doc))
	h.Push(d)
	require.Len(t, doc.Entities, 1)

	require.True(t, h.CanUndo())
	require.False(t, h.CanRedo())

	require.Nil(t, h.Undo(doc))
	require.Equal(t, before, *doc)
	require.False(t, h.CanUndo())
	require.True(t, h.CanRedo())

	require.Nil(t, h.Redo(doc))
	require.Len(t, doc.Entities, 1)
	require.True(t, h.CanUndo())
	require.False(t, h.CanRedo())
}

func TestHistoryPushInvalidatesRedoStack(t *testing.T) {
	doc, layerID := freshDoc()
	h := New()

	d1 := commitLine(t, layerID, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0})
	require.Nil(t, d1.Apply(doc))
	h.Push(d1)

	require.Nil(t, h.Undo(doc))
	require.True(t, h.CanRedo())

	d2 := commitLine(t, layerID, geom.Vec2{X: 5, Y: 5}, geom.Vec2{X: 6, Y: 5})
	require.Nil(t, d2.Apply(doc))
	h.Push(d2)

	require.False(t, h.CanRedo())
	require.Len(t, doc.Entities, 1)
}

// TestHistoryGroupUndo exercises the grouped-edit contract: begin group, create two
// lines, end group, undo once, and the document matches the pre-group state.
func TestHistoryGroupUndo(t *testing.T) {
	doc, layerID := freshDoc()
	before := *doc
	h := New()

	h.BeginGroup("draw two lines")
	require.True(t, h.InGroup())

	d1 := commitLine(t, layerID, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0})
	require.Nil(t, d1.Apply(doc))
	h.Push(d1)

	d2 := commitLine(t, layerID, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0, Y: 1})
	require.Nil(t, d2.Apply(doc))
	h.Push(d2)

	require.Len(t, doc.Entities, 2)
	h.EndGroup()
	require.False(t, h.InGroup())

	require.True(t, h.CanUndo())
	require.Nil(t, h.Undo(doc))
	require.Equal(t, before, *doc)
	require.False(t, h.CanUndo())

	require.Nil(t, h.Redo(doc))
	require.Len(t, doc.Entities, 2)
}

func TestHistoryEndGroupDiscardsEmptyGroup(t *testing.T) {
	h := New()
	h.BeginGroup("empty")
	h.EndGroup()
	require.False(t, h.CanUndo())
}

func TestHistoryBeginGroupIsNoOpWhenAlreadyOpen(t *testing.T) {
	doc, layerID := freshDoc()
	h := New()

	h.BeginGroup("outer")
	h.BeginGroup("inner")

	d := commitLine(t, layerID, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0})
	require.Nil(t, d.Apply(doc))
	h.Push(d)
	h.EndGroup()

	require.False(t, h.InGroup())
	require.True(t, h.CanUndo())
}
