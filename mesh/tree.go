package mesh

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// Tree is one unit's full set of piece states, indexed the same way as its
// UnitModelDefinition.Pieces.
type Tree struct {
	model  *entities.UnitModelDefinition
	Pieces []PieceState
}

// NewTree allocates a piece-state tree matching model's piece count.
func NewTree(model *entities.UnitModelDefinition) *Tree {
	return &Tree{
		model:  model,
		Pieces: make([]PieceState, len(model.Pieces)),
	}
}

// AdvanceTick steps every piece's in-progress operations by dt and returns
// the set of (piece, axis, kind) completions for the COB scheduler to wake
// waiting threads against.
type PieceCompletion struct {
	PieceID int
	CompletedOp
}

func (t *Tree) AdvanceTick(dt DT) []PieceCompletion {
	var out []PieceCompletion
	for i := range t.Pieces {
		for _, c := range t.Pieces[i].AdvanceTick(dt) {
			out = append(out, PieceCompletion{PieceID: i, CompletedOp: c})
		}
	}
	return out
}

// WorldTransform composes the translation+rotation chain from the root
// piece down to pieceID, combining each ancestor's authored Origin with its
// current animated Offset/Rotation — used only by the render-facing query
// surface (§6.3) and by synchronous COB piece-position queries, never by
// code that feeds computeHash.
func (t *Tree) WorldTransform(pieceID int) simtypes.Matrix4x {
	chain := []int{pieceID}
	for p := t.model.Pieces[pieceID].ParentID; p >= 0; p = t.model.Pieces[p].ParentID {
		chain = append(chain, p)
	}
	m := simtypes.Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		id := chain[i]
		local := simtypes.Translation(t.model.Pieces[id].Origin).
			Mul(simtypes.Translation(t.Pieces[id].Offset)).
			Mul(simtypes.AxisRotation(0, t.Pieces[id].Rotation[AxisX])).
			Mul(simtypes.AxisRotation(1, t.Pieces[id].Rotation[AxisY])).
			Mul(simtypes.AxisRotation(2, t.Pieces[id].Rotation[AxisZ]))
		m = m.Mul(local)
	}
	return m
}

// PiecePosition returns the piece's world-space origin, the value COB's
// PieceXZ/PieceY getters expose (§6.4).
func (t *Tree) PiecePosition(pieceID int) simtypes.SimVector {
	return t.WorldTransform(pieceID).MulVec3(simtypes.Vec(0, 0, 0))
}
