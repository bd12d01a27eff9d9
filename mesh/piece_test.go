package mesh

import "github.com/pthm-cable/tacore/simtypes"

import "testing"

func TestMoveOperationCompletes(t *testing.T) {
	op := MoveOperation{Active: true, Target: simtypes.NewSimScalar(10), Speed: simtypes.NewSimScalar(2)}
	cur := simtypes.Zero
	var done bool
	for i := 0; i < 10 && !done; i++ {
		cur, done = op.Advance(cur, simtypes.One)
	}
	if !done {
		t.Fatal("expected move to complete")
	}
	if cur != simtypes.NewSimScalar(10) {
		t.Errorf("final offset = %v, want 10", cur.Float64())
	}
	if op.Active {
		t.Error("expected operation cleared after completion")
	}
}

func TestSetMoveNegatesXAxis(t *testing.T) {
	p := &PieceState{}
	p.SetMoveNow(AxisX, simtypes.NewSimScalar(5))
	if p.Offset.X != simtypes.NewSimScalar(-5) {
		t.Errorf("X offset = %v, want -5 (handedness correction)", p.Offset.X.Float64())
	}
}

func TestSetTurnNegatesZAxis(t *testing.T) {
	p := &PieceState{}
	p.SetTurnNow(AxisZ, simtypes.SimAngle(100))
	if p.Rotation[AxisZ] != simtypes.SimAngle(65436) { // -100 wrapped to 16 bits
		t.Errorf("Z rotation = %v, want 65436 (-100 wrapped)", p.Rotation[AxisZ])
	}
}

func TestSpinAdvancesRotation(t *testing.T) {
	p := &PieceState{}
	p.Spins[AxisY] = SpinOperation{Active: true, Target: simtypes.NewSimScalar(1), Accel: 0}
	delta := p.Spins[AxisY].Advance(simtypes.One)
	if delta == 0 {
		t.Error("expected nonzero rotation delta from an active spin")
	}
}
