// Package mesh holds per-unit piece state: each piece's current offset and
// rotation, and its in-progress move/turn/spin operations, advanced one
// tick's delta at a time (§3.6, §4.3.4).
package mesh

import "github.com/pthm-cable/tacore/simtypes"

// Axis selects one of a piece's three translation/rotation axes. Encoding
// matches the COB opcode set exactly: 0=X, 1=Y, 2=Z.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	numAxes
)

// DT is the fixed per-tick delta time used by every piece-operation advance,
// derived from the kernel's configured milliseconds-per-tick.
type DT = simtypes.SimScalar

// MoveOperation advances a piece axis offset linearly towards Target at
// Speed units/second; Active is false once it has been applied (cleared).
type MoveOperation struct {
	Active bool
	Target simtypes.SimScalar
	Speed  simtypes.SimScalar
}

// Advance moves `current` towards Target by Speed*dt, clamping on overshoot.
// Returns the new current offset and whether the operation just completed.
func (m *MoveOperation) Advance(current simtypes.SimScalar, dt DT) (simtypes.SimScalar, bool) {
	if !m.Active {
		return current, false
	}
	step := m.Speed.Mul(dt)
	if current < m.Target {
		current = current.Add(step)
		if current >= m.Target {
			current = m.Target
		}
	} else {
		current = current.Sub(step)
		if current <= m.Target {
			current = m.Target
		}
	}
	done := current == m.Target
	if done {
		m.Active = false
	}
	return current, done
}

// TurnOperation advances a piece axis rotation towards Target at Speed
// (unsigned, per-second) along the shortest arc, wrapping as needed.
type TurnOperation struct {
	Active bool
	Target simtypes.SimAngle
	Speed  simtypes.SimScalar
}

// Advance turns `current` towards Target by Speed*dt (converted to the
// SimAngle unit scale by the caller's rate pre-computation), returning the
// new angle and whether the operation just completed.
func (t *TurnOperation) Advance(current simtypes.SimAngle, dt DT) (simtypes.SimAngle, bool) {
	if !t.Active {
		return current, false
	}
	rate := uint16(t.Speed.Mul(dt).Float64())
	next := simtypes.TurnTowards(current, t.Target, rate)
	done := next == t.Target
	if done {
		t.Active = false
	}
	return next, done
}

// SpinOperation accelerates a piece's angular velocity from Current towards
// Target by Accel*dt each tick (or snaps instantly if Accel == 0), and the
// piece's rotation advances by Current*dt every tick regardless of whether
// the spin has reached its target.
type SpinOperation struct {
	Active  bool
	Current simtypes.SimScalar
	Target  simtypes.SimScalar
	Accel   simtypes.SimScalar
}

// Advance steps the spin's angular velocity and returns the rotation delta
// to apply this tick.
func (s *SpinOperation) Advance(dt DT) simtypes.SimAngle {
	if !s.Active {
		return 0
	}
	if s.Accel == 0 {
		s.Current = s.Target
	} else if s.Current < s.Target {
		s.Current = s.Current.Add(s.Accel.Mul(dt))
		if s.Current > s.Target {
			s.Current = s.Target
		}
	} else if s.Current > s.Target {
		s.Current = s.Current.Sub(s.Accel.Mul(dt))
		if s.Current < s.Target {
			s.Current = s.Target
		}
	}
	return simtypes.FromRadians(s.Current.Mul(dt))
}

// StopSpinOperation decelerates a spin's current angular velocity to zero,
// then clears.
type StopSpinOperation struct {
	Active bool
	Decel  simtypes.SimScalar
}

// Advance decelerates `current` towards zero, returning the new angular
// velocity and whether the stop has completed (current reached zero).
func (s *StopSpinOperation) Advance(current simtypes.SimScalar, dt DT) (simtypes.SimScalar, bool) {
	if !s.Active {
		return current, false
	}
	if current > 0 {
		current = current.Sub(s.Decel.Mul(dt))
		if current < 0 {
			current = 0
		}
	} else if current < 0 {
		current = current.Add(s.Decel.Mul(dt))
		if current > 0 {
			current = 0
		}
	}
	done := current == 0
	if done {
		s.Active = false
	}
	return current, done
}

// PieceState is one piece's animatable transform plus its in-progress
// operations on each axis.
type PieceState struct {
	Offset   simtypes.SimVector
	Rotation [numAxes]simtypes.SimAngle

	Moves     [numAxes]MoveOperation
	Turns     [numAxes]TurnOperation
	Spins     [numAxes]SpinOperation
	StopSpins [numAxes]StopSpinOperation

	Hidden bool
	Shaded bool
}

func axisField(v simtypes.SimVector, a Axis) simtypes.SimScalar {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

func setAxisField(v *simtypes.SimVector, a Axis, val simtypes.SimScalar) {
	switch a {
	case AxisX:
		v.X = val
	case AxisY:
		v.Y = val
	default:
		v.Z = val
	}
}

// CompletedOp names one (axis, kind) operation that finished during
// AdvanceTick, so the VM scheduler can wake threads blocked on it.
type CompletedOp struct {
	Axis Axis
	Move bool
	Turn bool
}

// AdvanceTick steps every in-progress operation on this piece by one
// tick's dt and reports which (axis, kind) operations completed this tick.
// The X-axis move and Z-axis turn handedness correction is applied when an
// operation is started (SetMove, SetTurn), not here.
func (p *PieceState) AdvanceTick(dt DT) []CompletedOp {
	var completed []CompletedOp
	for a := Axis(0); a < numAxes; a++ {
		cur := axisField(p.Offset, a)
		next, done := p.Moves[a].Advance(cur, dt)
		setAxisField(&p.Offset, a, next)
		if done {
			completed = append(completed, CompletedOp{Axis: a, Move: true})
		}

		curR := p.Rotation[a]
		nextR, doneT := p.Turns[a].Advance(curR, dt)
		p.Rotation[a] = nextR
		if doneT {
			completed = append(completed, CompletedOp{Axis: a, Turn: true})
		}

		if p.Spins[a].Active {
			p.Rotation[a] = p.Rotation[a].Add(p.Spins[a].Advance(dt))
		}
		if p.StopSpins[a].Active {
			next, stopped := p.StopSpins[a].Advance(p.Spins[a].Current, dt)
			p.Spins[a].Current = next
			if stopped {
				p.Spins[a].Active = false
			}
		}
	}
	return completed
}

// SetMove starts a MOVE operation on the given axis, negating the target
// position for the X axis per the authored-in-a-left-handed-system
// correction in §4.3.2.
func (p *PieceState) SetMove(a Axis, target, speed simtypes.SimScalar) {
	if a == AxisX {
		target = target.Neg()
	}
	p.Moves[a] = MoveOperation{Active: true, Target: target, Speed: speed}
}

// SetMoveNow sets the axis offset instantly, with the same X-axis
// correction as SetMove.
func (p *PieceState) SetMoveNow(a Axis, target simtypes.SimScalar) {
	if a == AxisX {
		target = target.Neg()
	}
	setAxisField(&p.Offset, a, target)
	p.Moves[a] = MoveOperation{}
}

// SetTurn starts a TURN operation on the given axis, negating the target
// angle for the Z axis per §4.3.2.
func (p *PieceState) SetTurn(a Axis, target simtypes.SimAngle, speed simtypes.SimScalar) {
	if a == AxisZ {
		target = -target
	}
	p.Turns[a] = TurnOperation{Active: true, Target: target, Speed: speed}
}

// SetTurnNow sets the axis rotation instantly, with the Z-axis correction.
func (p *PieceState) SetTurnNow(a Axis, target simtypes.SimAngle) {
	if a == AxisZ {
		target = -target
	}
	p.Rotation[a] = target
	p.Turns[a] = TurnOperation{}
}
