package simtypes

import "math"

// SimAngle is an unsigned 16-bit wrapping angle: a full turn is 1<<16.
// All arithmetic wraps modulo 1<<16, so adding/subtracting angles never
// needs a manual normalization step.
type SimAngle uint16

// TaAngle is the VM-facing angle representation; it shares SimAngle's
// encoding exactly, so scripts and behavior code can pass values between
// the two without conversion loss.
type TaAngle = SimAngle

const fullTurn = 1 << 16

// Radians converts the angle to a SimScalar in radians, [0, 2π).
func (a SimAngle) Radians() SimScalar {
	return NewSimScalar(float64(a) / fullTurn * 2 * math.Pi)
}

// FromRadians builds a SimAngle from a SimScalar in radians, wrapping as
// needed.
func FromRadians(r SimScalar) SimAngle {
	turns := r.Float64() / (2 * math.Pi)
	v := int64(math.Round(turns * fullTurn))
	v %= fullTurn
	if v < 0 {
		v += fullTurn
	}
	return SimAngle(v)
}

// Add wraps modulo a full turn.
func (a SimAngle) Add(d SimAngle) SimAngle { return a + d }

// Sub wraps modulo a full turn.
func (a SimAngle) Sub(d SimAngle) SimAngle { return a - d }

// Delta returns the signed shortest-arc difference target-from, in
// [-32768, 32767], i.e. the direction and magnitude to turn `from` into
// `target` by the short way around.
func Delta(from, target SimAngle) int16 {
	return int16(target - from)
}

// TurnTowards advances `from` towards `target` by at most `rate` (unsigned
// magnitude per tick), taking the shortest arc. Used by both piece TURN
// operations and unit body steering.
func TurnTowards(from, target SimAngle, rate uint16) SimAngle {
	d := Delta(from, target)
	if d == 0 {
		return target
	}
	if d > 0 {
		if uint16(d) <= rate {
			return target
		}
		return from + SimAngle(rate)
	}
	neg := uint16(-d)
	if neg <= rate {
		return target
	}
	return from - SimAngle(rate)
}

// WithinTolerance reports whether the shortest-arc distance between a and b
// is within tol, used by the weapon FSM's aim-tolerance check.
func WithinTolerance(a, b SimAngle, tol uint16) bool {
	d := Delta(a, b)
	if d < 0 {
		d = -d
	}
	return uint16(d) <= tol
}
