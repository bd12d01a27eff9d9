package simtypes

import "testing"

func TestAngleWrap(t *testing.T) {
	a := SimAngle(60000)
	got := a.Add(10000)
	if got != SimAngle(4464) { // 60000+10000 = 70000, wraps mod 65536 -> 4464
		t.Errorf("wrap add = %v, want 4464", got)
	}
}

func TestTurnTowardsShortestArc(t *testing.T) {
	from := SimAngle(0)
	target := SimAngle(65000) // close to 0 going backwards
	got := TurnTowards(from, target, 1000)
	// shortest arc is backwards (536 units), within the 1000 rate, so we land exactly on target.
	if got != target {
		t.Errorf("TurnTowards short step = %v, want %v", got, target)
	}
}

func TestTurnTowardsClampsToRate(t *testing.T) {
	from := SimAngle(0)
	target := SimAngle(32768) // half turn away; Delta reports it as -32768, so the turn runs backwards
	got := TurnTowards(from, target, 100)
	if got != SimAngle(65436) { // 0 - 100, wrapped
		t.Errorf("TurnTowards clamp = %v, want 65436", got)
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(SimAngle(10), SimAngle(20), 15) {
		t.Error("expected within tolerance")
	}
	if WithinTolerance(SimAngle(10), SimAngle(200), 15) {
		t.Error("expected not within tolerance")
	}
}

func TestPackedCoordsRoundTrip(t *testing.T) {
	for _, x := range []int16{0, 1, -1, 32767, -32768, 1234, -4321} {
		for _, z := range []int16{0, 5, -5, 32767, -32768} {
			packed := PackXZ(NewSimScalar(float64(x)), NewSimScalar(float64(z)))
			gotX, gotZ := UnpackXZ(packed)
			if int16(gotX.Float64()) != x || int16(gotZ.Float64()) != z {
				t.Errorf("unpack(pack(%d,%d)) = (%v,%v)", x, z, gotX.Float64(), gotZ.Float64())
			}
		}
	}
}
