package simtypes

import "testing"

func TestFixedRoundTrip(t *testing.T) {
	inputs := []int32{0, 1, -1, 1 << 16, -(1 << 16), 123456, -987654, 1<<31 - 1}
	for _, raw := range inputs {
		s := FromFixed(raw)
		if got := ToFixed(s); got != raw {
			t.Errorf("ToFixed(FromFixed(%d)) = %d, want %d", raw, got, raw)
		}
	}
}

func TestScalarFromFixedRoundTrip(t *testing.T) {
	for _, v := range []SimScalar{Zero, One, Half, NewSimScalar(3.25), NewSimScalar(-12.5)} {
		got := FromFixed(ToFixed(v))
		if got != v {
			t.Errorf("FromFixed(ToFixed(%v)) = %v, want %v", v, got, v)
		}
	}
}

func TestMulDivIdentity(t *testing.T) {
	a := NewSimScalar(4)
	b := NewSimScalar(2)
	if got := a.Mul(b); got != NewSimScalar(8) {
		t.Errorf("4*2 = %v, want 8", got.Float64())
	}
	if got := a.Div(b); got != NewSimScalar(2) {
		t.Errorf("4/2 = %v, want 2", got.Float64())
	}
}

func TestDivByZero(t *testing.T) {
	if got := One.Div(Zero); got != Zero {
		t.Errorf("1/0 = %v, want 0 (tolerant)", got)
	}
}

func TestClamp(t *testing.T) {
	lo, hi := NewSimScalar(-1), NewSimScalar(1)
	if got := NewSimScalar(5).Clamp(lo, hi); got != hi {
		t.Errorf("clamp(5, -1, 1) = %v, want 1", got.Float64())
	}
	if got := NewSimScalar(-5).Clamp(lo, hi); got != lo {
		t.Errorf("clamp(-5, -1, 1) = %v, want -1", got.Float64())
	}
}
