package simtypes

import "gonum.org/v1/gonum/mat"

// Matrix4x is a 4x4 affine transform over SimScalar. Composition is done
// through gonum's mat.Dense in float64 space: these matrices compose piece
// world-transforms for the render-facing query surface (§6.3) and are never
// folded into computeHash, so float64 rounding noise between participants
// is harmless — only the per-axis SimScalar offset/rotation state that feeds
// the hash needs bit-exact arithmetic, and that stays on SimScalar/SimAngle
// throughout.
type Matrix4x struct {
	d *mat.Dense
}

// Identity returns the 4x4 identity transform.
func Identity() Matrix4x {
	d := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		d.Set(i, i, 1)
	}
	return Matrix4x{d: d}
}

// Translation returns a pure translation transform.
func Translation(v SimVector) Matrix4x {
	m := Identity()
	m.d.Set(0, 3, v.X.Float64())
	m.d.Set(1, 3, v.Y.Float64())
	m.d.Set(2, 3, v.Z.Float64())
	return m
}

// AxisRotation returns a rotation of `angle` about the given axis (0=X,1=Y,2=Z).
func AxisRotation(axis int, angle SimAngle) Matrix4x {
	return AxisRotationSinCos(axis, angle.Radians().Sin(), angle.Radians().Cos())
}

// AxisRotationSinCos builds a rotation matrix directly from a sin/cos pair,
// avoiding a redundant trig call when the caller already has both;
// AxisRotation is built on it.
func AxisRotationSinCos(axis int, sin, cos SimScalar) Matrix4x {
	m := Identity()
	s, c := sin.Float64(), cos.Float64()
	switch axis {
	case 0: // X
		m.d.Set(1, 1, c)
		m.d.Set(1, 2, -s)
		m.d.Set(2, 1, s)
		m.d.Set(2, 2, c)
	case 1: // Y
		m.d.Set(0, 0, c)
		m.d.Set(0, 2, s)
		m.d.Set(2, 0, -s)
		m.d.Set(2, 2, c)
	case 2: // Z
		m.d.Set(0, 0, c)
		m.d.Set(0, 1, -s)
		m.d.Set(1, 0, s)
		m.d.Set(1, 1, c)
	}
	return m
}

// AxisAngleRotation rotates by `angle` around an arbitrary normalized axis.
// Projectile tracking in the behavior package does not use it.
func AxisAngleRotation(axis SimVector, angle SimScalar) Matrix4x {
	x, y, z := axis.X.Float64(), axis.Y.Float64(), axis.Z.Float64()
	s, c := angle.Sin().Float64(), angle.Cos().Float64()
	t := 1 - c
	d := mat.NewDense(4, 4, []float64{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	})
	return Matrix4x{d: d}
}

// Mul composes m then o (o applied first): result = m * o.
func (m Matrix4x) Mul(o Matrix4x) Matrix4x {
	var r mat.Dense
	r.Mul(m.d, o.d)
	return Matrix4x{d: &r}
}

// MulVec3 treats v's fourth coordinate as 1, for affine transformation of a
// position (as opposed to a direction).
func (m Matrix4x) MulVec3(v SimVector) SimVector {
	in := mat.NewVecDense(4, []float64{v.X.Float64(), v.Y.Float64(), v.Z.Float64(), 1})
	var out mat.VecDense
	out.MulVec(m.d, in)
	return Vec(NewSimScalar(out.AtVec(0)), NewSimScalar(out.AtVec(1)), NewSimScalar(out.AtVec(2)))
}
