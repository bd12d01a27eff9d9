package simtypes

// SimVector is a 3-component world-space vector; Y is elevation.
type SimVector struct {
	X, Y, Z SimScalar
}

// Vec builds a SimVector from three SimScalars.
func Vec(x, y, z SimScalar) SimVector { return SimVector{X: x, Y: y, Z: z} }

func (v SimVector) Add(o SimVector) SimVector {
	return SimVector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v SimVector) Sub(o SimVector) SimVector {
	return SimVector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v SimVector) Scale(s SimScalar) SimVector {
	return SimVector{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

// DistSqXZ returns the squared planar (X,Z) distance between v and o,
// used for the collision/range checks that deliberately avoid a sqrt.
func (v SimVector) DistSqXZ(o SimVector) SimScalar {
	dx := v.X - o.X
	dz := v.Z - o.Z
	return dx.Mul(dx) + dz.Mul(dz)
}

// DistXZ returns the planar distance between v and o.
func (v SimVector) DistXZ(o SimVector) SimScalar {
	return v.DistSqXZ(o).Sqrt()
}

// HeadingTo returns the SimAngle pointing from v to o in the XZ plane,
// matching the atan2(dest-pos).xz convention used by seek().
func (v SimVector) HeadingTo(o SimVector) SimAngle {
	dx := o.X - v.X
	dz := o.Z - v.Z
	return FromRadians(Atan2(dx, dz))
}

// PackXZ packs two Q16.16-truncated-to-16-bit-integer-part values into one
// 32-bit word the way PIECE_XZ-style COB getters do: low 16 bits hold x,
// high 16 bits hold z.
func PackXZ(x, z SimScalar) int32 {
	xi := int32(ToFixed(x)>>FixedShift) & 0xFFFF
	zi := int32(ToFixed(z)>>FixedShift) & 0xFFFF
	return xi | (zi << 16)
}

// UnpackXZ is the inverse of PackXZ, sign-extending each 16-bit half.
func UnpackXZ(packed int32) (x, z SimScalar) {
	xi := int16(packed & 0xFFFF)
	zi := int16((packed >> 16) & 0xFFFF)
	return NewSimScalar(float64(xi)), NewSimScalar(float64(zi))
}
