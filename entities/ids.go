// Package entities provides the generational keyed stores for units,
// features, projectiles and players (§3.2). Every cross-entity reference
// in the core is by ID, never by pointer, and every dereference is
// fallible — callers always get an (value, ok) pair back.
package entities

import "github.com/mlange-42/ark/ecs"

// UnitID, FeatureID and ProjectileID wrap ark's generational ecs.Entity
// handle, continuing the teacher's use of ecs.Entity as its generational
// organism identity (game/game.go's entityMapper.NewEntity returns
// ecs.Entity) rather than hand-rolling a second generational-index scheme.
type UnitID struct{ e ecs.Entity }
type FeatureID struct{ e ecs.Entity }
type ProjectileID struct{ e ecs.Entity }

// PlayerID is a small dense integer, per §3.2 — players live for the whole
// game and never need generational reuse protection.
type PlayerID uint8

// IsZero reports whether the ID was never assigned (the zero value of the
// wrapped ecs.Entity), useful for optional fields like a weapon's current
// target before any target has been acquired.
func (id UnitID) IsZero() bool      { return id.e == ecs.Entity{} }
func (id FeatureID) IsZero() bool   { return id.e == ecs.Entity{} }
func (id ProjectileID) IsZero() bool { return id.e == ecs.Entity{} }

// NewUnitID, NewFeatureID and NewProjectileID wrap a raw ecs.Entity handle
// returned by a Store's Insert, for the kernel (the only package that talks
// to Store directly) to hand back a domain ID to the rest of the engine.
func NewUnitID(e ecs.Entity) UnitID           { return UnitID{e} }
func NewFeatureID(e ecs.Entity) FeatureID     { return FeatureID{e} }
func NewProjectileID(e ecs.Entity) ProjectileID { return ProjectileID{e} }

// Raw unwraps the ID back to the ecs.Entity handle Store operations need.
func (id UnitID) Raw() ecs.Entity       { return id.e }
func (id FeatureID) Raw() ecs.Entity    { return id.e }
func (id ProjectileID) Raw() ecs.Entity { return id.e }
