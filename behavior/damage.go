package behavior

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// ArmorClassOf resolves the armor class used to look up a weapon's damage
// table entry. UnitState carries no separate armor-class field, so this is
// always the unit's type name, for content that keys damage tables by unit
// type directly.
func ArmorClassOf(u *entities.UnitState) string {
	return u.Type
}

// ApplyDamage applies one weapon hit to a single unit at full force (§4.1
// applyDamage): looks up the weapon's damage for the target's armor class,
// subtracts it, clamps health, and emits a death event when it crosses zero
// while not under construction.
func ApplyDamage(self entities.UnitID, u *entities.UnitState, wd *entities.WeaponDefinition, w World) {
	applyScaledDamage(self, u, wd, simtypes.One, w)
}

// applyScaledDamage is ApplyDamage with the weapon's tabulated damage
// multiplied by scale before it is subtracted, the shared path ApplyDamage
// and ApplyDamageInRadius's falloff both funnel through.
func applyScaledDamage(self entities.UnitID, u *entities.UnitState, wd *entities.WeaponDefinition, scale simtypes.SimScalar, w World) {
	if wd == nil || u.IsDead() {
		return
	}
	dmg := wd.DamageFor(ArmorClassOf(u))
	if dmg == 0 {
		return
	}
	scaled := int32(simtypes.NewSimScalar(float64(dmg)).Mul(scale).Float64())
	if scaled == 0 {
		return
	}
	u.HitPoints -= scaled
	u.ClampHealth()
	if u.IsDead() {
		deathType := entities.DeathNormalExploded
		if u.Position.Y.LessThan(w.SeaLevel()) {
			deathType = entities.DeathWaterExploded
		}
		w.EmitEvent(entities.Event{Kind: entities.EventUnitDied, Unit: self, Position: u.Position, DeathType: deathType})
	}
}

// ApplyDamageInRadius applies a splash hit to every unit whose position
// lies within radius of center (§4.1 applyDamageInRadius). Damage scales
// linearly by `clamp(1 - dist/radius, 0, 1)`, matching the source engine's
// `damageScale` (original_source/src/rwe/sim/GameSimulation.cpp:1159,1183)
// so a hit at the blast's edge tapers to near zero instead of landing at
// full force.
func ApplyDamageInRadius(center simtypes.SimVector, radius simtypes.SimScalar, wd *entities.WeaponDefinition, w World, each func(func(entities.UnitID, *entities.UnitState))) {
	if wd == nil || radius.Float64() <= 0 {
		return
	}
	each(func(id entities.UnitID, u *entities.UnitState) {
		dist := u.Position.DistXZ(center)
		if dist.GreaterThan(radius) {
			return
		}
		scale := simtypes.One.Sub(dist.Div(radius)).Clamp(simtypes.Zero, simtypes.One)
		applyScaledDamage(id, u, wd, scale, w)
	})
}
