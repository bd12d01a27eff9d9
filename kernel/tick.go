package kernel

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/tacore/behavior"
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/pathreq"
	"github.com/pthm-cable/tacore/simtypes"
	"github.com/pthm-cable/tacore/spatial"
)

// VictoryCondition reports whether the game has ended, and who survives.
type VictoryCondition func(k *Kernel) (over bool, winner entities.PlayerID)

// Tick advances the simulation by exactly one tick, in the fixed order
// §4.1 requires: gameTime, resource cycling, pathfinding service, per-unit
// behavior, projectile integration, victory check (commander-death cascade
// folded in), garbage collection, deferred unit-creation commit.
func (k *Kernel) Tick(victory VictoryCondition) (over bool, winner entities.PlayerID) {
	k.gameTime++
	k.tickCount++

	if k.cfg.ResourceTickHz > 0 && k.tickCount%k.cfg.ResourceTickHz == 0 {
		for _, id := range k.playerOrder {
			k.players[id].CommitResourceCycle()
			k.players[id].BeginResourceCycle()
		}
	}

	k.serviceOnePathRequest()

	dt := simtypes.NewSimScalar(float64(k.cfg.MsPerTick) / 1000.0)
	k.updateUnits(dt)
	k.updateProjectiles(dt)

	k.processCommanderDeaths()
	if victory != nil {
		over, winner = victory(k)
	}

	k.garbageCollect()
	k.commitDeferredCreations()
	return
}

func (k *Kernel) serviceOnePathRequest() {
	if k.planner == nil {
		return
	}
	k.pathQueue.ServiceOne(
		k.planner,
		func(id entities.UnitID) simtypes.SimVector {
			u, _ := k.GetUnit(id)
			if u == nil {
				return simtypes.SimVector{}
			}
			return u.Position
		},
		func(id entities.UnitID) simtypes.SimVector {
			u, _ := k.GetUnit(id)
			if u == nil {
				return simtypes.SimVector{}
			}
			return u.Navigation.DesiredDestination
		},
		func(id entities.UnitID, path *pathreq.UnitPath) {
			k.paths[id.Raw()] = path
		},
	)
}

func (k *Kernel) updateUnits(dt simtypes.SimScalar) {
	k.units.Each(func(e ecs.Entity, u *entities.UnitState) {
		id := entities.NewUnitID(e)
		if tree, ok := k.meshTrees[e]; ok {
			completions := tree.AdvanceTick(dt)
			if env, ok := k.cobEnvs[e]; ok {
				for _, c := range completions {
					env.WakePieceOp(c.PieceID, int(c.Axis), c.Move, c.Turn)
				}
			}
		}
		if env, ok := k.cobEnvs[e]; ok {
			env.RunUnitCobScripts(int64(k.gameTime))
		}
		if u.IsBeingBuilt() {
			return
		}
		behavior.Update(id, u, k, dt)
	})
}

// ballisticGravityPerTick is §4.5's constant `112/(30*30)` world-units of
// downward velocity added per tick for Ballistic projectiles.
var ballisticGravityPerTick = simtypes.NewSimScalar(112.0 / (30.0 * 30.0))

// projectileHitDistance is how close a tracking/line-of-sight projectile
// must come to its target's position (planar) before it's treated as a
// direct hit, standing in for the target's bounding-box test §4.5's
// "unit/feature/building cell occupancy" step performs via the grid for
// ground collision.
const projectileHitDistance = 4.0

func (k *Kernel) updateProjectiles(dt simtypes.SimScalar) {
	k.projectiles.Each(func(e ecs.Entity, p *entities.Projectile) {
		id := entities.NewProjectileID(e)

		if k.gameTime >= p.DieOnFrame && p.DieOnFrame != 0 {
			k.projectileImpact(id, p, entities.ProjectileDeathEndOfLife)
			return
		}

		k.applyProjectilePhysics(p)

		p.PrevPosition = p.Position
		p.Position = p.Position.Add(p.Velocity.Scale(dt))

		k.collideProjectile(id, p)
	})
}

// applyProjectilePhysics mutates p.Velocity for one tick per its physics
// variant (§4.5 step 2). LineOfSight is a no-op: its velocity never
// changes after launch.
func (k *Kernel) applyProjectilePhysics(p *entities.Projectile) {
	switch p.PhysicsKind {
	case entities.ProjectileBallistic:
		p.Velocity.Y = p.Velocity.Y.Sub(ballisticGravityPerTick)
	case entities.ProjectileTracking:
		k.turnProjectileTowardTarget(p)
	}
}

// turnProjectileTowardTarget rotates p.Velocity's heading and pitch toward
// the target by up to TrackingTurnRate, preserving speed. Expressed as two
// independent TurnTowards calls (heading in the XZ plane, pitch against
// horizontal speed) rather than the spec's axis-angle cross-product
// rotation, which the engine's existing heading/pitch primitives (the same
// ones ground steering uses) already express without needing a quaternion
// type nowhere else in the codebase needs.
func (k *Kernel) turnProjectileTowardTarget(p *entities.Projectile) {
	if !p.HasTargetUnit {
		return
	}
	target, ok := k.GetUnit(p.TargetUnit)
	if !ok {
		return
	}

	speed := vectorLength(p.Velocity)
	if speed.Float64() == 0 {
		return
	}
	rate := uint16(simtypes.FromRadians(p.TrackingTurnRate))

	curHeading := simtypes.SimVector{}.HeadingTo(p.Velocity)
	desiredHeading := p.Position.HeadingTo(target.Position)
	newHeading := simtypes.TurnTowards(curHeading, desiredHeading, rate)

	horizSpeed := vectorLength(simtypes.Vec(p.Velocity.X, simtypes.Zero, p.Velocity.Z))
	curPitch := simtypes.FromRadians(simtypes.Atan2(p.Velocity.Y, horizSpeed))
	horizDist := p.Position.DistXZ(target.Position)
	desiredPitch := simtypes.FromRadians(simtypes.Atan2(target.Position.Y.Sub(p.Position.Y), horizDist))
	newPitch := simtypes.TurnTowards(curPitch, desiredPitch, rate)

	newHorizSpeed := speed.Mul(newPitch.Radians().Cos())
	p.Velocity = simtypes.Vec(
		newHorizSpeed.Mul(newHeading.Radians().Sin()),
		speed.Mul(newPitch.Radians().Sin()),
		newHorizSpeed.Mul(newHeading.Radians().Cos()),
	)
}

// collideProjectile runs the §4.5 step-4 collision priority: out-of-map,
// sea surface, terrain, unit/feature/building occupancy, then flying-unit
// bounding boxes. The first match wins; everything after it is skipped for
// this tick.
func (k *Kernel) collideProjectile(id entities.ProjectileID, p *entities.Projectile) {
	cx, cz := terrainCell(p.Position)
	if !k.terrain.Height.InBounds(cx, cz) {
		k.projectiles.Remove(id.Raw())
		return
	}

	groundY := k.TerrainHeight(p.Position)
	seaLevel := k.SeaLevel()

	if !p.Position.Y.GreaterThan(seaLevel) && groundY.LessThan(seaLevel) {
		k.applyProjectileDamage(p)
		k.projectileImpact(id, p, entities.ProjectileDeathWaterImpact)
		return
	}

	if p.Position.Y.LessThan(groundY) {
		if p.GroundBounce {
			p.Velocity.Y = simtypes.Zero
			p.Position.Y = groundY
			return
		}
		k.applyProjectileDamage(p)
		k.projectileImpact(id, p, entities.ProjectileDeathNormalImpact)
		return
	}

	if cell := k.occupancy.At(cx, cz); cell.Kind != spatial.OccupiedNone {
		hit := false
		if cell.Kind == spatial.OccupiedUnitKind {
			if u, ok := k.GetUnit(cell.Unit); ok && u.Owner != p.Owner {
				hit = true
			}
		} else {
			hit = true
		}
		if hit {
			k.applyProjectileDamage(p)
			k.projectileImpact(id, p, entities.ProjectileDeathNormalImpact)
			return
		}
	}

	if p.HasTargetUnit {
		if target, ok := k.GetUnit(p.TargetUnit); ok && target.Flying && target.Owner != p.Owner {
			if p.Position.DistXZ(target.Position).Float64() < projectileHitDistance &&
				p.Position.Y.Sub(target.Position.Y).Abs().Float64() < projectileHitDistance {
				k.applyProjectileDamage(p)
				k.projectileImpact(id, p, entities.ProjectileDeathNormalImpact)
			}
		}
	}
}

func vectorLength(v simtypes.SimVector) simtypes.SimScalar {
	return v.X.Mul(v.X).Add(v.Y.Mul(v.Y)).Add(v.Z.Mul(v.Z)).Sqrt()
}

func (k *Kernel) applyProjectileDamage(p *entities.Projectile) {
	wd, ok := k.content.Weapons[p.WeaponType]
	if !ok {
		return
	}
	behavior.ApplyDamageInRadius(p.Position, p.DamageRadius, wd, k, func(fn func(entities.UnitID, *entities.UnitState)) {
		k.units.Each(func(e ecs.Entity, u *entities.UnitState) {
			fn(entities.NewUnitID(e), u)
		})
	})
}

func (k *Kernel) projectileImpact(id entities.ProjectileID, p *entities.Projectile, deathType entities.ProjectileDeathKind) {
	k.events = append(k.events, entities.Event{Kind: entities.EventProjectileDied, Projectile: id, Position: p.Position, ProjDeath: deathType})
	k.projectiles.Remove(id.Raw())
}

// processCommanderDeaths is §4.1 step 6's commander-death cascade, grounded
// on original_source/src/rwe/sim/GameSimulation.cpp's
// processVictoryCondition/killPlayer: any player whose commander unit died
// this tick is marked Dead, and every remaining unit it owns is killed in
// the same pass, so garbageCollect's following step-7 sweep collects all of
// them in one tick rather than trickling out over several.
func (k *Kernel) processCommanderDeaths() {
	newlyDead := make(map[entities.PlayerID]bool)
	k.units.Each(func(e ecs.Entity, u *entities.UnitState) {
		if !u.IsDead() {
			return
		}
		def, ok := k.content.Units[u.Type]
		if !ok || !def.Commander {
			return
		}
		if p, ok := k.players[u.Owner]; ok && p.Status == entities.PlayerAlive {
			newlyDead[u.Owner] = true
		}
	})
	if len(newlyDead) == 0 {
		return
	}
	for owner := range newlyDead {
		k.players[owner].Status = entities.PlayerDead
	}
	k.units.Each(func(e ecs.Entity, u *entities.UnitState) {
		if !newlyDead[u.Owner] || u.IsDead() {
			return
		}
		u.HitPoints = 0
		u.ClampHealth()
		deathType := entities.DeathNormalExploded
		if u.Position.Y.LessThan(k.SeaLevel()) {
			deathType = entities.DeathWaterExploded
		}
		k.events = append(k.events, entities.Event{
			Kind: entities.EventUnitDied, Unit: entities.NewUnitID(e),
			Position: u.Position, DeathType: deathType,
		})
	})
}

// garbageCollect removes dead units (§8 property 3) and clears their
// occupancy footprint.
func (k *Kernel) garbageCollect() {
	var dead []ecs.Entity
	k.units.Each(func(e ecs.Entity, u *entities.UnitState) {
		if !u.IsDead() {
			return
		}
		dead = append(dead, e)
		def, ok := k.content.Units[u.Type]
		fx, fz := 1, 1
		if ok {
			fx, fz = def.MovementCollisionInfo()
		}
		cx, cz := terrainCell(u.Position)
		k.occupancy.ClearRegion(footprintRegion(cx, cz, fx, fz))
	})
	for _, e := range dead {
		delete(k.meshTrees, e)
		delete(k.cobEnvs, e)
		delete(k.paths, e)
		k.units.Remove(e)
	}
}

// creationRequest is one unit-creation request queued during this tick's
// per-unit behavior pass, awaiting commitDeferredCreations (§4.1 step 8).
type creationRequest struct {
	requester entities.UnitID
	unitType  string
	owner     entities.PlayerID
	pos       simtypes.SimVector
	rot       simtypes.SimAngle
}

// commitDeferredCreations resolves every request queued this tick, strictly
// after the per-unit behavior loop and garbage collection have finished, so
// a newly inserted unit never aliases the ecs.Map a k.units.Each call is
// mid-iteration over (§4.1 step 8, §4.2.3).
func (k *Kernel) commitDeferredCreations() {
	pending := k.creationQueue
	k.creationQueue = nil
	for _, req := range pending {
		id, ok := k.tryAddUnit(req.unitType, req.owner, req.pos, req.rot)
		status := entities.CreationDone
		if !ok {
			status = entities.CreationFailed
		}
		k.resolveCreationRequest(req.requester, id, status)
	}
}

// resolveCreationRequest writes a creation outcome back into whichever
// per-unit tracking field submitted the request: a factory's CreatingUnit
// slot, or a builder's direct BuildOrder tracking fields.
func (k *Kernel) resolveCreationRequest(requester entities.UnitID, result entities.UnitID, status entities.CreationStatus) {
	u, ok := k.units.Get(requester.Raw())
	if !ok {
		return
	}
	if u.Factory != nil && u.Factory.Kind == entities.FactoryCreatingUnit {
		u.Factory.CreatingStatus = status
		if status == entities.CreationDone {
			u.Factory.CreatingResultUnit = result
		}
		return
	}
	u.BuildRequestStatus = status
	if status == entities.CreationDone {
		u.BuildOrderUnitID = result
	}
}
