package behavior

import (
	"github.com/pthm-cable/tacore/cob"
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// Update runs one unit's full per-tick pipeline (§4.2 steps 1-8): clear
// transient steering, pump orders, update weapons and factory state, drive
// navigation into steering, apply steering to produce a candidate position
// with collision retry, and handle the ground/air physics transitions.
func Update(self entities.UnitID, u *entities.UnitState, w World, dt simtypes.SimScalar) {
	env, _ := w.COBEnv(self)

	u.PrevPosition = u.Position
	u.PrevRotation = u.Rotation

	if u.Physics.Kind == entities.PhysicsGround {
		u.Physics.Steering = entities.SteeringInfo{}
	}

	PumpOrders(self, u, w)
	UpdateWeapons(self, u, w, env)
	if u.Factory != nil {
		UpdateFactory(self, u, w)
	}

	def, _ := w.UnitDefinition(u.Type)

	switch u.Physics.Kind {
	case entities.PhysicsGround:
		updateGroundMovement(self, u, w, def, dt)
	case entities.PhysicsAir:
		updateAirMovement(self, u, w, def, dt)
	}

	updateSeaLevelTransition(self, u, w, env)
}

func updateGroundMovement(self entities.UnitID, u *entities.UnitState, w World, def *entities.UnitDefinition, dt simtypes.SimScalar) {
	maxSpeed, accel, brake, turnRate := movementParamsFor(def)

	if u.Navigation.HasPath {
		result := FollowPath(u.Position, &u.Navigation, maxSpeed, u.Physics.CurrentSpeed, brake)
		if !result.Complete {
			u.Physics.Steering = result.Steering
		}
	}

	candidatePos, newHeading, newSpeed := ApplySteering(
		u.Position, u.Rotation, u.Physics.Steering, u.Physics.CurrentSpeed,
		turnRate, accel, brake, dt,
	)

	fx, fz := 1, 1
	if def != nil {
		fx, fz = def.MovementCollisionInfo()
	}
	moved := w.MoveOccupancy(self, u.Position, candidatePos, fx, fz)
	if !moved {
		// Retry each single-axis component of the move, keeping the first
		// one whose footprint is clear.
		for _, alt := range []simtypes.SimVector{
			simtypes.Vec(candidatePos.X, candidatePos.Y, u.Position.Z),
			simtypes.Vec(u.Position.X, candidatePos.Y, candidatePos.Z),
		} {
			if w.MoveOccupancy(self, u.Position, alt, fx, fz) {
				candidatePos, moved = alt, true
				break
			}
		}
	}
	if moved {
		u.Position = candidatePos
		u.Rotation = newHeading
		u.Physics.CurrentSpeed = newSpeed
		u.InCollision = false
	} else {
		u.Rotation = newHeading
		u.Physics.CurrentSpeed = simtypes.Zero
		u.InCollision = true
	}

	if def != nil && def.CanFly && u.Physics.TryTakeOff() {
		w.EmitEvent(entities.Event{Kind: entities.EventUnitActivated, Unit: self})
	}
}

func updateAirMovement(self entities.UnitID, u *entities.UnitState, w World, def *entities.UnitDefinition, dt simtypes.SimScalar) {
	maxSpeed, accel, _, turnRate := movementParamsFor(def)

	switch u.Physics.Air.Kind {
	case entities.AirTakingOff:
		cruise := simtypes.NewSimScalar(16)
		if def != nil {
			cruise = simtypes.NewSimScalar(def.CruiseAltitude)
		}
		cruiseY := w.TerrainHeight(u.Position).Add(cruise)
		u.Position.Y = u.Position.Y.Add(accel.Mul(dt))
		if u.Position.Y.GreaterThan(cruiseY) {
			u.Position.Y = cruiseY
			u.Physics.Air.Kind = entities.AirFlying
		}

	case entities.AirFlying:
		if u.Physics.Air.HasTargetPosition {
			steering := Seek(u.Position, u.Physics.Air.TargetPosition, maxSpeed)
			newPos, newHeading, newSpeed := ApplySteering(u.Position, u.Rotation, steering, u.Physics.CurrentSpeed, turnRate, accel, accel, dt)
			u.Position = newPos
			u.Rotation = newHeading
			u.Physics.CurrentSpeed = newSpeed
		}
		if u.Physics.Air.ShouldLand {
			u.Physics.Air.Kind = entities.AirLanding
		}

	case entities.AirLanding:
		groundY := w.TerrainHeight(u.Position)
		u.Position.Y = u.Position.Y.Sub(accel.Mul(dt))
		if u.Position.Y.LessThan(groundY) {
			u.Position.Y = groundY
		}
		atGround := u.Position.Y == groundY
		fx, fz := 1, 1
		if def != nil {
			fx, fz = def.MovementCollisionInfo()
		}
		collides := w.OccupancyBlocked(u.Position, fx, fz, self)
		u.Physics.TryLand(atGround, collides)
	}
}

func movementParamsFor(def *entities.UnitDefinition) (maxSpeed, accel, brake simtypes.SimScalar, turnRate uint16) {
	if def == nil {
		return simtypes.NewSimScalar(8), simtypes.NewSimScalar(2), simtypes.NewSimScalar(2), 512
	}
	return simtypes.NewSimScalar(def.MaxSpeed), simtypes.NewSimScalar(def.Acceleration),
		simtypes.NewSimScalar(def.BrakeRate), def.TurnRate
}

// updateSeaLevelTransition fires the unit's setSFXoccupy COB entry point
// when it crosses the sea-level boundary this tick, matching the
// edge-triggered (not level-triggered) semantics called out in §4.2.
func updateSeaLevelTransition(self entities.UnitID, u *entities.UnitState, w World, env *cob.Environment) {
	nowInWater := u.Position.Y.LessThan(w.SeaLevel())
	if nowInWater == u.InWater {
		return
	}
	u.InWater = nowInWater
	if env == nil {
		return
	}
	if addr, ok := env.Script.FuncAddr(cob.FuncSetSFXOccupy); ok {
		arg := int32(0)
		if nowInWater {
			arg = 1
		}
		env.StartThread(addr, []int32{arg}, 0)
	}
}
