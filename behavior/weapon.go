package behavior

import (
	"github.com/pthm-cable/tacore/cob"
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// UpdateWeapons drives up to MaxWeapons FSM slots for one unit (§4.2 step
// 4, §4.2.2). Each slot independently tracks Idle/Attacking, and an
// Attacking slot runs the Idle/Aim/Fire sub-states by starting and polling
// the unit's AimPrimary/FirePrimary COB threads.
func UpdateWeapons(self entities.UnitID, u *entities.UnitState, w World, env *cob.Environment) {
	if env == nil {
		return
	}
	for i := 0; i < u.NumWeapons && i < entities.MaxWeapons; i++ {
		updateOneWeapon(self, u, w, env, i)
	}
}

func updateOneWeapon(self entities.UnitID, u *entities.UnitState, w World, env *cob.Environment, i int) {
	ws := &u.Weapons[i]
	def, _ := w.UnitDefinition(u.Type)
	var weaponName string
	if def != nil && i < len(def.WeaponNames) {
		weaponName = def.WeaponNames[i]
	}
	wd, _ := w.WeaponDefinition(weaponName)

	switch ws.Kind {
	case entities.WeaponIdle:
		if u.FireOrders == entities.FireAtWill && wd != nil {
			maxRange := simtypes.NewSimScalar(wd.MaxRange)
			if target, ok := w.FindNearestHostile(u.Position, u.Owner, maxRange); ok {
				ws.EnterAttacking(target)
			}
		}
	case entities.WeaponAttacking:
		advanceAttackingWeapon(self, u, w, env, i, wd)
	}
}

func advanceAttackingWeapon(self entities.UnitID, u *entities.UnitState, w World, env *cob.Environment, i int, wd *entities.WeaponDefinition) {
	ws := &u.Weapons[i]
	if ws.Target.IsZero() {
		ws.ToIdle()
		return
	}
	target, ok := w.GetUnit(ws.Target)
	if !ok || target.IsDead() {
		ws.ToIdle()
		return
	}
	if wd != nil {
		maxRange := simtypes.NewSimScalar(wd.MaxRange)
		if u.Position.DistXZ(target.Position).GreaterThan(maxRange) {
			ws.ToIdle()
			return
		}
	}

	switch ws.Info {
	case entities.WeaponInfoIdle:
		addr, ok := env.Script.FuncAddr(cob.AimFuncFor(i))
		if !ok {
			ws.Info = entities.WeaponInfoFire
			return
		}
		th := env.StartThread(addr, nil, 0)
		ws.AimThreadID = int(th.ID)
		ws.Info = entities.WeaponInfoAim

	case entities.WeaponInfoAim:
		if _, stillRunning := env.ThreadByID(cob.ThreadID(ws.AimThreadID)); stillRunning {
			return
		}
		ws.Heading = u.Position.HeadingTo(target.Position)
		ws.TargetPos = target.Position
		ws.Info = entities.WeaponInfoFire

	case entities.WeaponInfoFire:
		fireWeapon(self, u, w, env, i, wd, target)
	}
}

// fireWeapon starts the FirePrimary thread (the script's own MOVE/TURN/
// EMIT-SFX choreography runs via the normal COB scheduler), spawns the
// projectile immediately per §4.5 rather than waiting on the script thread
// to finish, and reloads according to burst/reload timing.
func fireWeapon(self entities.UnitID, u *entities.UnitState, w World, env *cob.Environment, i int, wd *entities.WeaponDefinition, target *entities.UnitState) {
	ws := &u.Weapons[i]
	now := w.GameTime()
	if ws.ReadyTime > now {
		return
	}

	if addr, ok := env.Script.FuncAddr(cob.FireFuncFor(i)); ok {
		env.StartThread(addr, nil, 0)
	}

	w.EmitEvent(entities.Event{
		Kind:       entities.EventFireWeapon,
		Unit:       self,
		WeaponType: weaponNameOf(w, u.Type, i),
		ShotNumber: ws.BurstsFired,
		FirePoint:  u.Position,
	})

	velocity := simtypes.NewSimScalar(1)
	var radius simtypes.SimScalar
	physicsKind := entities.ProjectileBallistic
	if wd != nil {
		velocity = simtypes.NewSimScalar(wd.Velocity)
		radius = simtypes.NewSimScalar(wd.DamageRadius)
		switch wd.PhysicsType {
		case entities.WeaponLineOfSight:
			physicsKind = entities.ProjectileLineOfSight
		case entities.WeaponTracking:
			physicsKind = entities.ProjectileTracking
		}
	}
	dir := ws.TargetPos.Sub(u.Position)
	dist := dir.DistXZ(simtypes.Vec(0, 0, 0))
	var velVec simtypes.SimVector
	if dist > 0 {
		velVec = simtypes.Vec(dir.X.Div(dist), dir.Y.Div(dist), dir.Z.Div(dist)).Scale(velocity)
	}

	groundBounce := false
	var trackTurn simtypes.SimScalar
	if wd != nil {
		groundBounce = wd.GroundBounce
		trackTurn = simtypes.NewSimScalar(90)
	}

	w.SpawnProjectile(entities.Projectile{
		Owner:            u.Owner,
		WeaponType:       weaponNameOf(w, u.Type, i),
		Position:         u.Position,
		PrevPosition:     u.Position,
		Velocity:         velVec,
		PhysicsKind:      physicsKind,
		TrackingTurnRate: trackTurn,
		TargetUnit:       ws.Target,
		HasTargetUnit:    physicsKind == entities.ProjectileTracking,
		GroundBounce:     groundBounce,
		DamageRadius:     radius,
	})

	ws.BurstsFired++
	burst := 1
	interval := simtypes.Zero
	reload := simtypes.One
	if wd != nil {
		if wd.Burst > 0 {
			burst = wd.Burst
		}
		interval = simtypes.NewSimScalar(wd.BurstInterval)
		reload = simtypes.NewSimScalar(wd.ReloadTime)
	}
	if ws.BurstsFired < burst {
		ws.ReadyTime = now + entities.GameTime(interval.Float64()*30)
		ws.Info = entities.WeaponInfoFire
	} else {
		ws.BurstsFired = 0
		ws.ReadyTime = now + entities.GameTime(reload.Float64()*30)
		ws.Info = entities.WeaponInfoIdle
	}
}

func weaponNameOf(w World, unitType string, i int) string {
	def, ok := w.UnitDefinition(unitType)
	if !ok || i >= len(def.WeaponNames) {
		return ""
	}
	return def.WeaponNames[i]
}
