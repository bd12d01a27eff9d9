package behavior

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

const (
	arriveTolerance      = 4
	buildRangeSlack      = 2
	guardFollowThreshold = 24
)

// PumpOrders is §4.2 step 3: inspects the front of the unit's order queue,
// drives the relevant sub-FSM, and pops the order on completion. A unit
// with an empty queue falls back to BehaviorIdle with no steering target.
func PumpOrders(self entities.UnitID, u *entities.UnitState, w World) {
	order, ok := u.Orders.Front()
	if !ok {
		u.BehaviorState = entities.BehaviorIdle
		u.Navigation = entities.NavigationState{}
		return
	}

	switch order.Kind {
	case entities.OrderMove:
		pumpMove(self, u, w, order.Pos, entities.BehaviorMoving)
	case entities.OrderAttack:
		pumpAttack(self, u, w, order)
	case entities.OrderBuild:
		pumpBuild(self, u, w, order)
	case entities.OrderCompleteBuild:
		pumpCompleteBuild(self, u, w, order)
	case entities.OrderGuard:
		pumpGuard(self, u, w, order)
	case entities.OrderBuggerOff:
		pumpBuggerOff(self, u, w, order)
	}
}

// goTo sets the unit's desired destination, requesting a fresh path only
// when the destination has actually changed, and reports whether the unit
// has arrived at it this tick. Arrival is a pure distance check against the
// goal (original_source/src/rwe/sim/UnitBehaviorService.cpp's navigateTo /
// hasReachedGoal), independent of whether a path object exists: a path is
// steering guidance, not a gate on completion.
func goTo(self entities.UnitID, u *entities.UnitState, w World, dest simtypes.SimVector) bool {
	if !u.Navigation.HasDesiredDestination || u.Navigation.DesiredDestination != dest {
		u.Navigation.HasDesiredDestination = true
		u.Navigation.DesiredDestination = dest
		u.Navigation.HasPath = false
		u.Navigation.Waypoints = nil
		u.Navigation.WaypointIdx = 0
		w.RequestPath(self)
	}
	if path, ok := w.ConsumePath(self); ok {
		u.Navigation.HasPath = true
		u.Navigation.Waypoints = path.Waypoints
		u.Navigation.WaypointIdx = 0
		u.Navigation.PathCreated = path.CreationTime
	}
	return u.Position.DistXZ(dest).Float64() <= arriveTolerance
}

func pumpMove(self entities.UnitID, u *entities.UnitState, w World, dest simtypes.SimVector, state entities.BehaviorStateKind) {
	u.BehaviorState = state
	arrived := goTo(self, u, w, dest)
	if arrived {
		u.Orders.Pop()
		u.Navigation = entities.NavigationState{}
		w.EmitEvent(entities.Event{Kind: entities.EventUnitArrived, Unit: self})
	}
}

func pumpAttack(self entities.UnitID, u *entities.UnitState, w World, order entities.Order) {
	u.BehaviorState = entities.BehaviorAttacking

	target := order.Pos
	if order.AttackTargetKind == entities.AttackTargetUnit {
		tgt, ok := w.GetUnit(order.Target)
		if !ok {
			u.Orders.Pop()
			return
		}
		target = tgt.Position
	}

	inRange := false
	dist := u.Position.DistXZ(target)
	maxRange := attackApproachRange(u, w)
	if dist.Float64() > maxRange {
		goTo(self, u, w, target)
	} else {
		inRange = true
		u.Navigation = entities.NavigationState{}
	}

	if order.AttackTargetKind == entities.AttackTargetUnit {
		for i := 0; i < u.NumWeapons; i++ {
			if u.Weapons[i].Kind == entities.WeaponIdle {
				u.Weapons[i].EnterAttacking(order.Target)
			}
		}
	}

	if inRange && order.AttackTargetKind == entities.AttackTargetGround {
		// Ground-target attack orders complete once in range; the weapon
		// FSM fires at the fixed point via FireOrders, not a tracked target.
		u.Orders.Pop()
	}
}

// attackApproachRange returns 90% of the largest of the unit's weapons' max
// ranges, or a short melee default if it carries none.
func attackApproachRange(u *entities.UnitState, w World) float64 {
	def, ok := w.UnitDefinition(u.Type)
	if !ok || len(def.WeaponNames) == 0 {
		return 16
	}
	best := 0.0
	for _, name := range def.WeaponNames {
		wd, ok := w.WeaponDefinition(name)
		if ok && wd.MaxRange > best {
			best = wd.MaxRange
		}
	}
	if best == 0 {
		return 16
	}
	return best * 0.9
}

func pumpBuild(self entities.UnitID, u *entities.UnitState, w World, order entities.Order) {
	u.BehaviorState = entities.BehaviorBuilding

	def, ok := w.UnitDefinition(order.BuildType)
	if !ok {
		u.Orders.Pop()
		return
	}

	buildDist := simtypes.NewSimScalar(def.BuildDistance + buildRangeSlack)
	if u.Position.DistXZ(order.Pos) > buildDist {
		goTo(self, u, w, order.Pos)
		return
	}
	u.Navigation = entities.NavigationState{}
	u.InBuildStance = true

	if u.BuildOrderUnitID.IsZero() {
		if !u.BuildRequestPending {
			w.RequestUnitCreation(self, order.BuildType, u.Owner, order.Pos, u.Rotation)
			u.BuildRequestPending = true
			return
		}
		switch u.BuildRequestStatus {
		case entities.CreationFailed:
			u.BuildRequestPending = false
			u.Orders.Pop()
		case entities.CreationDone:
			// u.BuildOrderUnitID was set by the kernel's deferred creation
			// pass (§4.1 step 8).
			u.BuildRequestPending = false
		}
		return
	}

	target, ok := w.GetUnit(u.BuildOrderUnitID)
	if !ok {
		u.BuildOrderUnitID = entities.UnitID{}
		u.Orders.Pop()
		return
	}
	buildTickFinish(self, u, w, target)
}

func pumpCompleteBuild(self entities.UnitID, u *entities.UnitState, w World, order entities.Order) {
	u.BehaviorState = entities.BehaviorBuilding
	target, ok := w.GetUnit(order.TargetUnit)
	if !ok || !target.IsBeingBuilt() {
		u.Orders.Pop()
		return
	}

	def, _ := w.UnitDefinition(target.Type)
	buildDist := simtypes.NewSimScalar(16)
	if def != nil {
		buildDist = simtypes.NewSimScalar(def.BuildDistance + buildRangeSlack)
	}
	if u.Position.DistXZ(target.Position) > buildDist {
		goTo(self, u, w, target.Position)
		return
	}
	u.Navigation = entities.NavigationState{}
	u.InBuildStance = true
	buildTickFinish(self, u, w, target)
}

// buildTickFinish advances an under-construction target's BuildTimeCompleted
// by the builder's WorkerTimePerTick, charging the cost proportionally via
// AddResourceDelta, and pops the order once construction finishes (§4.2.3).
func buildTickFinish(self entities.UnitID, u *entities.UnitState, w World, target *entities.UnitState) {
	builderDef, _ := w.UnitDefinition(u.Type)
	targetDef, ok := w.UnitDefinition(target.Type)
	if !ok || builderDef == nil {
		return
	}
	if !target.IsBeingBuilt() {
		u.BuildOrderUnitID = entities.UnitID{}
		u.Orders.Pop()
		return
	}

	rate := simtypes.NewSimScalar(builderDef.WorkerTimePerTick)
	metalCost := simtypes.NewSimScalar(targetDef.BuildCostMetal)
	energyCost := simtypes.NewSimScalar(targetDef.BuildCostEnergy)
	buildTimeTotal := simtypes.NewSimScalar(float64(targetDef.BuildTime))
	if buildTimeTotal == 0 {
		return
	}
	fraction := rate.Div(buildTimeTotal)

	w.AddResourceDelta(u.Owner, metalCost.Mul(fraction).Neg(), metalCost.Mul(fraction).Neg(),
		energyCost.Mul(fraction).Neg(), energyCost.Mul(fraction).Neg())

	target.BuildTimeCompleted += int32(rate.Float64())
	if target.BuildTimeCompleted > targetDef.BuildTime {
		target.BuildTimeCompleted = targetDef.BuildTime
	}
	if !target.IsBeingBuilt() {
		u.BuildOrderUnitID = entities.UnitID{}
		u.Orders.Pop()
		w.EmitEvent(entities.Event{Kind: entities.EventUnitComplete, Unit: self})
	}
}

func pumpGuard(self entities.UnitID, u *entities.UnitState, w World, order entities.Order) {
	u.BehaviorState = entities.BehaviorGuarding
	target, ok := w.GetUnit(order.TargetUnit)
	if !ok {
		u.Orders.Pop()
		return
	}
	if u.Position.DistXZ(target.Position).Float64() > guardFollowThreshold {
		goTo(self, u, w, target.Position)
	} else {
		u.Navigation = entities.NavigationState{}
	}
}

func pumpBuggerOff(self entities.UnitID, u *entities.UnitState, w World, order entities.Order) {
	if !order.Zone.Contains(u.Position) {
		u.Orders.Pop()
		return
	}
	center := simtypes.Vec(
		order.Zone.MinX.Add(order.Zone.MaxX).Div(simtypes.NewSimScalar(2)),
		simtypes.Zero,
		order.Zone.MinZ.Add(order.Zone.MaxZ).Div(simtypes.NewSimScalar(2)),
	)
	away := u.Position.Sub(center)
	dest := u.Position.Add(away)
	if goTo(self, u, w, dest) {
		u.Orders.Pop()
	}
}
