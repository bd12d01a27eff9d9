package kernel

import (
	"github.com/pthm-cable/tacore/behavior"
	"github.com/pthm-cable/tacore/cob"
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/mesh"
	"github.com/pthm-cable/tacore/simtypes"
	"github.com/pthm-cable/tacore/spatial"
)

const cellsPerWorldUnit = 1

// terrainCell converts a world-space XZ position to the occupancy/height
// grid's integer cell coordinate.
func terrainCell(pos simtypes.SimVector) (x, z int) {
	return int(pos.X.Float64() * cellsPerWorldUnit), int(pos.Z.Float64() * cellsPerWorldUnit)
}

func footprintRegion(cx, cz, fx, fz int) spatial.Region {
	if fx == 0 {
		fx = 1
	}
	if fz == 0 {
		fz = 1
	}
	return spatial.RegionFromFootprint(cx, cz, fx, fz)
}

// spawnUnit constructs the full per-unit state (UnitState, mesh.Tree,
// cob.Environment) and marks its footprint occupied, the shared path
// trySpawnUnit and tryAddUnit both funnel through (§4.1).
func (k *Kernel) spawnUnit(unitType string, def *entities.UnitDefinition, owner entities.PlayerID, pos simtypes.SimVector, rot simtypes.SimAngle) entities.UnitID {
	u := entities.UnitState{
		Type:         unitType,
		Owner:        owner,
		Position:     pos,
		Rotation:     rot,
		PrevPosition: pos,
		PrevRotation: rot,
		HitPoints:    1,
		MaxHitPoints: def.HitPoints,
		BuildTime:    def.BuildTime,
		Activated:    def.ActivateWhenBuilt,
		NumWeapons:   len(def.WeaponNames),
		FireOrders:   entities.FireAtWill,
	}
	if def.BuildTime == 0 {
		u.HitPoints = def.HitPoints
		u.BuildTimeCompleted = 0
	}
	if def.CanFly {
		u.Physics.Kind = entities.PhysicsAir
	}
	if def.Builder {
		// Factories are builders whose footprint doubles as a yard; any
		// builder type with a nonzero footprint is treated as able to host
		// a build queue, matching the content convention of one FactoryState
		// per structure-class unit.
		u.Factory = &entities.FactoryState{}
	}

	e := k.units.Insert(u)
	id := entities.NewUnitID(e)

	if model, ok := k.content.Models[def.ObjectName]; ok {
		k.meshTrees[e] = mesh.NewTree(model)
	}
	if script, ok := k.content.Scripts[unitType]; ok {
		env := cob.NewEnvironment(script, behavior.NewHost(id, k), k.cfg.MsPerTick)
		k.cobEnvs[e] = env
		if addr, ok := env.Script.FuncAddr(cob.FuncCreate); ok {
			env.StartThread(addr, nil, 0)
		}
	}

	cx, cz := terrainCell(pos)
	k.occupancy.MarkUnit(footprintRegion(cx, cz, def.FootprintX, def.FootprintZ), id)

	k.events = append(k.events, entities.Event{Kind: entities.EventUnitSpawned, Unit: id, UnitType: unitType})
	return id
}
