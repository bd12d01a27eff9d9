package kernel

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/tacore/cob"
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/mesh"
	"github.com/pthm-cable/tacore/pathreq"
	"github.com/pthm-cable/tacore/spatial"
	"github.com/pthm-cable/tacore/simtypes"
)

// The methods in this file satisfy behavior.World, keeping the behavior
// engine free of any dependency on the kernel's concrete storage.

func (k *Kernel) UnitDefinition(unitType string) (*entities.UnitDefinition, bool) {
	d, ok := k.content.Units[unitType]
	return d, ok
}

func (k *Kernel) WeaponDefinition(name string) (*entities.WeaponDefinition, bool) {
	d, ok := k.content.Weapons[name]
	return d, ok
}

func (k *Kernel) Model(objectName string) (*entities.UnitModelDefinition, bool) {
	m, ok := k.content.Models[objectName]
	return m, ok
}

func (k *Kernel) GetUnit(id entities.UnitID) (*entities.UnitState, bool) {
	return k.units.Get(id.Raw())
}

func (k *Kernel) MeshTree(id entities.UnitID) (*mesh.Tree, bool) {
	t, ok := k.meshTrees[id.Raw()]
	return t, ok
}

func (k *Kernel) COBEnv(id entities.UnitID) (*cob.Environment, bool) {
	e, ok := k.cobEnvs[id.Raw()]
	return e, ok
}

func (k *Kernel) TerrainHeight(pos simtypes.SimVector) simtypes.SimScalar {
	x, z := terrainCell(pos)
	if !k.terrain.Height.InBounds(x, z) {
		return simtypes.Zero
	}
	return k.terrain.Height.At(x, z)
}

func (k *Kernel) SeaLevel() simtypes.SimScalar { return k.terrain.SeaLevel }

// cellsCollideExceptSelf scans a footprint region, ignoring a cell occupied
// by self so a unit's own footprint never blocks its own move/spawn check.
func (k *Kernel) cellsCollideExceptSelf(r spatial.Region, self entities.UnitID) bool {
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			if x < 0 || y < 0 || x >= k.occupancy.Width() || y >= k.occupancy.Height() {
				continue
			}
			cell := k.occupancy.At(x, y)
			if cell.Kind == spatial.OccupiedUnitKind && cell.Unit == self {
				continue
			}
			if !cell.Traversable() {
				return true
			}
		}
	}
	return false
}

func (k *Kernel) OccupancyBlocked(center simtypes.SimVector, fx, fz int, self entities.UnitID) bool {
	cx, cz := terrainCell(center)
	r := footprintRegion(cx, cz, fx, fz)
	return k.cellsCollideExceptSelf(r, self)
}

func (k *Kernel) MoveOccupancy(self entities.UnitID, from, to simtypes.SimVector, fx, fz int) bool {
	if k.OccupancyBlocked(to, fx, fz, self) {
		return false
	}
	fromCx, fromCz := terrainCell(from)
	toCx, toCz := terrainCell(to)
	k.occupancy.ClearRegion(footprintRegion(fromCx, fromCz, fx, fz))
	k.occupancy.MarkUnit(footprintRegion(toCx, toCz, fx, fz), self)
	return true
}

func (k *Kernel) RequestPath(id entities.UnitID) {
	k.pathQueue.Request(id)
}

func (k *Kernel) ConsumePath(id entities.UnitID) (*pathreq.UnitPath, bool) {
	p, ok := k.paths[id.Raw()]
	if ok {
		delete(k.paths, id.Raw())
	}
	return p, ok
}

func (k *Kernel) SpawnProjectile(p entities.Projectile) entities.ProjectileID {
	e := k.projectiles.Insert(p)
	id := entities.NewProjectileID(e)
	k.events = append(k.events, entities.Event{Kind: entities.EventProjectileSpawned, Projectile: id})
	return id
}

func (k *Kernel) AddResourceDelta(owner entities.PlayerID, apparentMetal, actualMetal, apparentEnergy, actualEnergy simtypes.SimScalar) bool {
	p, ok := k.players[owner]
	if !ok {
		return false
	}
	return p.AddResourceDelta(apparentMetal, actualMetal, apparentEnergy, actualEnergy)
}

func (k *Kernel) EmitEvent(e entities.Event) {
	k.events = append(k.events, e)
}

func (k *Kernel) RequestUnitCreation(requester entities.UnitID, unitType string, owner entities.PlayerID, pos simtypes.SimVector, rot simtypes.SimAngle) {
	k.creationQueue = append(k.creationQueue, creationRequest{
		requester: requester,
		unitType:  unitType,
		owner:     owner,
		pos:       pos,
		rot:       rot,
	})
}

// Random returns a deterministic value in [low, high) for the COB RAND
// opcode, drawn from the kernel's seeded RNG rather than the original
// engine's unreplicated std::rand() (§4.3.2 supplement).
func (k *Kernel) Random(low, high int32) int32 {
	if high <= low {
		return low
	}
	return low + int32(k.rng.Intn(int(high-low)))
}

func (k *Kernel) FindNearestHostile(pos simtypes.SimVector, owner entities.PlayerID, maxRange simtypes.SimScalar) (entities.UnitID, bool) {
	var best entities.UnitID
	bestDist := maxRange
	found := false
	k.units.Each(func(e ecs.Entity, u *entities.UnitState) {
		if u.Owner == owner || u.IsDead() {
			return
		}
		d := pos.DistXZ(u.Position)
		if d.GreaterThan(maxRange) {
			return
		}
		if !found || d.LessThan(bestDist) {
			best = entities.NewUnitID(e)
			bestDist = d
			found = true
		}
	})
	return best, found
}
