// Package kernel owns the authoritative simulation state and the per-tick
// orchestration that advances it (§4.1): resource cycling, pathfinding
// service, per-unit behavior, projectile integration, victory checking
// (folding in the commander-death player-kill cascade), garbage collection,
// deferred unit-creation commit, and desync-detection hashing.
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

// Content is the loaded, immutable definition set the kernel runs against
// (§6.1), produced by the config package.
type Content struct {
	Units    map[string]*entities.UnitDefinition
	Weapons  map[string]*entities.WeaponDefinition
	Features map[string]*entities.FeatureDefinition
	Models   map[string]*entities.UnitModelDefinition
	Scripts  map[string]*cob.Script // keyed by unit type
}

// Terrain is the static per-map heightfield and sea level.
type Terrain struct {
	Height   *spatial.Grid[simtypes.SimScalar]
	SeaLevel simtypes.SimScalar
}

// Config bundles the per-tick tunables the kernel needs beyond content
// definitions (§6.1 Simulation section of the configuration contract).
type Config struct {
	MsPerTick       int64
	ResourceTickHz  int64 // ticks between resource cycles, normally one game-second
	Seed            uint32
}

// Kernel is the authoritative simulation instance.
type Kernel struct {
	content Content
	terrain Terrain
	cfg     Config

	units       *entities.Store[entities.UnitState]
	features    *entities.Store[entities.MapFeature]
	projectiles *entities.Store[entities.Projectile]

	meshTrees map[ecs.Entity]*mesh.Tree
	cobEnvs   map[ecs.Entity]*cob.Environment

	players     map[entities.PlayerID]*entities.GamePlayerInfo
	playerOrder []entities.PlayerID

	occupancy *spatial.OccupiedGrid

	pathQueue *pathreq.Queue
	planner   pathreq.Planner
	paths     map[ecs.Entity]*pathreq.UnitPath

	rng      *RNG
	gameTime entities.GameTime
	events   []entities.Event

	// creationQueue holds unit-creation requests submitted during this
	// tick's per-unit behavior pass, committed by commitDeferredCreations
	// in its own step-8 pass (§4.1, §4.2.3).
	creationQueue []creationRequest

	tickCount int64
}

// New constructs an empty kernel bound to the given content and terrain.
func New(content Content, terrain Terrain, cfg Config, planner pathreq.Planner) *Kernel {
	if cfg.ResourceTickHz == 0 {
		cfg.ResourceTickHz = 1000 / cfg.MsPerTick
	}
	return &Kernel{
		content:     content,
		terrain:     terrain,
		cfg:         cfg,
		units:       entities.NewStore[entities.UnitState](),
		features:    entities.NewStore[entities.MapFeature](),
		projectiles: entities.NewStore[entities.Projectile](),
		meshTrees:   make(map[ecs.Entity]*mesh.Tree),
		cobEnvs:     make(map[ecs.Entity]*cob.Environment),
		players:     make(map[entities.PlayerID]*entities.GamePlayerInfo),
		occupancy:   spatial.NewOccupiedGrid(terrain.Height.Width(), terrain.Height.Height()),
		pathQueue:   pathreq.NewQueue(),
		planner:     planner,
		paths:       make(map[ecs.Entity]*pathreq.UnitPath),
		rng:         NewRNG(cfg.Seed),
	}
}

// AddPlayer registers a player's starting resource record.
func (k *Kernel) AddPlayer(p entities.GamePlayerInfo) {
	cp := p
	k.players[p.ID] = &cp
	k.playerOrder = append(k.playerOrder, p.ID)
}

// Occupancy exposes the live occupancy grid, for a pathreq.Planner that
// wants to route around units and features rather than terrain alone.
func (k *Kernel) Occupancy() *spatial.OccupiedGrid { return k.occupancy }

// Player looks up a player's current record by ID.
func (k *Kernel) Player(id entities.PlayerID) (*entities.GamePlayerInfo, bool) {
	p, ok := k.players[id]
	return p, ok
}

// PlayerIDs returns every registered player ID in join order.
func (k *Kernel) PlayerIDs() []entities.PlayerID {
	out := make([]entities.PlayerID, len(k.playerOrder))
	copy(out, k.playerOrder)
	return out
}

// GameTime reports the current tick count.
func (k *Kernel) GameTime() entities.GameTime { return k.gameTime }

// Hash exposes computeHash for the lockstep package's desync check.
func (k *Kernel) Hash() uint64 { return k.computeHash() }

// DrainEvents returns and clears this tick's event log, matching §6.3's
// "drained exactly once per tick by the presenter" contract.
func (k *Kernel) DrainEvents() []entities.Event {
	ev := k.events
	k.events = nil
	return ev
}
