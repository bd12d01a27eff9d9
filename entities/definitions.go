package entities

import (
	"fmt"

	"github.com/pthm-cable/tacore/simtypes"
	"gopkg.in/yaml.v3"
)

// UnitDefinition is the content-loader contract for a unit type (§6.1).
// Decoded from YAML by the config package; never mutated at runtime.
type UnitDefinition struct {
	Name string `yaml:"name"`

	IsMobile          bool `yaml:"is_mobile"`
	Commander         bool `yaml:"commander"`
	Floater           bool `yaml:"floater"`
	CanHover          bool `yaml:"can_hover"`
	CanFly            bool `yaml:"can_fly"`
	ActivateWhenBuilt bool `yaml:"activate_when_built"`
	Builder           bool `yaml:"builder"`
	ShowPlayerName    bool `yaml:"show_player_name"`
	HideDamage        bool `yaml:"hide_damage"`

	WorkerTimePerTick float64 `yaml:"worker_time_per_tick"`
	CruiseAltitude    float64 `yaml:"cruise_altitude"`
	BuildDistance     float64 `yaml:"build_distance"`

	HitPoints         int32   `yaml:"hit_points"`
	BuildTime         int32   `yaml:"build_time"`
	BuildCostEnergy   float64 `yaml:"build_cost_energy"`
	BuildCostMetal    float64 `yaml:"build_cost_metal"`

	FootprintX int `yaml:"footprint_x"`
	FootprintZ int `yaml:"footprint_z"`

	WeaponNames []string `yaml:"weapon_names"`
	ExplodeAs   string   `yaml:"explode_as"`
	Corpse      string   `yaml:"corpse"`

	SoundCategory string `yaml:"sound_category"`
	ObjectName    string `yaml:"object_name"`

	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"`
	BrakeRate    float64 `yaml:"brake_rate"`
	TurnRate     uint16  `yaml:"turn_rate"`
}

// MovementCollisionInfo reports the footprint a unit definition occupies,
// used by spawn/pre-move collision checks.
func (d *UnitDefinition) MovementCollisionInfo() (fx, fz int) {
	return d.FootprintX, d.FootprintZ
}

// PieceDefinition is one node of a unit model's piece tree (§6.1).
type PieceDefinition struct {
	Name     string
	Origin   simtypes.SimVector
	ParentID int // index into UnitModelDefinition.Pieces, -1 for the root
}

// UnitModelDefinition is the compiled piece tree for an object name.
type UnitModelDefinition struct {
	ObjectName string
	Pieces     []PieceDefinition
	// ByUpperName maps an upper-cased piece name to its index, matching the
	// pieceIndicesByName lookup COB scripts rely on for GET/SET piece ops.
	ByUpperName map[string]int
}

// PieceIndex resolves a piece by name (case-insensitive), returning
// (-1, false) if it does not exist. A missing piece is a hard programmer
// error at the call site, per §7 — this function only reports, it does not
// abort.
func (m *UnitModelDefinition) PieceIndex(name string) (int, bool) {
	idx, ok := m.ByUpperName[upper(name)]
	return idx, ok
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// WeaponPhysicsType selects the firing-geometry solver and the projectile
// motion model (§4.2.2, §4.5).
type WeaponPhysicsType uint8

const (
	WeaponBallistic WeaponPhysicsType = iota
	WeaponLineOfSight
	WeaponTracking
)

// UnmarshalYAML decodes the content-file spelling ("ballistic",
// "line_of_sight", "tracking") into the enum, since a bare int in weapon
// content data would be unreadable to a content author.
func (t *WeaponPhysicsType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "ballistic":
		*t = WeaponBallistic
	case "line_of_sight":
		*t = WeaponLineOfSight
	case "tracking":
		*t = WeaponTracking
	default:
		return fmt.Errorf("entities: unknown weapon physics_type %q", s)
	}
	return nil
}

// WeaponDefinition is the content-loader contract for a weapon (§6.1).
type WeaponDefinition struct {
	Name string `yaml:"name"`

	Velocity     float64            `yaml:"velocity"`
	DamageByArmorClass map[string]int32 `yaml:"damage"`
	DamageRadius float64            `yaml:"damage_radius"`

	ReloadTime    float64 `yaml:"reload_time"`
	Burst         int     `yaml:"burst"`
	BurstInterval float64 `yaml:"burst_interval"`

	MaxRange       float64 `yaml:"max_range"`
	Tolerance      uint16  `yaml:"tolerance"`
	PitchTolerance uint16  `yaml:"pitch_tolerance"`
	SprayAngle     uint16  `yaml:"spray_angle"`

	CommandFire bool `yaml:"command_fire"`

	HasWeaponTimer bool    `yaml:"has_weapon_timer"`
	WeaponTimer    float64 `yaml:"weapon_timer"`

	HasRandomDecay bool    `yaml:"has_random_decay"`
	RandomDecay    float64 `yaml:"random_decay"`

	GroundBounce bool              `yaml:"ground_bounce"`
	PhysicsType  WeaponPhysicsType `yaml:"physics_type"`
}

// DamageFor returns the weapon's damage against armorClass, or 0 if the
// class has no entry (treated as immune, not a hard error — content data
// is allowed to omit classes the weapon cannot meaningfully hurt).
func (w *WeaponDefinition) DamageFor(armorClass string) int32 {
	return w.DamageByArmorClass[armorClass]
}

// FeatureDefinition is the content-loader contract for a map feature type
// (§6.1).
type FeatureDefinition struct {
	Name string `yaml:"name"`

	FootprintX int     `yaml:"footprint_x"`
	FootprintZ int     `yaml:"footprint_z"`
	Height     float64 `yaml:"height"`

	Blocking       bool `yaml:"blocking"`
	Indestructible bool `yaml:"indestructible"`
	Reclaimable    bool `yaml:"reclaimable"`

	Metal  float64 `yaml:"metal"`
	Energy float64 `yaml:"energy"`
}
