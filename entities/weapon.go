package entities

import "github.com/pthm-cable/tacore/simtypes"

// FireOrders is the standing fire-order mode (§4.2.2).
type FireOrders uint8

const (
	FireHoldFire FireOrders = iota
	FireReturnFire
	FireAtWill
)

// WeaponStateKind discriminates Idle/Attacking (§4.2.2).
type WeaponStateKind uint8

const (
	WeaponIdle WeaponStateKind = iota
	WeaponAttacking
)

// WeaponInfoKind discriminates the info union nested in Attacking.
type WeaponInfoKind uint8

const (
	WeaponInfoIdle WeaponInfoKind = iota
	WeaponInfoAim
	WeaponInfoFire
)

// GameTime is a tick counter, matching the kernel's gameTime field.
type GameTime int64

// WeaponState is one weapon's FSM slot.
type WeaponState struct {
	Kind   WeaponStateKind
	Target UnitID // meaningful when Kind == WeaponAttacking

	Info WeaponInfoKind

	// WeaponInfoAim
	AimThreadID  int
	LastHeading  simtypes.SimAngle
	LastPitch    simtypes.SimAngle

	// WeaponInfoFire
	Heading      simtypes.SimAngle
	Pitch        simtypes.SimAngle
	TargetPos    simtypes.SimVector
	FiringPiece  int
	HasFiringPiece bool
	BurstsFired  int
	ReadyTime    GameTime
}

// ToIdle resets the weapon to Idle/no-target, the "benign state" a weapon's
// order falls back to when its target disappears (§7).
func (w *WeaponState) ToIdle() {
	*w = WeaponState{Kind: WeaponIdle}
}

// EnterAttacking begins tracking a new target from Idle.
func (w *WeaponState) EnterAttacking(target UnitID) {
	w.Kind = WeaponAttacking
	w.Target = target
	w.Info = WeaponInfoIdle
}
