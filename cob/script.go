// Package cob implements the COB script virtual machine: a cooperative,
// stack-based interpreter that drives per-unit piece animation and responds
// to simulation events (§4.3). The VM is single-threaded per unit; threads
// of one unit never interleave with threads of another, and never with
// simulation code outside the three blocking opcodes.
package cob

// Script is the shared, immutable compiled form of one unit type's COB
// program: its opcode words, function address table, and piece-name table.
// One Script is shared by every CobEnvironment instantiated for that unit
// type — the environment never copies it.
type Script struct {
	Code      []int32
	Functions map[string]int // function name -> starting instruction index
	Pieces    []string       // piece index -> name, used by MOVE/TURN/... opcodes' inline piece operand
}

// FuncAddr resolves a function name to its starting instruction index.
func (s *Script) FuncAddr(name string) (int, bool) {
	addr, ok := s.Functions[name]
	return addr, ok
}

// Well-known entry points the kernel and behavior engine invoke by name.
const (
	FuncCreate      = "Create"
	FuncStartBuilding = "StartBuilding"
	FuncStopBuilding  = "StopBuilding"
	FuncQueryBuildInfo = "QueryBuildInfo"
	FuncQueryPrimary  = "QueryPrimary"
	FuncAimPrimary    = "AimPrimary"
	FuncFirePrimary   = "FirePrimary"
	FuncSetSFXOccupy  = "setSFXoccupy"
)

// AimFuncFor and FireFuncFor name the Nth weapon's aim/fire entry points
// (AimPrimary/FirePrimary for weapon 0, AimWeapon2/FireWeapon2 for weapon 1,
// and so on), matching the content convention described in §4.2.2.
func AimFuncFor(weaponIndex int) string {
	if weaponIndex == 0 {
		return FuncAimPrimary
	}
	return "AimWeapon" + itoa(weaponIndex+1)
}

func FireFuncFor(weaponIndex int) string {
	if weaponIndex == 0 {
		return FuncFirePrimary
	}
	return "FireWeapon" + itoa(weaponIndex+1)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [8]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}
