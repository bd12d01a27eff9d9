package cob

import "github.com/pthm-cable/tacore/simtypes"
import "testing"

type fakeHost struct {
	moves  int
	values map[ValueID]int32
}

func (h *fakeHost) SetMove(pieceID, axis int, target, speed simtypes.SimScalar) { h.moves++ }
func (h *fakeHost) SetMoveNow(pieceID, axis int, target simtypes.SimScalar)     {}
func (h *fakeHost) SetTurn(pieceID, axis int, target simtypes.SimAngle, speed simtypes.SimScalar) {
}
func (h *fakeHost) SetTurnNow(pieceID, axis int, target simtypes.SimAngle)       {}
func (h *fakeHost) SetSpin(pieceID, axis int, target, accel simtypes.SimScalar) {}
func (h *fakeHost) StopSpin(pieceID, axis int, decel simtypes.SimScalar)        {}
func (h *fakeHost) SetVisible(pieceID int, visible bool)                       {}
func (h *fakeHost) SetShaded(pieceID int, shaded bool)                         {}
func (h *fakeHost) Explode(pieceID int, explosionType int32)                   {}
func (h *fakeHost) EmitSFX(pieceID int, sfxType int32)                         {}
func (h *fakeHost) GetValue(id ValueID, args [4]int32) int32 {
	if h.values == nil {
		return 0
	}
	return h.values[id]
}
func (h *fakeHost) SetValue(id ValueID, value int32) {}
func (h *fakeHost) Random(low, high int32) int32     { return low }

// buildAddScript returns a function that pushes 2 constants and adds them,
// then returns the sum.
func buildAddScript() *Script {
	code := []int32{
		int32(OpPushConstant), 2,
		int32(OpPushConstant), 3,
		int32(OpAdd),
		int32(OpReturn),
	}
	return &Script{Code: code, Functions: map[string]int{"Add": 0}}
}

func TestSynchronousQueryReturnsValue(t *testing.T) {
	s := buildAddScript()
	env := NewEnvironment(s, &fakeHost{}, 33)
	addr, _ := s.FuncAddr("Add")
	v, err := env.RunSynchronous(addr, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 5 {
		t.Errorf("got %d, want 5", v)
	}
}

func TestSynchronousQueryBlockingIsHardError(t *testing.T) {
	code := []int32{
		int32(OpSleep),
	}
	// push a sleep duration first via constant, then sleep
	code = []int32{
		int32(OpPushConstant), 1000,
		int32(OpSleep),
	}
	s := &Script{Code: code, Functions: map[string]int{"Blocker": 0}}
	env := NewEnvironment(s, &fakeHost{}, 33)
	_, err := env.RunSynchronous(0, nil)
	if err == nil {
		t.Fatal("expected hard error for blocking synchronous query")
	}
}

func TestStartThreadRunsAndFinishes(t *testing.T) {
	s := buildAddScript()
	env := NewEnvironment(s, &fakeHost{}, 33)
	addr, _ := s.FuncAddr("Add")
	th := env.StartThread(addr, nil, 0)
	env.RunUnitCobScripts(0)
	if _, ok := env.Reap(th.ID); !ok {
		t.Fatal("expected thread to finish and be reapable")
	}
}

func TestSleepBlocksUntilWake(t *testing.T) {
	code := []int32{
		int32(OpPushConstant), 66, // 66ms -> 2 ticks at 33ms/tick
		int32(OpSleep),
		int32(OpPushConstant), 0,
		int32(OpReturn),
	}
	s := &Script{Code: code, Functions: map[string]int{"Sleeper": 0}}
	env := NewEnvironment(s, &fakeHost{}, 33)
	th := env.StartThread(0, nil, 0)
	env.RunUnitCobScripts(0)
	if _, ok := env.Reap(th.ID); ok {
		t.Fatal("thread should still be sleeping, not finished")
	}
	env.RunUnitCobScripts(2)
	if _, ok := env.Reap(th.ID); !ok {
		t.Fatal("expected thread to wake and finish at tick 2")
	}
}

func TestSignalKillsMatchingThreads(t *testing.T) {
	code := []int32{
		int32(OpPushConstant), 1000,
		int32(OpSleep),
	}
	s := &Script{Code: code}
	env := NewEnvironment(s, &fakeHost{}, 33)
	victim := env.StartThread(0, nil, 0x1)
	env.RunUnitCobScripts(0) // puts victim to sleep

	killer := &Thread{ID: -1}
	env.Signal(killer, 0x1)

	if _, ok := env.ThreadByID(victim.ID); ok {
		t.Error("expected victim thread to be removed by signal")
	}
}

func TestPopEmptyStackReturnsZero(t *testing.T) {
	th := &Thread{}
	if v := th.popOperand(); v != 0 {
		t.Errorf("pop on empty stack = %d, want 0", v)
	}
}
