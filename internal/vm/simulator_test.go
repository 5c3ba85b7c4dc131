package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runTrace executes instructions against sim, checking the ownership
// invariants from spec.md §8 after every one so a violation is caught
// at the instruction that caused it.
func runTrace(t *testing.T, sim *Simulator, instructions []Instruction) {
	t.Helper()
	for i, inst := range instructions {
		sim.Step(inst)
		require.NoError(t, sim.CheckInvariants(), "invariants hold after instruction %d (%c %d)", i, inst.Opcode, inst.Operand)
	}
}

// TestScenarioS1 matches spec.md §8 scenario S1: a single page faulted,
// re-read, then the process exits.
func TestScenarioS1(t *testing.T) {
	sim := newTestSimulator(1, [][]VMA{{{StartVPage: 0, EndVPage: 0}}}, NewFIFOPolicy(), nil)
	runTrace(t, sim, []Instruction{
		{Opcode: 'c', Operand: 0},
		{Opcode: 'r', Operand: 0},
		{Opcode: 'r', Operand: 0},
		{Opcode: 'e', Operand: 0},
	})

	proc := sim.processes.Get(0)
	assert.Equal(t, uint64(1), proc.Stats.Maps)
	assert.Equal(t, uint64(1), proc.Stats.Unmaps)
	assert.Equal(t, uint64(1), proc.Stats.Zeros)
	assert.EqualValues(t, 2272, sim.TotalCost(), "weighted total cost from spec.md §8 S1")
}

// TestScenarioS2 matches scenario S2: Clock with 2 frames evicts twice
// to satisfy 3 distinct faulting pages plus a re-fault of the first.
func TestScenarioS2(t *testing.T) {
	sim := newTestSimulator(2, [][]VMA{{{StartVPage: 0, EndVPage: 2}}}, NewClockPolicy(), nil)
	runTrace(t, sim, []Instruction{
		{Opcode: 'c', Operand: 0},
		{Opcode: 'r', Operand: 0},
		{Opcode: 'r', Operand: 1},
		{Opcode: 'r', Operand: 2},
		{Opcode: 'r', Operand: 0},
	})

	proc := sim.processes.Get(0)
	assert.Equal(t, uint64(4), proc.Stats.Maps, "4 faults total: vp0, vp1, vp2, then vp0 again")
	assert.Equal(t, uint64(4), proc.Stats.Zeros, "every fault is a fresh anonymous page")
	// Exactly 2 frames can stay mapped at the end; the other 2 maps
	// must have been evicted first.
	assert.Equal(t, proc.Stats.Maps-2, proc.Stats.Unmaps, "unmaps = maps - frames still resident")
}

// TestScenarioS4 matches scenario S4: a write-protected anonymous page
// faults then SEGPROTs without setting modified; a file-mapped page
// faults with FIN then picks up modified/dirty on write.
func TestScenarioS4(t *testing.T) {
	vmas := [][]VMA{
		{{StartVPage: 0, EndVPage: 3, WriteProtected: true}},
		{{StartVPage: 0, EndVPage: 3, FileMapped: true}},
	}
	sim := newTestSimulator(4, vmas, NewFIFOPolicy(), nil)
	runTrace(t, sim, []Instruction{
		{Opcode: 'c', Operand: 0},
		{Opcode: 'w', Operand: 0},
		{Opcode: 'c', Operand: 1},
		{Opcode: 'w', Operand: 0},
		{Opcode: 'w', Operand: 0},
	})

	p0 := sim.processes.Get(0)
	assert.Equal(t, uint64(1), p0.Stats.Maps)
	assert.Equal(t, uint64(1), p0.Stats.Zeros)
	assert.Equal(t, uint64(1), p0.Stats.Segprot)
	assert.False(t, p0.PageTable[0].Modified(), "write-protected fault never sets modified")
	assert.True(t, p0.PageTable[0].Referenced())

	p1 := sim.processes.Get(1)
	assert.Equal(t, uint64(1), p1.Stats.Maps)
	assert.Equal(t, uint64(1), p1.Stats.Fins)
	assert.True(t, p1.PageTable[0].Modified(), "a write to a non-write-protected page sets modified")
	assert.True(t, sim.frames.Frames[p1.PageTable[0].FrameNumber()].Dirty)
}

// TestScenarioS5 matches scenario S5: exit discards an anonymous dirty
// page silently, with no OUT ever emitted.
func TestScenarioS5(t *testing.T) {
	sim := newTestSimulator(1, [][]VMA{{{StartVPage: 0, EndVPage: 0}}}, NewFIFOPolicy(), nil)
	sink := &recordingSink{}
	sim.SetSink(sink)

	runTrace(t, sim, []Instruction{
		{Opcode: 'c', Operand: 0},
		{Opcode: 'w', Operand: 0},
		{Opcode: 'e', Operand: 0},
	})

	proc := sim.processes.Get(0)
	assert.Equal(t, uint64(0), proc.Stats.Outs)
	assert.Equal(t, uint64(0), proc.Stats.Fouts)
	assert.Equal(t, uint64(1), proc.Stats.Unmaps)
	assert.Equal(t, uint64(1), proc.Stats.Maps)
	assert.Equal(t, uint64(1), proc.Stats.Zeros)

	for _, ev := range sink.events {
		assert.NotEqual(t, EventOut, ev.Kind, "no OUT event is ever emitted on exit")
	}
}

// TestScenarioS6 matches scenario S6: re-running the same trace with
// the same random file and algorithm is byte-for-byte deterministic,
// and FIFO never touches the random cursor.
func TestScenarioS6(t *testing.T) {
	trace := []Instruction{
		{Opcode: 'c', Operand: 0},
		{Opcode: 'r', Operand: 0},
		{Opcode: 'r', Operand: 1},
		{Opcode: 'r', Operand: 2},
		{Opcode: 'r', Operand: 3},
		{Opcode: 'e', Operand: 0},
	}
	vmas := [][]VMA{{{StartVPage: 0, EndVPage: 3}}}

	t.Run("RandomIsDeterministicAcrossRuns", func(t *testing.T) {
		run := func() uint64 {
			sim := newTestSimulator(2, vmas, NewRandomPolicy(), NewRandomSource([]int{1, 2, 3, 0, 1}))
			runTrace(t, sim, trace)
			return sim.TotalCost()
		}
		assert.Equal(t, run(), run(), "identical input always produces identical total cost")
	})

	t.Run("FIFOIgnoresTheRandomCursor", func(t *testing.T) {
		random := NewRandomSource([]int{7, 7, 7})
		sim := newTestSimulator(2, vmas, NewFIFOPolicy(), random)
		runTrace(t, sim, trace)
		assert.Equal(t, 0, random.cursor, "FIFO never calls Next, so the cursor never advances")
	})
}

func TestInvariantViolationPanics(t *testing.T) {
	t.Run("ContextSwitchToUnknownProcess", func(t *testing.T) {
		sim := newTestSimulator(1, [][]VMA{fullVMA(false, false)}, NewFIFOPolicy(), nil)
		assert.Panics(t, func() {
			sim.Step(Instruction{Opcode: 'c', Operand: 5})
		})
	})

	t.Run("UnknownOpcode", func(t *testing.T) {
		sim := newTestSimulator(1, [][]VMA{fullVMA(false, false)}, NewFIFOPolicy(), nil)
		assert.Panics(t, func() {
			sim.Step(Instruction{Opcode: 'x', Operand: 0})
		})
	})
}

func TestAccessPathSegv(t *testing.T) {
	sim := newTestSimulator(1, [][]VMA{{{StartVPage: 0, EndVPage: 0}}}, NewFIFOPolicy(), nil)
	runTrace(t, sim, []Instruction{
		{Opcode: 'c', Operand: 0},
		{Opcode: 'r', Operand: 10}, // outside the only VMA
	})

	proc := sim.processes.Get(0)
	assert.Equal(t, uint64(1), proc.Stats.Segv)
	assert.False(t, proc.PageTable[10].Present(), "a SEGV never faults the page in")
}
