package vm

// Instruction is one trace-file line: an opcode in {c, e, r, w} and its
// operand (a process index for c/e, a virtual page for r/w).
type Instruction struct {
	Opcode  byte
	Operand int
}

// Simulator is the single mutable context threading the whole engine
// together: frame table, process table, free list, chosen policy,
// random source, and the global counters from spec.md §3. Consolidating
// these into one value (instead of the package-level globals the
// source used) is the change spec.md §9 calls for.
type Simulator struct {
	frames    *FrameTable
	processes *ProcessTable
	free      *FreeList
	policy    Policy
	random    *RandomSource

	current *Process

	InstCount    int
	CtxSwitches  uint64
	ProcessExits uint64
	RWCount      uint64

	sink Sink
}

// NewSimulator wires a frame table sized numFrames, the given processes,
// a replacement policy, and (optionally nil, if the policy never
// consumes one) a random source, into one ready-to-run context.
func NewSimulator(numFrames int, processes *ProcessTable, policy Policy, random *RandomSource) *Simulator {
	return &Simulator{
		frames:    NewFrameTable(numFrames),
		processes: processes,
		free:      NewFreeList(numFrames),
		policy:    policy,
		random:    random,
	}
}

// SetSink attaches (or detaches, with nil) the event sink used for
// per-instruction tracing. Counters are tracked regardless.
func (s *Simulator) SetSink(sink Sink) { s.sink = sink }

// Frames exposes the frame table for reporting.
func (s *Simulator) Frames() *FrameTable { return s.frames }

// Processes exposes the process table for reporting.
func (s *Simulator) Processes() *ProcessTable { return s.processes }

// PolicyName exposes the active replacement policy's name for reporting.
func (s *Simulator) PolicyName() string { return s.policy.Name() }

// randomSource exposes the random source so a policy implementation outside
// this file (policy_random.go) can consume it; nothing else may.
func (s *Simulator) randomSource() *RandomSource { return s.random }

// Step consumes exactly one trace instruction and advances InstCount by
// one, per spec.md §4.7.
func (s *Simulator) Step(inst Instruction) {
	switch inst.Opcode {
	case 'c':
		s.current = s.processes.Get(inst.Operand)
		if s.current == nil {
			panic(invariantf("context switch to unknown process %d", inst.Operand))
		}
		s.CtxSwitches++
		s.InstCount++
	case 'e':
		proc := s.processes.Get(inst.Operand)
		if proc == nil {
			panic(invariantf("exit of unknown process %d", inst.Operand))
		}
		s.exitProcess(proc)
		s.ProcessExits++
		s.InstCount++
	case 'r', 'w':
		s.InstCount++
		s.RWCount++
		s.access(inst.Opcode, inst.Operand)
	default:
		panic(invariantf("unknown opcode %q", inst.Opcode))
	}
}

// Run consumes a full instruction stream in order.
func (s *Simulator) Run(instructions []Instruction) {
	for _, inst := range instructions {
		s.Step(inst)
	}
}

// TotalCost computes the weighted total cost line from spec.md §6:
// rw_count*1 + ctx_switches*130 + process_exits*1230, plus every
// process's own weighted stats.
func (s *Simulator) TotalCost() uint64 {
	total := s.RWCount*1 + s.CtxSwitches*130 + s.ProcessExits*1230
	for _, p := range s.processes.All() {
		total += p.Stats.TotalCost()
	}
	return total
}

// getFrame implements the Frame Allocator (spec.md §4.2): pop the free
// list if non-empty, otherwise ask the policy to pick a victim. Victim
// selection never touches the free list and never fails.
func (s *Simulator) getFrame() int {
	if !s.free.Empty() {
		return s.free.Pop()
	}
	victim := s.policy.SelectVictim(s)
	if victim < 0 || victim >= s.frames.Len() {
		panic(invariantf("policy %s selected out-of-range victim %d", s.policy.Name(), victim))
	}
	if s.frames.Frames[victim].Free() {
		panic(invariantf("policy %s selected free frame %d as victim", s.policy.Name(), victim))
	}
	return victim
}
