package vm

// Process owns a VMA list and a fixed-size page table. It lives for the
// whole simulation; exit resets its PTEs and frees its frames, but the
// record itself stays addressable (spec.md §3).
type Process struct {
	Pid        int
	VMAs       []VMA
	PageTable  [PageTableSize]PTE
	Stats      ProcessStats
}

// NewProcess builds a process with a zeroed page table, ready to be
// loaded from the trace file's VMA block.
func NewProcess(pid int, vmas []VMA) *Process {
	return &Process{Pid: pid, VMAs: vmas}
}

// FindVMA returns the VMA covering vpage, or nil if none does.
func (p *Process) FindVMA(vpage int) *VMA {
	for i := range p.VMAs {
		if p.VMAs[i].Covers(vpage) {
			return &p.VMAs[i]
		}
	}
	return nil
}

// ProcessTable is the indexed set of Process records addressed by the
// trace file's process index (0..P-1).
type ProcessTable struct {
	procs []*Process
}

// NewProcessTable builds a table from the loaded VMA blocks, one Process
// per block, in file order.
func NewProcessTable(vmaBlocks [][]VMA) *ProcessTable {
	procs := make([]*Process, len(vmaBlocks))
	for i, vmas := range vmaBlocks {
		procs[i] = NewProcess(i, vmas)
	}
	return &ProcessTable{procs: procs}
}

// Get returns the process at index pid, or nil if out of range.
func (t *ProcessTable) Get(pid int) *Process {
	if pid < 0 || pid >= len(t.procs) {
		return nil
	}
	return t.procs[pid]
}

// All returns the processes in index order, for reporting.
func (t *ProcessTable) All() []*Process {
	return t.procs
}

// Len returns the number of processes in the table.
func (t *ProcessTable) Len() int {
	return len(t.procs)
}
