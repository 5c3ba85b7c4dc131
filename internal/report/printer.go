// Package report holds the pretty-printers spec.md §6 treats as
// external collaborators to the paging core: the per-instruction event
// trace, the page-table and frame-table dumps, the per-process stats,
// and the TOTALCOST summary line. None of these interpret policy
// semantics; they only render what internal/vm already computed.
package report

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/vm"
)

// TraceWriter is a vm.Sink that renders each emitted event as the
// indented line spec.md §6 specifies, in the order events arrive.
type TraceWriter struct {
	w io.Writer
}

func NewTraceWriter(w io.Writer) *TraceWriter { return &TraceWriter{w: w} }

// PrintInstructionHeader writes the opcode-echo line that precedes an
// instruction's events: "<inst_index>: ==> <op> <operand>".
func PrintInstructionHeader(w io.Writer, index int, opcode byte, operand int) {
	fmt.Fprintf(w, "%d: ==> %c %d\n", index, opcode, operand)
}

func (t *TraceWriter) Emit(ev vm.Event) {
	switch ev.Kind {
	case vm.EventUnmap:
		fmt.Fprintf(t.w, " UNMAP %d:%d\n", ev.ProcessID, ev.VPage)
	case vm.EventOut:
		fmt.Fprintln(t.w, " OUT")
	case vm.EventFout:
		fmt.Fprintln(t.w, " FOUT")
	case vm.EventIn:
		fmt.Fprintln(t.w, " IN")
	case vm.EventFin:
		fmt.Fprintln(t.w, " FIN")
	case vm.EventZero:
		fmt.Fprintln(t.w, " ZERO")
	case vm.EventMap:
		fmt.Fprintf(t.w, " MAP %d\n", ev.FrameIndex)
	case vm.EventSegv:
		fmt.Fprintln(t.w, " SEGV")
	case vm.EventSegprot:
		fmt.Fprintln(t.w, " SEGPROT")
	case vm.EventExit:
		fmt.Fprintf(t.w, "EXIT current process %d\n", ev.ProcessID)
	default:
		panic(fmt.Sprintf("report: unhandled event kind %d", ev.Kind))
	}
}

// PrintPageTables prints one line per process, one token per virtual
// page: "<vpage>:<flags>" for a page whose PTE has any bit set, and "#"
// for a PTE that is all zero (see blankPTE).
func PrintPageTables(w io.Writer, processes *vm.ProcessTable) {
	for _, p := range processes.All() {
		fmt.Fprintf(w, "PT[%d]:", p.Pid)
		for vpage := 0; vpage < vm.PageTableSize; vpage++ {
			fmt.Fprint(w, " ", pteToken(vpage, &p.PageTable[vpage]))
		}
		fmt.Fprintln(w)
	}
}

func pteToken(vpage int, pte *vm.PTE) string {
	if blankPTE(pte) {
		return "#"
	}
	flags := make([]byte, 0, 6)
	if pte.Present() {
		flags = append(flags, 'P')
	}
	if pte.Referenced() {
		flags = append(flags, 'R')
	}
	if pte.Modified() {
		flags = append(flags, 'M')
	}
	if pte.PagedOut() {
		flags = append(flags, 'O')
	}
	if pte.FileMapped() {
		flags = append(flags, 'F')
	}
	if pte.WriteProtect() {
		flags = append(flags, 'W')
	}
	return fmt.Sprintf("%d:%s", vpage, flags)
}

// blankPTE reports whether pte is exactly its zero value. That holds for
// a page that has never faulted, and also for one that was evicted clean
// after its referenced bit was cleared and whose VMA sets neither
// write_protect nor file_mapped. It reads the PTE through the same
// 4-byte word the sizeof contract in spec.md §3 requires, rather than
// exporting an internal accessor just for this check.
func blankPTE(pte *vm.PTE) bool {
	return *(*uint32)(unsafe.Pointer(pte)) == 0
}

// PrintFrameTable prints one token per frame: "-" if free, else
// "pid:vpage" for its current tenant.
func PrintFrameTable(w io.Writer, frames *vm.FrameTable) {
	fmt.Fprint(w, "FT:")
	for i := range frames.Frames {
		f := &frames.Frames[i]
		if f.Free() {
			fmt.Fprint(w, " -")
		} else {
			fmt.Fprintf(w, " %d:%d", f.ProcessID, f.VPage)
		}
	}
	fmt.Fprintln(w)
}

// PrintProcessStats prints one summary line per process, then the
// TOTALCOST line spec.md §6 pins exactly: "TOTALCOST <inst_count>
// <ctx_switches> <process_exits> <total_cost> <sizeof_pte>".
func PrintProcessStats(w io.Writer, sim *vm.Simulator) {
	for _, p := range sim.Processes().All() {
		s := p.Stats
		fmt.Fprintf(w, "PROC[%d]: U=%d M=%d I=%d O=%d FI=%d FO=%d Z=%d SV=%d SP=%d\n",
			p.Pid, s.Unmaps, s.Maps, s.Ins, s.Outs, s.Fins, s.Fouts, s.Zeros, s.Segv, s.Segprot)
	}
	fmt.Fprintf(w, "TOTALCOST %d %d %d %d %d\n",
		sim.InstCount, sim.CtxSwitches, sim.ProcessExits, sim.TotalCost(), sizeofPTE)
}

// sizeofPTE is the byte size of vm.PTE, echoed in the summary line. It
// is computed once from unsafe.Sizeof rather than hardcoded, so a
// change to the PTE layout that breaks the 4-byte invariant shows up in
// the report instead of silently lying about it.
var sizeofPTE = int(unsafe.Sizeof(vm.PTE{}))
