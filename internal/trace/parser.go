// Package trace parses the two external input files the simulator
// consumes: the instruction trace (process/VMA blocks followed by
// opcode/operand instructions) and the random-number file. Neither
// file interprets policy semantics; they only produce the typed records
// internal/vm's core operates on (spec.md §6).
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/vm"
	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/vmerr"
)

// lineScanner yields non-blank, non-comment lines from the trace file,
// in order, tracking a 1-based line number for diagnostics.
type lineScanner struct {
	scanner *bufio.Scanner
	lineNo  int
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{scanner: bufio.NewScanner(r)}
}

// next returns the next meaningful line, or ("", false) at EOF.
func (l *lineScanner) next() (string, bool) {
	for l.scanner.Scan() {
		l.lineNo++
		line := strings.TrimSpace(l.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

func (l *lineScanner) errf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", vmerr.ErrMalformedTrace, l.lineNo, fmt.Sprintf(format, args...))
}

// Program is the parsed trace file: one VMA list per process, in file
// order, and the instruction stream that follows them.
type Program struct {
	VMABlocks    [][]vm.VMA
	Instructions []vm.Instruction
}

// LoadProgram reads and parses the instruction trace file (spec.md §6).
func LoadProgram(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	defer f.Close()
	return ParseProgram(f)
}

// ParseProgram parses an already-open trace stream, for testing without
// touching the filesystem.
func ParseProgram(r io.Reader) (*Program, error) {
	ls := newLineScanner(r)

	line, ok := ls.next()
	if !ok {
		return nil, ls.errf("expected process count, got EOF")
	}
	numProcs, err := strconv.Atoi(line)
	if err != nil || numProcs < 0 {
		return nil, ls.errf("invalid process count %q", line)
	}

	blocks := make([][]vm.VMA, numProcs)
	for p := 0; p < numProcs; p++ {
		line, ok = ls.next()
		if !ok {
			return nil, ls.errf("expected VMA count for process %d, got EOF", p)
		}
		numVMAs, err := strconv.Atoi(line)
		if err != nil || numVMAs < 0 {
			return nil, ls.errf("invalid VMA count %q for process %d", line, p)
		}

		vmas := make([]vm.VMA, numVMAs)
		for v := 0; v < numVMAs; v++ {
			line, ok = ls.next()
			if !ok {
				return nil, ls.errf("expected VMA %d for process %d, got EOF", v, p)
			}
			vma, err := parseVMA(line)
			if err != nil {
				return nil, ls.errf("process %d VMA %d: %v", p, v, err)
			}
			vmas[v] = vma
		}
		blocks[p] = vmas
	}

	var instructions []vm.Instruction
	for {
		line, ok = ls.next()
		if !ok {
			break
		}
		inst, err := parseInstruction(line)
		if err != nil {
			return nil, ls.errf("%v", err)
		}
		instructions = append(instructions, inst)
	}

	return &Program{VMABlocks: blocks, Instructions: instructions}, nil
}

func parseVMA(line string) (vm.VMA, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return vm.VMA{}, fmt.Errorf("expected 4 fields, got %d (%q)", len(fields), line)
	}
	values := make([]int, 4)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return vm.VMA{}, fmt.Errorf("field %d %q: %v", i, f, err)
		}
		values[i] = n
	}
	return vm.VMA{
		StartVPage:     values[0],
		EndVPage:       values[1],
		WriteProtected: values[2] != 0,
		FileMapped:     values[3] != 0,
	}, nil
}

func parseInstruction(line string) (vm.Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return vm.Instruction{}, fmt.Errorf("expected opcode and operand, got %q", line)
	}
	opcodeStr := fields[0]
	if len(opcodeStr) != 1 || !strings.ContainsRune("cerw", rune(opcodeStr[0])) {
		return vm.Instruction{}, fmt.Errorf("unknown opcode %q", opcodeStr)
	}
	operand, err := strconv.Atoi(fields[1])
	if err != nil || operand < 0 {
		return vm.Instruction{}, fmt.Errorf("invalid operand %q", fields[1])
	}
	return vm.Instruction{Opcode: opcodeStr[0], Operand: operand}, nil
}
