// Command vmsim replays a virtual-memory trace through the paging core
// in internal/vm and prints whichever of the trace/page-table/frame-
// table/summary reports the -o option string requests (spec.md §6).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	goerrors "github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/report"
	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/trace"
	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/vm"
	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/vmerr"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run wires flags, the loader, the core, and the reporter together and
// returns the process exit code, so tests can drive it without an
// os.Exit in the middle.
func run(args []string, stdout, stderr *os.File) (code int) {
	logger := log.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	defer func() {
		if r := recover(); r != nil {
			if stackErr, ok := r.(*goerrors.Error); ok {
				logger.WithField("stack", stackErr.ErrorStack()).Error("fatal invariant violation")
			} else {
				logger.WithField("panic", r).Error("fatal invariant violation")
			}
			code = 2
		}
	}()

	cfg, err := parseFlags(args)
	if err != nil {
		logger.WithError(err).Error("invalid configuration")
		return 1
	}

	program, err := trace.LoadProgram(cfg.traceFile)
	if err != nil {
		logger.WithError(err).WithField("file", cfg.traceFile).Error("failed to load trace")
		return 1
	}

	var random *vm.RandomSource
	if cfg.needsRandom {
		table, err := trace.LoadRandomFile(cfg.randomFile)
		if err != nil {
			logger.WithError(err).WithField("file", cfg.randomFile).Error("failed to load random file")
			return 1
		}
		random = vm.NewRandomSource(table)
	}

	processes := vm.NewProcessTable(program.VMABlocks)
	policy := newPolicy(cfg.algo)
	sim := vm.NewSimulator(cfg.numFrames, processes, policy, random)

	if cfg.trace {
		sim.SetSink(report.NewTraceWriter(stdout))
	}

	for i, inst := range program.Instructions {
		if cfg.trace {
			report.PrintInstructionHeader(stdout, i, inst.Opcode, inst.Operand)
		}
		sim.Step(inst)
	}

	if cfg.pageTables {
		report.PrintPageTables(stdout, processes)
	}
	if cfg.frameTable {
		report.PrintFrameTable(stdout, sim.Frames())
	}
	if cfg.stats {
		report.PrintProcessStats(stdout, sim)
	}

	return 0
}

type config struct {
	numFrames   int
	algo        byte
	traceFile   string
	randomFile  string
	needsRandom bool
	trace       bool
	pageTables  bool
	frameTable  bool
	stats       bool
}

func parseFlags(args []string) (config, error) {
	fs := flag.NewFlagSet("vmsim", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder)) // suppress default usage noise; we report our own errors

	numFrames := fs.Int("f", 0, "number of physical frames, 1..128")
	algo := fs.String("a", "", "replacement algorithm: f/r/c/e/a/w")
	opts := fs.String("o", "", "option flags: O trace, P page tables, F frame table, S stats")

	if err := fs.Parse(args); err != nil {
		return config{}, fmt.Errorf("%w: %v", vmerr.ErrInvalidFrameCount, err)
	}

	if *numFrames < 1 || *numFrames > vm.MaxFrames {
		return config{}, fmt.Errorf("%w: -f%d not in 1..%d", vmerr.ErrInvalidFrameCount, *numFrames, vm.MaxFrames)
	}

	if len(*algo) != 1 || !strings.ContainsRune("frceaw", rune((*algo)[0])) {
		return config{}, fmt.Errorf("%w: -a%q must be one of f/r/c/e/a/w", vmerr.ErrUnknownAlgorithm, *algo)
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return config{}, fmt.Errorf("%w: expected inputfile and randomfile, got %d positional args", vmerr.ErrMalformedTrace, len(rest))
	}

	algoByte := (*algo)[0]
	return config{
		numFrames:   *numFrames,
		algo:        algoByte,
		traceFile:   rest[0],
		randomFile:  rest[1],
		needsRandom: algoByte == 'r',
		trace:       strings.ContainsRune(*opts, 'O'),
		pageTables:  strings.ContainsRune(*opts, 'P'),
		frameTable:  strings.ContainsRune(*opts, 'F'),
		stats:       strings.ContainsRune(*opts, 'S'),
	}, nil
}

func newPolicy(algo byte) vm.Policy {
	switch algo {
	case 'f':
		return vm.NewFIFOPolicy()
	case 'r':
		return vm.NewRandomPolicy()
	case 'c':
		return vm.NewClockPolicy()
	case 'e':
		return vm.NewNRUPolicy()
	case 'a':
		return vm.NewAgingPolicy()
	case 'w':
		return vm.NewWorkingSetPolicy()
	default:
		panic(vmerr.ErrUnknownAlgorithm)
	}
}
