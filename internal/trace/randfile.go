package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/vmerr"
)

// LoadRandomFile reads the random-number file backing vm.RandomSource:
// the first integer is the count, followed by that many signed integers
// (spec.md §4.1, §6).
func LoadRandomFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open random file: %w", err)
	}
	defer f.Close()
	return ParseRandomFile(f)
}

// ParseRandomFile parses an already-open random-number stream.
func ParseRandomFile(r io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(r)
	var fields []string
	for scanner.Scan() {
		fields = append(fields, strings.Fields(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read random file: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty random file", vmerr.ErrMalformedRandFile)
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: invalid count %q", vmerr.ErrMalformedRandFile, fields[0])
	}
	if len(fields)-1 < count {
		return nil, fmt.Errorf("%w: declared %d values, found %d", vmerr.ErrMalformedRandFile, count, len(fields)-1)
	}

	table := make([]int, count)
	for i := 0; i < count; i++ {
		v, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: value %d %q: %v", vmerr.ErrMalformedRandFile, i, fields[i+1], err)
		}
		table[i] = v
	}
	return table, nil
}
