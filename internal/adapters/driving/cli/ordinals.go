package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// parseOrdinals parses a selection like "1,3,5-7" into layer ordinals.
// Each ordinal appears once, in order of first mention. Ordinals above
// maxOrdinal are rejected before any range is expanded.
func parseOrdinals(s string, maxOrdinal int) ([]int, error) {
	var out []int
	seen := make(map[int]bool)
	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		first, err := parseOrdinal(lo)
		if err != nil {
			return nil, err
		}
		if first > maxOrdinal {
			return nil, outOfRange(first, maxOrdinal)
		}
		if !isRange {
			add(first)
			continue
		}

		last, err := parseOrdinal(hi)
		if err != nil {
			return nil, err
		}
		if last < first {
			return nil, fmt.Errorf("%w: range %q is reversed", domain.ErrInvalidInput, part)
		}
		if last > maxOrdinal {
			return nil, outOfRange(last, maxOrdinal)
		}
		for n := first; n <= last; n++ {
			add(n)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty selection %q", domain.ErrInvalidInput, s)
	}
	return out, nil
}

func parseOrdinal(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a layer number", domain.ErrInvalidInput, s)
	}
	return n, nil
}

func outOfRange(n, maxOrdinal int) error {
	return fmt.Errorf("%w: no layer numbered %d (document has %d)", domain.ErrNotFound, n, maxOrdinal)
}
