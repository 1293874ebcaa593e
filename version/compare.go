package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Compare compares two major.minor.patch versions, with or without a v
// prefix. It returns 1 if a is newer, -1 if b is newer and 0 if they are equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}

	return 0, nil
}

func parse(s string) ([3]int, error) {
	var v [3]int

	parts := strings.SplitN(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".", 3)
	if len(parts) != 3 {
		return v, fmt.Errorf("invalid version %q", s)
	}

	for i, part := range parts {
		// pre-release and build suffixes are ignored
		part, _, _ = strings.Cut(part, "-")
		n, err := strconv.Atoi(part)
		if err != nil {
			return v, fmt.Errorf("invalid version %q: %w", s, err)
		}
		v[i] = n
	}

	return v, nil
}
