// Package verutils implements GNU "sort -V" style version ordering for
// filenames that embed kernel or package versions (e.g. linux-image-5.10.0-rc1).
// Kernel version strings are not semver, so the comparison works on
// alternating numeric and non-numeric chunks instead.
package verutils

import (
	"sort"
	"strconv"
)

// chunk splits s into its leading numeric or non-numeric run and the rest.
func chunk(s string) (head string, isNum bool, rest string) {
	if s == "" {
		return "", false, ""
	}
	isNum = s[0] >= '0' && s[0] <= '9'
	i := 0
	for i < len(s) {
		d := s[i] >= '0' && s[i] <= '9'
		if d != isNum {
			break
		}
		i++
	}
	return s[:i], isNum, s[i:]
}

// Compare orders two version-bearing strings the way sort -V does:
// numeric runs compare as integers, everything else compares bytewise.
// Returns -1, 0 or 1.
func Compare(a, b string) int {
	for a != "" || b != "" {
		ah, aNum, aRest := chunk(a)
		bh, bNum, bRest := chunk(b)

		switch {
		case aNum && bNum:
			ai, _ := strconv.ParseUint(ah, 10, 64)
			bi, _ := strconv.ParseUint(bh, 10, 64)
			if ai != bi {
				if ai < bi {
					return -1
				}
				return 1
			}
		case ah != bh:
			if ah < bh {
				return -1
			}
			return 1
		}

		a, b = aRest, bRest
	}
	return 0
}

// Sort orders names in ascending version order, in place. The newest
// version ends up last, matching the `ls -v | tail -1` selection the
// kernel install path relies on.
func Sort(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return Compare(names[i], names[j]) < 0
	})
}

// Latest returns the highest-versioned entry, or "" for an empty slice.
func Latest(names []string) string {
	if len(names) == 0 {
		return ""
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	Sort(sorted)
	return sorted[len(sorted)-1]
}
