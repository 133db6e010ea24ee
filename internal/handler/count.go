package handler

import (
	"strings"
)

// parseCount sanitizes a requested item count the way the page input does:
// the leading integer of raw is used, a value without one falls back to
// def, and the result is clamped to [1, maxCount].
func parseCount(raw string, def, maxCount uint) uint {
	s := strings.TrimSpace(raw)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var value uint64
	digits := 0
	overflow := false
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if !overflow {
			next := value*10 + uint64(s[digits]-'0')
			if next/10 != value {
				overflow = true
			}
			value = next
		}
		digits++
	}

	switch {
	case digits == 0:
		value = uint64(def)
	case negative:
		value = 0
	case overflow:
		value = uint64(maxCount)
	}

	return clampCount(value, maxCount)
}

func clampCount(v uint64, maxCount uint) uint {
	if v < 1 {
		return 1
	}
	if v > uint64(maxCount) {
		return maxCount
	}
	return uint(v)
}
