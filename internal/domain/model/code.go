package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Human-readable sequential code prefixes.
const (
	ShipmentCodePrefix = "SHP"
	OrderCodePrefix    = "ORD"
)

// FormatCode renders a sequential code such as SHP001. Sequence
// numbers beyond 999 simply grow wider.
func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// ParseCodeSuffix extracts the numeric suffix of a code. Returns zero
// for codes that do not match the prefix.
func ParseCodeSuffix(prefix, code string) int {
	if !strings.HasPrefix(code, prefix) {
		return 0
	}
	n, err := strconv.Atoi(code[len(prefix):])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
