package model

import (
	"strconv"
	"strings"
)

// Ref identifies a pokemon either by dex number or by name.
type Ref interface {
	ref()
}

type ByID int

type ByName string

func (ByID) ref()   {}
func (ByName) ref() {}

// ParseRef treats input starting with a number as a dex number, ignoring
// anything after the digits, and anything else as a name.
func ParseRef(s string) Ref {
	s = strings.TrimSpace(s)

	n := 0
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	digits := n
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == digits {
		return ByName(s)
	}

	id, err := strconv.Atoi(s[:n])
	if err != nil {
		return ByName(s)
	}

	return ByID(id)
}
