package board

import (
	"strconv"
	"strings"
)

// ID identifies a container or an item. Containers and items share one namespace.
type ID string

const (
	// None is the absent target.
	None ID = ""
	// Trash is the discard zone; dropping an item on it deletes the item.
	Trash ID = "void"
	// Placeholder is the "add column" target; dropping an item on it creates a column.
	Placeholder ID = "placeholder"
)

// Reserved reports whether id is one of the sentinel targets.
func Reserved(id ID) bool {
	return id == Trash || id == Placeholder
}

// successor returns the next identifier after id.
//
// Upper-case letter ids count in bijective base-26 (A..Z, AA, AB, ..., ZZ, AAA).
// Anything else gets a trailing decimal counter incremented, starting at 2.
func successor(id ID) ID {
	s := string(id)
	if s == "" {
		return "A"
	}
	if isUpperAlpha(s) {
		return ID(nextAlpha(s))
	}
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return ID(s + "2")
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return ID(s + "2")
	}
	return ID(s[:i] + strconv.Itoa(n+1))
}

func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func nextAlpha(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 'Z' {
			b[i]++
			return string(b)
		}
		b[i] = 'A'
	}
	return "A" + string(b)
}

// NextContainerID returns the first successor of last that taken does not report as used.
func NextContainerID(last ID, taken func(ID) bool) ID {
	next := successor(last)
	for taken(next) || Reserved(next) || strings.TrimSpace(string(next)) == "" {
		next = successor(next)
	}
	return next
}
