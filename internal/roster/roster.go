// Package roster provides the injectable known-player lookup used to
// attribute anonymous table blocks to the tracked club. The spreadsheet
// layout omits a team column, so block ownership is recovered by checking
// whether any player name in the block belongs to the club's roster.
package roster

import (
	"encoding/json"
	"os"
	"strings"
)

// Lookup answers whether a raw player-name cell belongs to the tracked club.
type Lookup interface {
	Contains(playerName string) bool
}

// Set is a roster as a set of uppercase surname fragments. A cell matches
// when it contains any fragment, so "Mia MUSIC PULJIC" matches the entry
// "MUSIC".
type Set []string

// FromNames builds a Set, uppercasing and trimming each entry.
func FromNames(names ...string) Set {
	out := make(Set, 0, len(names))
	for _, n := range names {
		n = strings.ToUpper(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// LoadFile reads a roster from a JSON array of names.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return FromNames(names...), nil
}

func (s Set) Contains(playerName string) bool {
	up := strings.ToUpper(playerName)
	for _, frag := range s {
		if strings.Contains(up, frag) {
			return true
		}
	}
	return false
}
