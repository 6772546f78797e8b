package action

import "strings"

// Street identifies which board cards a DealStreet command carries
type Street string

// street constants, as written in the notation
const (
	Flop  Street = "FLOP"
	Turn  Street = "TURN"
	River Street = "RIVER"
)

// CardCount returns how many board cards the street deals
func (s Street) CardCount() int {
	if s == Flop {
		return 3
	}

	return 1
}

// Name returns the lowercase name of the street
func (s Street) Name() string {
	return strings.ToLower(string(s))
}
