package model

// TeamID identifies one of the two teams
type TeamID string

const (
	TeamA TeamID = "team_a"
	TeamB TeamID = "team_b"
)

// Teams returns both team identifiers in display order
func Teams() []TeamID {
	return []TeamID{TeamA, TeamB}
}

// Valid returns true for TeamA and TeamB
func (t TeamID) Valid() bool {
	return t == TeamA || t == TeamB
}

// Other returns the opposing team
func (t TeamID) Other() TeamID {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// PlayerPointer addresses a player by team and index within the current partition.
// Indices shift on every insert or remove, so pointers are only valid against the
// partition they were computed from.
type PlayerPointer struct {
	Team  TeamID `json:"team"`
	Index int    `json:"index"`
}

// Partition is the current division of a roster into two ordered teams
type Partition struct {
	TeamA []Player `json:"team_a"`
	TeamB []Player `json:"team_b"`
}

// SplitIntoTeams seeds a partition: the first ceil(n/2) players go to team A,
// the remainder to team B, preserving order
func SplitIntoTeams(players []Player) Partition {
	half := (len(players) + 1) / 2
	a := make([]Player, half)
	copy(a, players[:half])
	b := make([]Player, len(players)-half)
	copy(b, players[half:])
	return Partition{TeamA: a, TeamB: b}
}

// Team returns the players of the given team, or nil for an unknown team
func (p Partition) Team(team TeamID) []Player {
	switch team {
	case TeamA:
		return p.TeamA
	case TeamB:
		return p.TeamB
	default:
		return nil
	}
}

// Len returns the total number of players in both teams
func (p Partition) Len() int {
	return len(p.TeamA) + len(p.TeamB)
}

// Flatten returns team A followed by team B as a new slice
func (p Partition) Flatten() []Player {
	out := make([]Player, 0, p.Len())
	out = append(out, p.TeamA...)
	out = append(out, p.TeamB...)
	return out
}

// Clone returns a deep copy whose slices can be modified independently
func (p Partition) Clone() Partition {
	a := make([]Player, len(p.TeamA))
	copy(a, p.TeamA)
	b := make([]Player, len(p.TeamB))
	copy(b, p.TeamB)
	return Partition{TeamA: a, TeamB: b}
}

// InBounds returns true if the pointer addresses an existing player
func (p Partition) InBounds(ptr PlayerPointer) bool {
	if !ptr.Team.Valid() {
		return false
	}
	return ptr.Index >= 0 && ptr.Index < len(p.Team(ptr.Team))
}

// At returns the player at the pointer and whether it exists
func (p Partition) At(ptr PlayerPointer) (Player, bool) {
	if !p.InBounds(ptr) {
		return Player{}, false
	}
	return p.Team(ptr.Team)[ptr.Index], true
}

// PointerOf locates a player by id in the current partition
func (p Partition) PointerOf(id PlayerID) (PlayerPointer, bool) {
	for _, team := range Teams() {
		for i, player := range p.Team(team) {
			if player.ID == id {
				return PlayerPointer{Team: team, Index: i}, true
			}
		}
	}
	return PlayerPointer{}, false
}

// Equal compares two partitions by player ids and order
func (p Partition) Equal(other Partition) bool {
	return samePlayers(p.TeamA, other.TeamA) && samePlayers(p.TeamB, other.TeamB)
}

func samePlayers(a, b []Player) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
