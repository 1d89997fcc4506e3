package model

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a roster entry
// The team engine only reorders and reassigns players, it never mutates them
type Player struct {
	ID        PlayerID `json:"id"`
	Name      string   `json:"name"`
	AvatarRef string   `json:"avatar_ref,omitempty"` // opaque image handle, empty for placeholder
}

// PlayerIDs returns the ids of the given players in order
func PlayerIDs(players []Player) []PlayerID {
	ids := make([]PlayerID, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

// HasDuplicateIDs reports whether any player id appears more than once
func HasDuplicateIDs(players []Player) bool {
	seen := make(map[PlayerID]struct{}, len(players))
	for _, p := range players {
		if _, ok := seen[p.ID]; ok {
			return true
		}
		seen[p.ID] = struct{}{}
	}
	return false
}
