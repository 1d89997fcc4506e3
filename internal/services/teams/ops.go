package teams

import (
	"github.com/jerrk000/teamify/internal/dependencies/random"
	"github.com/jerrk000/teamify/internal/model"
)

// Swap returns p with the players at a and b exchanged. p itself is not modified.
func Swap(p model.Partition, a, b model.PlayerPointer) (model.Partition, bool) {
	if a == b || !p.InBounds(a) || !p.InBounds(b) {
		return p, false
	}

	next := p.Clone()
	teamA := next.Team(a.Team)
	teamB := next.Team(b.Team)
	teamA[a.Index], teamB[b.Index] = teamB[b.Index], teamA[a.Index]
	return next, true
}

// Move returns p with the player at from appended to the end of toTeam
func Move(p model.Partition, from model.PlayerPointer, toTeam model.TeamID) (model.Partition, bool) {
	if !toTeam.Valid() || from.Team == toTeam || !p.InBounds(from) {
		return p, false
	}

	src := p.Team(from.Team)
	player := src[from.Index]

	remaining := make([]model.Player, 0, len(src)-1)
	remaining = append(remaining, src[:from.Index]...)
	remaining = append(remaining, src[from.Index+1:]...)

	dst := p.Team(toTeam)
	joined := make([]model.Player, 0, len(dst)+1)
	joined = append(joined, dst...)
	joined = append(joined, player)

	if from.Team == model.TeamA {
		return model.Partition{TeamA: remaining, TeamB: joined}, true
	}
	return model.Partition{TeamA: joined, TeamB: remaining}, true
}

// Shuffle flattens p, shuffles it uniformly and splits it 50/50
func Shuffle(p model.Partition, r random.Random) model.Partition {
	players := p.Flatten()
	random.Shuffle(r, len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})
	return model.SplitIntoTeams(players)
}

// ApplyDrop turns a drop target into a swap or a move. A slot target swaps, a
// zone target moves the player to that team. Self drops and stale pointers leave
// p unchanged with OutcomeNone.
func ApplyDrop(p model.Partition, from model.PlayerPointer, target model.DropTarget) (model.Partition, Outcome) {
	if target.IsSlot() {
		if target.Pointer() == from {
			return p, OutcomeNone
		}
		next, ok := Swap(p, from, target.Pointer())
		if !ok {
			return p, OutcomeNone
		}
		return next, OutcomeSwap
	}

	if target.Team == from.Team {
		return p, OutcomeNone
	}
	next, ok := Move(p, from, target.Team)
	if !ok {
		return p, OutcomeNone
	}
	return next, OutcomeMove
}
