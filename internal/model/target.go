package model

// DropTargetKind distinguishes slot drops from zone drops
type DropTargetKind string

const (
	DropTargetSlot DropTargetKind = "slot" // swap with the player at Team/Index
	DropTargetZone DropTargetKind = "zone" // join Team, appended at the end
)

// DropTarget is what a drag resolves to. Index is only meaningful for slots.
type DropTarget struct {
	Kind  DropTargetKind `json:"kind"`
	Team  TeamID         `json:"team"`
	Index int            `json:"index,omitempty"`
}

// SlotTarget creates a target for the occupied slot at ptr
func SlotTarget(ptr PlayerPointer) DropTarget {
	return DropTarget{Kind: DropTargetSlot, Team: ptr.Team, Index: ptr.Index}
}

// ZoneTarget creates a join-zone target for a team
func ZoneTarget(team TeamID) DropTarget {
	return DropTarget{Kind: DropTargetZone, Team: team}
}

// IsSlot returns true for slot targets
func (t DropTarget) IsSlot() bool {
	return t.Kind == DropTargetSlot
}

// Pointer returns the slot address of a slot target
func (t DropTarget) Pointer() PlayerPointer {
	return PlayerPointer{Team: t.Team, Index: t.Index}
}

// TargetRect pairs a drop target with its hit rectangle
type TargetRect struct {
	Target DropTarget `json:"target"`
	Rect   Rect       `json:"rect"`
}
