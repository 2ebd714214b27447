package reject

import "github.com/katalvlaran/bspc/level"

// union merges the reject groups containing sectors a and b in place,
// relabelling every member of the larger-id group to the smaller-id group
// and splicing the two singly-chained rings together (spec.md §4.K). A
// no-op if a and b are already in the same group.
func union(sectors []level.Sector, a, b int) {
	ga, gb := sectors[a].RejectGroup, sectors[b].RejectGroup
	if ga == gb {
		return
	}

	small, big := ga, gb
	if small > big {
		small, big = big, small
	}

	// Every group's chain head is the sector whose index equals the group
	// id (a group only ever keeps the smaller of the two ids it was merged
	// from, so the losing head is never a head again). Walk big's chain
	// from its head, relabelling each member to small, then splice the
	// whole chain in right after small's head.
	tail := big
	for {
		sectors[tail].RejectGroup = small
		next := sectors[tail].RejectRing
		if next == level.NoIndex {
			break
		}
		tail = next
	}
	sectors[tail].RejectRing = sectors[small].RejectRing
	sectors[small].RejectRing = big
}
