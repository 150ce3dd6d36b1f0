package game

import "github.com/zenjiro/pose-game/pose"

// CirclesOverlap reports whether two circles overlap. Exactly touching
// circles do not count as overlapping.
func CirclesOverlap(a, b pose.Circle) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	sum := a.R + b.R

	return dx*dx+dy*dy < sum*sum
}
