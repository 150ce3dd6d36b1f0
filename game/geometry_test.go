package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zenjiro/pose-game/pose"
)

func TestCirclesOverlap(t *testing.T) {
	examples := []struct {
		name     string
		a, b     pose.Circle
		expected bool
	}{
		{
			name:     "clearly overlapping",
			a:        pose.Circle{X: 0, Y: 0, R: 5},
			b:        pose.Circle{X: 7, Y: 0, R: 5},
			expected: true,
		},
		{
			name:     "clearly apart",
			a:        pose.Circle{X: 0, Y: 0, R: 5},
			b:        pose.Circle{X: 11, Y: 0, R: 5},
			expected: false,
		},
		{
			name:     "exactly touching does not overlap",
			a:        pose.Circle{X: 0, Y: 0, R: 5},
			b:        pose.Circle{X: 10, Y: 0, R: 5},
			expected: false,
		},
		{
			name:     "diagonal overlap",
			a:        pose.Circle{X: 0, Y: 0, R: 5},
			b:        pose.Circle{X: 3, Y: 4, R: 1},
			expected: true,
		},
	}

	for _, example := range examples {
		assert.Equal(t, example.expected, CirclesOverlap(example.a, example.b), example.name)
	}
}
