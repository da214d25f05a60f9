package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAveragePoints(t *testing.T) {
	assert.Equal(t, 0.0, AveragePoints(0, 0))
	assert.Equal(t, 0.0, AveragePoints(50, 0))
	assert.Equal(t, 25.0, AveragePoints(50, 2))
	assert.InDelta(t, 16.67, AveragePoints(50, 3), 0.01)
}

func TestPodiumIndexes(t *testing.T) {
	// Runner-up on the left, leader in the middle, third on the right
	assert.Equal(t, []int{1, 0, 2}, PodiumIndexes(3))
	assert.Equal(t, []int{1, 0, 2}, PodiumIndexes(10))
	assert.Equal(t, []int{1, 0}, PodiumIndexes(2))
	assert.Equal(t, []int{0}, PodiumIndexes(1))
	assert.Nil(t, PodiumIndexes(0))
}
