package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxialDistance(t *testing.T) {
	tests := []struct {
		name     string
		q1, r1   int
		q2, r2   int
		expected int
	}{
		{"same hex", 2, -1, 2, -1, 0},
		{"east neighbor", 0, 0, 1, 0, 1},
		{"north east neighbor", 0, 0, 1, -1, 1},
		{"south west neighbor", 0, 0, -1, 1, 1},
		{"straight line", 0, 0, 0, 3, 3},
		{"mixed", -2, 1, 2, -1, 4},
		{"not manhattan", 0, 0, 2, -2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AxialDistance(tt.q1, tt.r1, tt.q2, tt.r2)
			assert.Equal(t, tt.expected, result)

			resultReverse := AxialDistance(tt.q2, tt.r2, tt.q1, tt.r1)
			assert.Equal(t, result, resultReverse, "distance should be symmetric")
		})
	}
}

func TestIsValidAxial(t *testing.T) {
	tests := []struct {
		name     string
		q, r     int
		radius   int
		expected bool
	}{
		{"centre", 0, 0, 0, true},
		{"corner", 2, -2, 2, true},
		{"edge", -1, 2, 2, true},
		{"outside by s", 2, 1, 2, false},
		{"outside by q", 3, 0, 2, false},
		{"negative radius", 0, 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidAxial(tt.q, tt.r, tt.radius))
		})
	}
}

func TestHexCount(t *testing.T) {
	assert.Equal(t, 0, HexCount(-1))
	assert.Equal(t, 1, HexCount(0))
	assert.Equal(t, 7, HexCount(1))
	assert.Equal(t, 37, HexCount(3))

	count := 0
	for q := -3; q <= 3; q++ {
		for r := -3; r <= 3; r++ {
			if IsValidAxial(q, r, 3) {
				count++
			}
		}
	}
	assert.Equal(t, HexCount(3), count)
}

func BenchmarkAxialDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = AxialDistance(0, 0, 10, -4)
	}
}
