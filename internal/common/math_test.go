package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"positive number", 5, 5},
		{"negative number", -5, 5},
		{"zero", 0, 0},
		{"large positive", 1000000, 1000000},
		{"large negative", -1000000, 1000000},
		{"min int special case", math.MinInt32 + 1, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Abs(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMin(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		expected int
	}{
		{"a smaller", 3, 5, 3},
		{"b smaller", 7, 2, 2},
		{"equal", 4, 4, 4},
		{"negative numbers", -5, -3, -5},
		{"positive and negative", 5, -3, -3},
		{"zero and positive", 0, 10, 0},
		{"zero and negative", 0, -10, -10},
		{"large numbers", 1000000, 999999, 999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Min(tt.a, tt.b)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMax(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		expected int
	}{
		{"a larger", 5, 3, 5},
		{"b larger", 2, 7, 7},
		{"equal", 4, 4, 4},
		{"negative numbers", -5, -3, -3},
		{"positive and negative", 5, -3, 5},
		{"zero and positive", 0, 10, 10},
		{"zero and negative", 0, -10, 0},
		{"large numbers", 1000000, 999999, 1000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Max(tt.a, tt.b)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Benchmarks
func BenchmarkAbs(b *testing.B) {
	values := []int{-5, 5, -100, 100, 0}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Abs(values[i%len(values)])
	}
}

func BenchmarkMin(b *testing.B) {
	pairs := [][2]int{{5, 3}, {-5, -3}, {100, 200}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pair := pairs[i%len(pairs)]
		_ = Min(pair[0], pair[1])
	}
}

func BenchmarkMax(b *testing.B) {
	pairs := [][2]int{{5, 3}, {-5, -3}, {100, 200}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pair := pairs[i%len(pairs)]
		_ = Max(pair[0], pair[1])
	}
}
