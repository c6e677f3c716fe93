// Package core provides fundamental types and utilities for the survivors engine.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import (
	"math"
	"math/rand"
)

// Vec is a point or direction on the continuous play field.
// Units are screen character cells.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the euclidean length of v.
func (v Vec) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns v scaled to unit length.
// A zero vector yields fallback instead.
func (v Vec) Normalize(fallback Vec) Vec {
	l := v.Len()
	if l == 0 {
		return fallback
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// RandRange returns a uniform float in [min, max).
func RandRange(rng *rand.Rand, min, max float64) float64 {
	return rng.Float64()*(max-min) + min
}

// RandInt returns a uniform integer in [min, max], both inclusive.
func RandInt(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// RoundCell maps a continuous coordinate to its nearest cell index.
// Halves round up, so -0.5 lands on cell 0.
func RoundCell(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Fraction returns num/den clamped to [0, 1].
// A non-positive denominator yields 0.
func Fraction(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return ClampF(num/den, 0, 1)
}
