// Package glow approximates a bloom halo with a few enlarged, additively
// blended copies of a surface drawn behind it.
package glow

import (
	"errors"
	"fmt"
)

// ErrInvalidShells is returned for shell lists of the wrong size or order.
var ErrInvalidShells = errors.New("glow: invalid shells")

// Shell count bounds for a halo.
const (
	MinShells = 2
	MaxShells = 3
)

// Shell is one halo copy.
type Shell struct {
	Grow   float32 // added to width and height
	Weight float32 // opacity at full intensity
	Depth  float32 // offset behind the primary surface
}

// DefaultShells is the standard three-copy halo.
var DefaultShells = []Shell{
	{Grow: 0.4, Weight: 0.9, Depth: 0.01},
	{Grow: 0.6, Weight: 0.2, Depth: 0.02},
	{Grow: 1.0, Weight: 0.1, Depth: 0.03},
}

// Stack holds the shells for one layer and their current opacities.
type Stack struct {
	Shells    []Shell
	Opacities []float32
}

// NewStack validates shells and returns a stack with zero opacity.
// Shells must number MinShells..MaxShells, grow outward and have non-increasing weights.
func NewStack(shells []Shell) (*Stack, error) {
	if len(shells) < MinShells || len(shells) > MaxShells {
		return nil, fmt.Errorf("%w: %d shells (want %d-%d)", ErrInvalidShells, len(shells), MinShells, MaxShells)
	}
	for i, s := range shells {
		if !(s.Grow > 0) {
			return nil, fmt.Errorf("%w: shell %d grow %g", ErrInvalidShells, i, s.Grow)
		}
		if s.Weight < 0 || s.Weight > 1 || s.Weight != s.Weight {
			return nil, fmt.Errorf("%w: shell %d weight %g", ErrInvalidShells, i, s.Weight)
		}
		if i > 0 {
			prev := shells[i-1]
			if s.Grow <= prev.Grow {
				return nil, fmt.Errorf("%w: shell %d does not grow past shell %d", ErrInvalidShells, i, i-1)
			}
			if s.Weight > prev.Weight {
				return nil, fmt.Errorf("%w: shell %d weight rises above shell %d", ErrInvalidShells, i, i-1)
			}
		}
	}
	own := make([]Shell, len(shells))
	copy(own, shells)
	return &Stack{
		Shells:    own,
		Opacities: make([]float32, len(shells)),
	}, nil
}

// Update sets each shell's opacity to intensity*weight.
func (s *Stack) Update(intensity float32) {
	if intensity != intensity || intensity < 0 {
		intensity = 0
	} else if intensity > 1 {
		intensity = 1
	}
	for i, sh := range s.Shells {
		s.Opacities[i] = intensity * sh.Weight
	}
}

// Scale returns the (x, y) scale factors that enlarge a w×h surface to shell i.
func (s *Stack) Scale(i int, w, h float32) (float32, float32) {
	g := s.Shells[i].Grow
	sx, sy := float32(1), float32(1)
	if w > 0 {
		sx = (w + g) / w
	}
	if h > 0 {
		sy = (h + g) / h
	}
	return sx, sy
}

// Visible reports whether any shell would contribute to the frame.
func (s *Stack) Visible() bool {
	for _, o := range s.Opacities {
		if o > 0 {
			return true
		}
	}
	return false
}
