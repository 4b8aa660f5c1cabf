package systems

import "math/rand"

// Bounds is the inset play rectangle agents bounce and clamp against.
// It is the world rectangle shrunk by Thickness on every side.
type Bounds struct {
	Width, Height float32
	Thickness     float32
}

// MinX returns the left edge of the play area.
func (b Bounds) MinX() float32 { return b.Thickness }

// MaxX returns the right edge of the play area.
func (b Bounds) MaxX() float32 { return b.Width - b.Thickness }

// MinY returns the top edge of the play area.
func (b Bounds) MinY() float32 { return b.Thickness }

// MaxY returns the bottom edge of the play area.
func (b Bounds) MaxY() float32 { return b.Height - b.Thickness }

// RandomPoint returns a uniform point at least margin inside the play area.
// If the margin does not fit, the point collapses onto the centre line of that axis.
func (b Bounds) RandomPoint(rng *rand.Rand, margin float32) (x, y float32) {
	return randomIn(rng, b.MinX()+margin, b.MaxX()-margin),
		randomIn(rng, b.MinY()+margin, b.MaxY()-margin)
}

func randomIn(rng *rand.Rand, lo, hi float32) float32 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + rng.Float32()*(hi-lo)
}

// randomSpread returns a uniform value in [-spread/2, spread/2).
func randomSpread(rng *rand.Rand, spread float32) float32 {
	return (rng.Float32() - 0.5) * spread
}
