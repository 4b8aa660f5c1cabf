package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/pthm-cable/pond/config"
)

var (
	// ErrInvalidBoundaryParams is returned when the generation parameters cannot describe a pond.
	ErrInvalidBoundaryParams = errors.New("invalid boundary params")

	// ErrDegenerateBoundary is returned when corner pruning leaves a side with too few points.
	ErrDegenerateBoundary = errors.New("degenerate boundary")
)

// MinPointsPerSide is the fewest points a side may keep after corner pruning.
const MinPointsPerSide = 3

// Side identifies one edge of the inset rectangle.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
	sideCount
)

var sideNames = [sideCount]string{"top", "right", "bottom", "left"}

// String returns the side name.
func (s Side) String() string {
	if s >= 0 && s < sideCount {
		return sideNames[s]
	}
	return "unknown"
}

// BoundaryParams controls pond outline generation.
type BoundaryParams struct {
	Width, Height    float64 // world dimensions
	Thickness        float64 // bank inset from the world edge
	CornerBuffer     float64 // pull side endpoints away from the inset corners
	Variation        float64 // jitter range applied to each point on both axes
	MinPointsPerSide int
	MaxPointsPerSide int
	CornerThreshold  float64 // extra margin for corner pruning
}

// BoundaryParamsFromConfig reads boundary parameters from the loaded config.
func BoundaryParamsFromConfig(cfg *config.Config) BoundaryParams {
	return BoundaryParams{
		Width:            float64(cfg.Derived.WorldW32),
		Height:           float64(cfg.Derived.WorldH32),
		Thickness:        cfg.World.Thickness,
		CornerBuffer:     cfg.Derived.CornerBuffer,
		Variation:        cfg.Derived.Variation,
		MinPointsPerSide: cfg.Boundary.MinPointsPerSide,
		MaxPointsPerSide: cfg.Boundary.MaxPointsPerSide,
		CornerThreshold:  cfg.Derived.CornerThreshold,
	}
}

// Validate checks that the parameters can produce a boundary.
func (p BoundaryParams) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: world %vx%v", ErrInvalidBoundaryParams, p.Width, p.Height)
	case p.Thickness < 0 || p.CornerBuffer < 0 || p.Variation < 0 || p.CornerThreshold < 0:
		return fmt.Errorf("%w: negative distance", ErrInvalidBoundaryParams)
	case 2*(p.Thickness+p.CornerBuffer) >= math.Min(p.Width, p.Height):
		return fmt.Errorf("%w: thickness %v and corner buffer %v leave no side length", ErrInvalidBoundaryParams, p.Thickness, p.CornerBuffer)
	case p.MinPointsPerSide < 2:
		return fmt.Errorf("%w: min points per side %d < 2", ErrInvalidBoundaryParams, p.MinPointsPerSide)
	case p.MaxPointsPerSide < p.MinPointsPerSide:
		return fmt.Errorf("%w: max points per side %d < min %d", ErrInvalidBoundaryParams, p.MaxPointsPerSide, p.MinPointsPerSide)
	}
	return nil
}

// Boundary is the irregular pond outline. It is immutable once generated.
type Boundary struct {
	points []orb.Point           // open ring in traversal order
	sides  [sideCount][]orb.Point // the same points grouped by side
	params BoundaryParams
}

// GenerateBoundary builds a jittered outline around the inset rectangle.
// Sides are walked top, right, bottom, left so the points form a single ring.
func GenerateBoundary(rng *rand.Rand, p BoundaryParams) (*Boundary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	t, cb := p.Thickness, p.CornerBuffer
	w, h := p.Width, p.Height
	ends := [sideCount][2]orb.Point{
		SideTop:    {{t + cb, t}, {w - t - cb, t}},
		SideRight:  {{w - t, t + cb}, {w - t, h - t - cb}},
		SideBottom: {{w - t - cb, h - t}, {t + cb, h - t}},
		SideLeft:   {{t, h - t - cb}, {t, t + cb}},
	}

	b := &Boundary{params: p}
	for s := SideTop; s < sideCount; s++ {
		count := p.MinPointsPerSide + rng.Intn(p.MaxPointsPerSide-p.MinPointsPerSide+1)
		start, end := ends[s][0], ends[s][1]

		side := make([]orb.Point, 0, count)
		for i := 0; i < count; i++ {
			frac := float64(i) / float64(count-1)
			x := start[0] + (end[0]-start[0])*frac + rng.Float64()*p.Variation - p.Variation/2
			y := start[1] + (end[1]-start[1])*frac + rng.Float64()*p.Variation - p.Variation/2
			if p.inCornerSquare(x, y) {
				continue
			}
			side = append(side, orb.Point{x, y})
		}

		if len(side) < MinPointsPerSide {
			return nil, fmt.Errorf("%w: %s side kept %d of %d points", ErrDegenerateBoundary, s, len(side), count)
		}
		b.sides[s] = side
		b.points = append(b.points, side...)
	}

	return b, nil
}

// GenerateBoundaryRetry regenerates until a non-degenerate boundary is produced.
// It returns the boundary and the number of rejected attempts.
// Parameter errors are returned immediately.
func GenerateBoundaryRetry(rng *rand.Rand, p BoundaryParams, attempts int) (*Boundary, int, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		b, err := GenerateBoundary(rng, p)
		if err == nil {
			return b, i, nil
		}
		if !errors.Is(err, ErrDegenerateBoundary) {
			return nil, i, err
		}
		lastErr = err
	}
	return nil, attempts, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// inCornerSquare reports whether a point sits inside the pruned square at a world corner.
func (p BoundaryParams) inCornerSquare(x, y float64) bool {
	limit := p.Thickness + p.CornerThreshold
	dx := math.Min(x, p.Width-x)
	dy := math.Min(y, p.Height-y)
	return dx < limit && dy < limit
}

// Contains reports whether (x, y) lies inside the pond using a crossing-number ray cast.
// An edge is counted only when exactly one endpoint lies strictly above y, which
// keeps vertices on the ray from being counted twice.
func (b *Boundary) Contains(x, y float64) bool {
	inside := false
	n := len(b.points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := b.points[i][0], b.points[i][1]
		xj, yj := b.points[j][0], b.points[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// Points returns the outline in traversal order. Callers must not modify it.
func (b *Boundary) Points() []orb.Point {
	return b.points
}

// SideCounts returns how many points each side kept.
func (b *Boundary) SideCounts() [4]int {
	var counts [4]int
	for s := range b.sides {
		counts[s] = len(b.sides[s])
	}
	return counts
}

// Params returns the parameters the boundary was generated with.
func (b *Boundary) Params() BoundaryParams {
	return b.params
}

// Ring returns a closed copy of the outline.
func (b *Boundary) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(b.points)+1)
	ring = append(ring, b.points...)
	if len(b.points) > 0 {
		ring = append(ring, b.points[0])
	}
	return ring
}

// Polygon returns the outline as a single-ring polygon.
func (b *Boundary) Polygon() orb.Polygon {
	return orb.Polygon{b.Ring()}
}

// Area returns the enclosed water area.
func (b *Boundary) Area() float64 {
	return math.Abs(planar.Area(b.Polygon()))
}

// Centroid returns the area-weighted centre of the pond.
func (b *Boundary) Centroid() orb.Point {
	c, _ := planar.CentroidArea(b.Polygon())
	return c
}

// EdgeMidpoints returns the midpoint of every consecutive pair of points within each side.
func (b *Boundary) EdgeMidpoints() []orb.Point {
	var mids []orb.Point
	for _, side := range b.sides {
		for i := 1; i < len(side); i++ {
			mids = append(mids, orb.Point{
				(side[i-1][0] + side[i][0]) / 2,
				(side[i-1][1] + side[i][1]) / 2,
			})
		}
	}
	return mids
}
