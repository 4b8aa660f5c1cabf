package systems

import (
	"math"

	"github.com/pthm-cable/pond/components"
)

// epsilon guards divisions by distances and speeds.
const epsilon = 1e-6

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// velocityMagnitude returns the magnitude of a velocity vector.
func velocityMagnitude(vx, vy float32) float32 {
	return float32(math.Sqrt(float64(vx*vx + vy*vy)))
}

// limitSpeed rescales vel so its magnitude does not exceed maxSpeed.
func limitSpeed(vel *components.Velocity, maxSpeed float32) {
	speed := velocityMagnitude(vel.X, vel.Y)
	if speed > maxSpeed {
		vel.X = vel.X / speed * maxSpeed
		vel.Y = vel.Y / speed * maxSpeed
	}
}

// Speed returns the magnitude of a velocity.
func Speed(vel components.Velocity) float32 {
	return velocityMagnitude(vel.X, vel.Y)
}
