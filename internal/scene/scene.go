// Package scene computes the decorative hero scene: a ring of stylised trees
// around a bobbing "spirit" shape, with drifting sparkles.
package scene

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	defaultTrees    = 40
	defaultSparkles = 24
	defaultSeed     = 7

	minRadius = 5.0
	maxRadius = 17.0
)

// Pose is the spirit's transform at one instant.
type Pose struct {
	// Y is the vertical offset in scene units.
	Y float64
	// Rotation is the yaw in radians.
	Rotation float64
}

// PoseAt returns the spirit pose after elapsed time: a gentle bob and a slow turn.
func PoseAt(elapsed time.Duration) Pose {
	t := elapsed.Seconds()
	return Pose{
		Y:        math.Sin(t)*0.2 + 0.5,
		Rotation: t * 0.1,
	}
}

// BobPeriod is the time for the spirit to return to the same height.
var BobPeriod = time.Duration(math.Round(2 * math.Pi * float64(time.Second)))

// Tree is a single tree on the ground plane.
type Tree struct {
	X, Z  float64
	Scale float64
}

// Sparkle is an ambient particle.
type Sparkle struct {
	X, Y  float64
	Size  float64
	Delay time.Duration
	Color string
}

// Scene is the static layout. Only the spirit pose depends on time.
type Scene struct {
	Trees    []Tree
	Sparkles []Sparkle
}

var sparkleColors = []string{"#0ea5e9", "#4ade80", "#86efac"}

// New lays out a scene from seed. The same seed always gives the same scene.
func New(seed uint64) Scene {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	trees := make([]Tree, defaultTrees)
	for i := range trees {
		angle := rng.Float64() * 2 * math.Pi
		radius := minRadius + rng.Float64()*(maxRadius-minRadius)
		trees[i] = Tree{
			X:     math.Sin(angle) * radius,
			Z:     math.Cos(angle) * radius,
			Scale: 0.5 + rng.Float64(),
		}
	}

	sparkles := make([]Sparkle, defaultSparkles)
	for i := range sparkles {
		sparkles[i] = Sparkle{
			X:     rng.Float64()*20 - 10,
			Y:     rng.Float64() * 6,
			Size:  2 + rng.Float64()*4,
			Delay: time.Duration(rng.Float64() * float64(4*time.Second)),
			Color: sparkleColors[i%len(sparkleColors)],
		}
	}
	return Scene{Trees: trees, Sparkles: sparkles}
}

// Default is the scene rendered on the home page.
func Default() Scene {
	return New(defaultSeed)
}

// Keyframe is one sampled step of the spirit animation.
type Keyframe struct {
	Percent float64
	Pose    Pose
}

// Keyframes samples PoseAt over one bob period in steps+1 frames, starting
// at 0% and ending at 100%.
func Keyframes(steps int) []Keyframe {
	if steps < 1 {
		steps = 1
	}
	frames := make([]Keyframe, 0, steps+1)
	for i := 0; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		frames = append(frames, Keyframe{
			Percent: frac * 100,
			Pose:    PoseAt(time.Duration(frac * float64(BobPeriod))),
		})
	}
	return frames
}
