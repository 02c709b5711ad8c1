package parameter

// Star Field
const (
	// StarCount is the fixed particle population
	StarCount = 5000

	// StarHalfExtent is the half side of the spawn cube around the origin
	StarHalfExtent = 250.0

	// StarProximityThreshold is the viewpoint distance below which a star is eligible to fall
	// Stars farther away stay static to avoid updating the whole field every tick
	StarProximityThreshold = 100.0

	// StarFallRate is the per-tick vertical decrement of eligible stars
	StarFallRate = 0.1

	// StarLowerBound and StarUpperBound define the vertical wrap
	// A star falling below StarLowerBound reappears at StarUpperBound
	StarLowerBound = -200.0
	StarUpperBound = 200.0

	// StarSeed is the default RNG seed for the initial layout
	StarSeed = 0x5EED
)
