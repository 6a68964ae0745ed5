package wall

// BeadingStrategyType selects which bead-width distribution pattern the
// wall generator asks for. The strategy itself is an external collaborator
// per the core's scope — this package only defines the factory contract and
// a couple of concrete, dependency-free strategies useful on their own and
// as a base other strategies can wrap (per §1: "pattern definitions ...
// assumed available with a factory keyed by strategy type").
type BeadingStrategyType string

const (
	// StrategyDistributed spreads the available thickness evenly across the
	// requested bead count, clamping each bead at min_bead_width when the
	// count would force unreasonably thin beads.
	StrategyDistributed BeadingStrategyType = "distributed"
	// StrategyCenterDeviation computes the StrategyDistributed beading, then
	// gives every bead the mean width of that beading.
	StrategyCenterDeviation BeadingStrategyType = "center_deviation"
	// StrategyOuterWallInset keeps bead_width_0 fixed for the outer wall and
	// distributes the rest with StrategyDistributed.
	StrategyOuterWallInset BeadingStrategyType = "outer_wall_inset"
)

// BeadingStrategyConfig carries every parameter §4.1 step 3 lists for
// strategy construction.
type BeadingStrategyConfig struct {
	Type               BeadingStrategyType
	BeadWidth0         float64 // nominal outermost bead width, microns
	BeadWidthX         float64 // nominal inner bead width, microns
	TransitionLength   float64 // microns
	TransitioningAngle float64 // radians
	PrintThinWalls     bool
	MinBeadWidth       float64 // microns
	MinFeatureSize     float64 // microns
	MaxBeadCount       int
}

// Beading is the per-thickness result a BeadingStrategy produces: the
// number of beads the strategy chooses for a given local thickness, and the
// width assigned to each, outer bead first.
type Beading struct {
	Count         int
	Widths        []float64 // len == Count, outer-to-inner
	LeftoverSpace float64   // unused thickness not covered by any bead
}

// BeadingStrategy computes, for a local wall thickness, how many beads to
// lay down and how wide each one is. Implementations are read-only after
// construction (§5 "Shared resources") and may be invoked concurrently.
type BeadingStrategy interface {
	// ComputeBeading returns the beading for the given thickness, capped at
	// preferredCount beads (the walls still wanted to satisfy inset_count).
	// preferredCount < 0 means "no cap — let thickness alone decide."
	ComputeBeading(thickness float64, preferredCount int) Beading
	// OptimalThickness returns the thickness at which count beads fit with
	// no leftover space, the inverse query ComputeBeading uses internally
	// to size the slack it distributes.
	OptimalThickness(count int) float64
	// Name identifies the strategy for diagnostics.
	Name() string
}

// NewBeadingStrategy is the factory §1 calls for: given a strategy type and
// its configuration, construct the matching BeadingStrategy. Unknown types
// produce a StrategyUnavailable error (§7).
func NewBeadingStrategy(cfg BeadingStrategyConfig) (BeadingStrategy, error) {
	switch cfg.Type {
	case StrategyDistributed, "":
		return newDistributedBeadingStrategy(cfg), nil
	case StrategyCenterDeviation:
		return newCenterDeviationBeadingStrategy(cfg), nil
	case StrategyOuterWallInset:
		return newOuterWallInsetBeadingStrategy(cfg), nil
	default:
		return nil, &StrategyUnavailableError{Type: cfg.Type}
	}
}

// StrategyUnavailableError is returned by NewBeadingStrategy for an
// unrecognized BeadingStrategyType (§7 "Strategy construction failure").
type StrategyUnavailableError struct {
	Type BeadingStrategyType
}

func (e *StrategyUnavailableError) Error() string {
	return "wall: beading strategy unavailable: " + string(e.Type)
}
