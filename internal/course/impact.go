package course

// ContactSource identifies what the player hit.
// Hazards reuse their SegmentKind; the walls have their own source.
type ContactSource int

const (
	SourceSpinner ContactSource = ContactSource(KindSpinner)
	SourceLimbo   ContactSource = ContactSource(KindLimbo)
	SourceAxe     ContactSource = ContactSource(KindAxe)
	SourceBounds  ContactSource = 100
)

// String returns the lowercase source name used in events.
func (s ContactSource) String() string {
	switch s {
	case SourceSpinner:
		return "spinner"
	case SourceLimbo:
		return "limbo"
	case SourceAxe:
		return "axe"
	case SourceBounds:
		return "bounds"
	default:
		return "unknown"
	}
}

// SourceOf maps a hazard kind to its contact source.
func SourceOf(kind SegmentKind) ContactSource {
	return ContactSource(kind)
}

// DefaultImpactScales are the force magnitudes that map to full intensity.
var DefaultImpactScales = map[ContactSource]float64{
	SourceSpinner: 500,
	SourceLimbo:   500,
	SourceAxe:     500,
	SourceBounds:  10000,
}

// Relay maps contact force magnitudes to feedback intensities.
type Relay struct {
	scales map[ContactSource]float64
}

// NewRelay creates a relay with the given per-source scales.
// A nil map uses DefaultImpactScales.
func NewRelay(scales map[ContactSource]float64) *Relay {
	if scales == nil {
		scales = DefaultImpactScales
	}
	copied := make(map[ContactSource]float64, len(scales))
	for k, v := range scales {
		copied[k] = v
	}
	return &Relay{scales: copied}
}

// Intensity returns min(force/scale, 1) in [0, 1].
// Sources without a positive scale produce no feedback.
func (r *Relay) Intensity(src ContactSource, force float64) float64 {
	scale, ok := r.scales[src]
	// The negated comparison also rejects NaN.
	if !ok || !(scale > 0) || !(force > 0) {
		return 0
	}
	v := force / scale
	if v > 1 {
		return 1
	}
	return v
}
