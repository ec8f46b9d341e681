package reactor

import (
	"fmt"
	"math"
)

// Reactants loaded at the start of the batch.
const (
	OilLiters      = 1.0
	MethanolLiters = 0.2
	LyeGrams       = 4
)

// Theoretical product volumes at full conversion.
const (
	BiodieselYieldLiters = 0.9
	GlycerinYieldLiters  = 0.3
)

// DurationHours is the simulated length of the reaction.
const DurationHours = 24.0

// Progress bounds.
const (
	MinProgress = 0.0
	MaxProgress = 100.0
)

// Phase thresholds on the progress scale.
const (
	IntermediateStart = 30.0
	SeparatedStart    = 70.0
)

// glycerinShare is the fraction of the vessel height glycerin occupies at
// full conversion.
const glycerinShare = 0.4

// Phase is the qualitative stage of the reaction.
type Phase int

const (
	PhaseMixing Phase = iota
	PhaseIntermediate
	PhaseSeparated
)

func (p Phase) String() string {
	switch p {
	case PhaseMixing:
		return "mixing"
	case PhaseIntermediate:
		return "intermediate"
	case PhaseSeparated:
		return "separated"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Status returns the sentence describing the phase.
func (p Phase) Status() string {
	switch p {
	case PhaseIntermediate:
		return "Fase intermedia: comienza la separación entre biodiésel (arriba) y glicerina (abajo)."
	case PhaseSeparated:
		return "Fase final: biodiésel arriba, glicerina abajo (más densa)."
	default:
		return "Fase inicial: mezcla homogénea de aceite, metanol y sosa cáustica."
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes a phase name written by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseMixing, PhaseIntermediate, PhaseSeparated} {
		if string(text) == candidate.String() {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("reactor: unknown phase %q", text)
}

// Clamp restricts progress to [0, 100]. NaN maps to 0.
func Clamp(progress float64) float64 {
	if math.IsNaN(progress) {
		return MinProgress
	}
	return math.Max(MinProgress, math.Min(MaxProgress, progress))
}

// PhaseOf classifies progress. Boundaries belong to the later phase.
func PhaseOf(progress float64) Phase {
	switch {
	case progress < IntermediateStart:
		return PhaseMixing
	case progress < SeparatedStart:
		return PhaseIntermediate
	default:
		return PhaseSeparated
	}
}

// MixStop is the offset of the middle gradient stop during the intermediate
// phase. It grows from 0 at progress 30 towards 1 at progress 70 and never
// exceeds 1.
func MixStop(progress float64) float64 {
	return math.Min((progress-IntermediateStart)/(SeparatedStart-IntermediateStart), 1)
}

// Layers holds the vertical extent of each product inside the vessel.
type Layers struct {
	Biodiesel float64 `json:"biodiesel"`
	Glycerin  float64 `json:"glycerin"`
}

// LayersAt returns the layer heights for progress. Glycerin grows linearly to
// 40% of the vessel; biodiesel takes the rest.
func LayersAt(progress float64) Layers {
	g := VesselHeight * (progress / 100) * glycerinShare
	return Layers{Biodiesel: VesselHeight - g, Glycerin: g}
}

// Boundary returns the y coordinate where the biodiesel layer meets glycerin.
func (l Layers) Boundary() float64 { return VesselY + l.Biodiesel }

// Volumes is the material balance at a point in the reaction.
type Volumes struct {
	Hours     float64 `json:"hours"`
	Oil       float64 `json:"oil"`
	Methanol  float64 `json:"methanol"`
	Lye       int     `json:"lye"`
	Biodiesel float64 `json:"biodiesel"`
	Glycerin  float64 `json:"glycerin"`
}

// VolumesAt returns the volumes for progress. Product volumes and elapsed time
// are linear in progress; reactant amounts are the initial load.
func VolumesAt(progress float64) Volumes {
	return Volumes{
		Hours:     ElapsedHours(progress),
		Oil:       OilLiters,
		Methanol:  MethanolLiters,
		Lye:       LyeGrams,
		Biodiesel: BiodieselYieldLiters * progress / 100,
		Glycerin:  GlycerinYieldLiters * progress / 100,
	}
}

// ElapsedHours converts progress to simulated hours.
func ElapsedHours(progress float64) float64 {
	return progress / 100 * DurationHours
}

// Report formats the volumes as a single line.
func (v Volumes) Report() string {
	return fmt.Sprintf("Tiempo: %.1f h | Aceite: %.2f L | Metanol: %.2f L | Sosa: %d g → Biodiésel: %.2f L | Glicerina: %.2f L",
		v.Hours, v.Oil, v.Methanol, v.Lye, v.Biodiesel, v.Glycerin)
}

// Frame is everything derived from one progress value.
type Frame struct {
	Progress float64 `json:"progress"`
	Phase    Phase   `json:"phase"`
	MixStop  float64 `json:"mix_stop"`
	Layers   Layers  `json:"layers"`
	Volumes  Volumes `json:"volumes"`
	Status   string  `json:"status"`
	Report   string  `json:"report"`
}

// Compute derives the frame for progress. Out-of-range input is clamped.
func Compute(progress float64) Frame {
	p := Clamp(progress)
	phase := PhaseOf(p)
	v := VolumesAt(p)
	f := Frame{
		Progress: p,
		Phase:    phase,
		Layers:   LayersAt(p),
		Volumes:  v,
		Status:   phase.Status(),
		Report:   v.Report(),
	}
	if phase == PhaseIntermediate {
		f.MixStop = MixStop(p)
	}
	return f
}
