package generation

import (
	"fmt"
	"slices"
	"strings"
)

// Built-in reference example sets. Each entry describes a pattern from a
// proven short-form style; ideation prompts use them as a register to
// transcend, not premises to remix.

// DeadpanStyleExamples captures the low-energy, fourth-wall-breaking
// single-creator style.
var DeadpanStyleExamples = []string{
	"Deadpan fourth-wall break: exhausted developer stares directly into camera after discovering absurd tech situation",
	"Voiceover character skit: visible person talks to unseen roommate/colleague, creating dialogue-driven narrative",
	"Tech slang humor: uses 'cooked', 'locked in', 'wifey', 'bro' to create Gen-Z/tech worker authenticity",
	"Relatable exhaustion: low-energy delivery showing developer fatigue with corporate/tech life",
	"Multi-character single scene: one actor plays multiple roles through voiceover and visual context",
	"Real-world tech scenarios: code reviews, AI tools, dating apps - situations developers actually face",
	"Mood lighting contrast: switches between dark RGB monitor glow and bright natural apartment lighting",
	"Handheld camera intimacy: 'The Office' style direct-to-camera moments create personal connection",
	"Parental pressure humor: jokes about marriage expectations and cultural family dynamics",
	"Product discovery through frustration: tool introduced as solution to relatable developer pain point",
}

// SketchStyleExamples captures the fast-cut, costume-switching corporate
// satire style.
var SketchStyleExamples = []string{
	"Costume-based character switching: distinct outfits (beanie, polo, turtleneck) differentiate characters in rapid cuts",
	"Corporate hierarchy satire: 10x engineer vs junior dev, CEO demands, showing workplace power dynamics",
	"Fast-paced jump cuts: rapid editing between characters creates comedic rhythm and energy",
	"Dark twist ending: reveals uncomfortable truth (fired employee, hired VA) that subverts initial premise",
	"Character archetypes: Tech Bro (chaotic but praised), Senior Dev (biased), CEO (demanding), Junior Dev (desperate)",
	"Absurd approval logic: shows how corporate systems reward chaos while blocking simple fixes",
	"Visual character differentiation: relies on costume changes (grey beanie, blue polo, black turtleneck) for multi-character skits",
	"High energy vs low energy contrast: confident/arrogant characters vs desperate/panicked characters",
	"Impossible feature demands: CEO asks for unrealistic features, creating comedic tension",
	"Product as last resort: tool suggested when all other options fail, creating natural integration",
}

// Reference example style names.
const (
	StyleDeadpan = "deadpan"
	StyleSketch  = "sketch"
	StyleMixed   = "mixed"
)

// ReferenceExamples returns the built-in example set for a style. Style
// names are case-insensitive; the zero value selects the mixed set.
func ReferenceExamples(style string) ([]string, error) {
	switch strings.ToLower(style) {
	case StyleDeadpan:
		return slices.Clone(DeadpanStyleExamples), nil
	case StyleSketch:
		return slices.Clone(SketchStyleExamples), nil
	case StyleMixed, "":
		mixed := make([]string, 0, len(DeadpanStyleExamples)+len(SketchStyleExamples))
		mixed = append(mixed, DeadpanStyleExamples...)
		mixed = append(mixed, SketchStyleExamples...)
		return mixed, nil
	default:
		return nil, fmt.Errorf("unknown reference style %q: use %q, %q, or %q",
			style, StyleDeadpan, StyleSketch, StyleMixed)
	}
}
