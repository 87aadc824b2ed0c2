package presets

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("unknown preset")

type EqBand struct {
	FreqHz float64
	GainDb float64
}

// Preset is a named bundle of forensic audio processing parameters. A zero
// value for any stage parameter disables that stage.
type Preset struct {
	Key             string
	Name            string
	Description     string
	HighpassHz      float64
	LowpassHz       float64
	NoiseReduction  float64 // 0..1
	DynamicBoost    float64
	VoiceEmphasisDb float64
	EqBands         []EqBand
}

// tuned to minimize white noise and processing artifacts
var catalog = map[string]Preset{
	"whisper": {
		Key:             "whisper",
		Name:            "Whisper Mode",
		Description:     "Optimized for whispers, minimal white noise (30-3500 Hz)",
		HighpassHz:      30,
		LowpassHz:       3500,
		NoiseReduction:  0.5,
		DynamicBoost:    8,
		VoiceEmphasisDb: 4,
		EqBands: []EqBand{
			{FreqHz: 100, GainDb: -3},
			{FreqHz: 300, GainDb: 2},
			{FreqHz: 1000, GainDb: 3},
			{FreqHz: 2000, GainDb: 2},
		},
	},
	"breath": {
		Key:             "breath",
		Name:            "Breath Detection",
		Description:     "Optimized for breathing, minimal processing (100-2000 Hz)",
		HighpassHz:      100,
		LowpassHz:       2000,
		NoiseReduction:  0.3,
		DynamicBoost:    12,
		VoiceEmphasisDb: 2,
		EqBands: []EqBand{
			{FreqHz: 200, GainDb: 2},
			{FreqHz: 500, GainDb: 3},
			{FreqHz: 1000, GainDb: 2},
		},
	},
	"vocal": {
		Key:             "vocal",
		Name:            "Vocal Isolation",
		Description:     "Optimized for vocal sounds, balanced processing (80-8000 Hz)",
		HighpassHz:      80,
		LowpassHz:       8000,
		NoiseReduction:  0.4,
		DynamicBoost:    6,
		VoiceEmphasisDb: 5,
		EqBands: []EqBand{
			{FreqHz: 150, GainDb: 1},
			{FreqHz: 400, GainDb: 3},
			{FreqHz: 1000, GainDb: 4},
			{FreqHz: 2000, GainDb: 3},
		},
	},
	"tv_suppress": {
		Key:             "tv_suppress",
		Name:            "TV Suppression",
		Description:     "TV background suppression, minimal artifacts (200-4000 Hz)",
		HighpassHz:      200,
		LowpassHz:       4000,
		NoiseReduction:  0.6,
		DynamicBoost:    10,
		VoiceEmphasisDb: 6,
		EqBands: []EqBand{
			{FreqHz: 60, GainDb: -8},
			{FreqHz: 120, GainDb: -5},
			{FreqHz: 500, GainDb: 4},
			{FreqHz: 1500, GainDb: 5},
			{FreqHz: 3000, GainDb: 3},
		},
	},
	"clean_whisper": {
		Key:             "clean_whisper",
		Name:            "Clean Whisper",
		Description:     "Minimal processing for very clean whisper enhancement",
		HighpassHz:      50,
		LowpassHz:       4000,
		NoiseReduction:  0.2,
		DynamicBoost:    4,
		VoiceEmphasisDb: 2,
		EqBands: []EqBand{
			{FreqHz: 250, GainDb: 2},
			{FreqHz: 500, GainDb: 3},
			{FreqHz: 1000, GainDb: 2},
		},
	},
	"gentle_enhance": {
		Key:             "gentle_enhance",
		Name:            "Gentle Enhancement",
		Description:     "Minimal processing for slight audio improvement",
		HighpassHz:      40,
		LowpassHz:       6000,
		NoiseReduction:  0.1,
		DynamicBoost:    2,
		VoiceEmphasisDb: 1,
		EqBands: []EqBand{
			{FreqHz: 300, GainDb: 1},
			{FreqHz: 1000, GainDb: 2},
		},
	},
}

// the catalog is fixed at build time, so a bad entry is a programming error
func init() {
	for key, p := range catalog {
		if p.Key != key {
			panic(fmt.Sprintf("preset %q: key field is %q", key, p.Key))
		}
		if err := validate(p); err != nil {
			panic(fmt.Sprintf("preset %q: %v", key, err))
		}
	}
}

func validate(p Preset) error {
	if p.HighpassHz < 0 {
		return fmt.Errorf("highpass %v is negative", p.HighpassHz)
	}
	if p.LowpassHz < 0 {
		return fmt.Errorf("lowpass %v is negative", p.LowpassHz)
	}
	if p.NoiseReduction < 0 || p.NoiseReduction > 1 {
		return fmt.Errorf("noise reduction %v outside [0,1]", p.NoiseReduction)
	}
	if p.DynamicBoost < 0 {
		return fmt.Errorf("dynamic boost %v is negative", p.DynamicBoost)
	}
	for _, b := range p.EqBands {
		if b.FreqHz <= 0 {
			return fmt.Errorf("eq band frequency %v is not positive", b.FreqHz)
		}
	}
	return nil
}

// Lookup returns a copy of the named preset. The copy's EqBands slice is
// detached from the catalog so callers can't alias the shared table.
func Lookup(key string) (Preset, error) {
	p, ok := catalog[key]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	p.EqBands = append([]EqBand(nil), p.EqBands...)
	return p, nil
}

// Keys returns the registered preset keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for key := range catalog {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Overrides is a partial preset: nil fields inherit from the base preset.
type Overrides struct {
	HighpassHz      *float64
	LowpassHz       *float64
	NoiseReduction  *float64
	DynamicBoost    *float64
	VoiceEmphasisDb *float64
	EqBands         []EqBand // non-nil replaces the base bands wholesale
}

// Apply merges the overrides onto a copy of base, field by field. A nil
// receiver returns an unmodified copy.
func (o *Overrides) Apply(base Preset) Preset {
	merged := base
	merged.EqBands = append([]EqBand(nil), base.EqBands...)
	if o == nil {
		return merged
	}
	if o.HighpassHz != nil {
		merged.HighpassHz = *o.HighpassHz
	}
	if o.LowpassHz != nil {
		merged.LowpassHz = *o.LowpassHz
	}
	if o.NoiseReduction != nil {
		merged.NoiseReduction = *o.NoiseReduction
	}
	if o.DynamicBoost != nil {
		merged.DynamicBoost = *o.DynamicBoost
	}
	if o.VoiceEmphasisDb != nil {
		merged.VoiceEmphasisDb = *o.VoiceEmphasisDb
	}
	if o.EqBands != nil {
		merged.EqBands = append([]EqBand(nil), o.EqBands...)
	}
	return merged
}
