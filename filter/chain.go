package filter

import (
	"strconv"
	"strings"

	"forensic-audio/presets"
)

// fixed tuning shared by every chain
const (
	noiseFloorDb         = -20
	compressorAttackMs   = 10
	compressorReleaseMs  = 100
	compressorMakeupDb   = 2
	compressorKneeDb     = 2
	eqMaxGainDb          = 10
	voiceEmphasisFreqHz  = 1000
	voiceEmphasisWidthHz = 800
	voiceEmphasisMaxDb   = 6
	limiterLevelIn       = "1"
	limiterLevelOut      = "0.95"
	limiterCeiling       = "0.95"
	loudnormIntegrated   = "-16"
	loudnormTruePeak     = "-1.5"
	loudnormRange        = "11"
)

type Param struct {
	Key   string
	Value string
}

// Stage is one discrete processing operation in the chain, e.g. a high-pass
// filter or a compressor. Params keep their insertion order.
type Stage struct {
	Name   string
	Params []Param
}

func (s Stage) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for i, p := range s.Params {
		if i == 0 {
			b.WriteByte('=')
		} else {
			b.WriteByte(':')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// Chain is an ordered filter graph. Order matters: each stage consumes the
// previous stage's output.
type Chain []Stage

// String serializes the chain into ffmpeg -af syntax. This is the only place
// filter-graph text is produced.
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// Build produces the filter chain for a preset with overrides applied. Pure:
// no I/O, and equal inputs serialize byte-identically.
//
// Stage order is a contract: high-pass, low-pass, noise reduction,
// compressor, one equalizer per EQ band, voice emphasis, then an
// unconditional limiter and loudness normalization.
func Build(p presets.Preset, ov *presets.Overrides) Chain {
	merged := ov.Apply(p)

	var chain Chain

	if merged.HighpassHz > 0 {
		chain = append(chain, Stage{Name: "highpass", Params: []Param{
			{Key: "f", Value: num(merged.HighpassHz)},
		}})
	}

	if merged.LowpassHz > 0 {
		chain = append(chain, Stage{Name: "lowpass", Params: []Param{
			{Key: "f", Value: num(merged.LowpassHz)},
		}})
	}

	if merged.NoiseReduction > 0 {
		chain = append(chain, Stage{Name: "afftdn", Params: []Param{
			{Key: "nr", Value: num(merged.NoiseReduction)},
			{Key: "nf", Value: num(noiseFloorDb)},
			{Key: "nt", Value: "w"},
		}})
	}

	if merged.DynamicBoost > 0 {
		// gentle ratios (2:1 up) and a threshold that rises with the boost
		ratio := 2 + merged.DynamicBoost/10
		threshold := -25 + merged.DynamicBoost/4
		chain = append(chain, Stage{Name: "acompressor", Params: []Param{
			{Key: "threshold", Value: num(threshold) + "dB"},
			{Key: "ratio", Value: num(ratio)},
			{Key: "attack", Value: num(compressorAttackMs)},
			{Key: "release", Value: num(compressorReleaseMs)},
			{Key: "makeup", Value: num(compressorMakeupDb)},
			{Key: "knee", Value: num(compressorKneeDb)},
		}})
	}

	for _, band := range merged.EqBands {
		chain = append(chain, Stage{Name: "equalizer", Params: []Param{
			{Key: "f", Value: num(band.FreqHz)},
			{Key: "t", Value: "o"},
			{Key: "g", Value: num(clamp(band.GainDb, -eqMaxGainDb, eqMaxGainDb))},
		}})
	}

	if merged.VoiceEmphasisDb > 0 {
		// wide bell at 1 kHz; gain capped to avoid pumping artifacts
		gain := merged.VoiceEmphasisDb
		if gain > voiceEmphasisMaxDb {
			gain = voiceEmphasisMaxDb
		}
		chain = append(chain, Stage{Name: "equalizer", Params: []Param{
			{Key: "f", Value: num(voiceEmphasisFreqHz)},
			{Key: "t", Value: "o"},
			{Key: "g", Value: num(gain)},
			{Key: "w", Value: num(voiceEmphasisWidthHz)},
		}})
	}

	chain = append(chain, Stage{Name: "alimiter", Params: []Param{
		{Key: "level_in", Value: limiterLevelIn},
		{Key: "level_out", Value: limiterLevelOut},
		{Key: "limit", Value: limiterCeiling},
	}})

	chain = append(chain, Stage{Name: "loudnorm", Params: []Param{
		{Key: "I", Value: loudnormIntegrated},
		{Key: "TP", Value: loudnormTruePeak},
		{Key: "LRA", Value: loudnormRange},
	}})

	return chain
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
