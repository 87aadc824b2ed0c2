package filter

import (
	"reflect"
	"testing"

	"forensic-audio/presets"
)

// a preset with every stage enabled
func fullPreset() presets.Preset {
	return presets.Preset{
		Key:             "test",
		HighpassHz:      30,
		LowpassHz:       3500,
		NoiseReduction:  0.5,
		DynamicBoost:    8,
		VoiceEmphasisDb: 4,
		EqBands: []presets.EqBand{
			{FreqHz: 100, GainDb: -3},
			{FreqHz: 1000, GainDb: 3},
		},
	}
}

func stageNames(c Chain) []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return names
}

func TestBuildIsDeterministic(t *testing.T) {
	hp := 25.0
	ov := &presets.Overrides{HighpassHz: &hp}
	for _, key := range presets.Keys() {
		p, err := presets.Lookup(key)
		if err != nil {
			t.Fatal(err)
		}
		first := Build(p, ov).String()
		second := Build(p, ov).String()
		if first != second {
			t.Errorf("%q: repeated builds differ:\n%s\n%s", key, first, second)
		}
	}
}

func TestStageOrderAllEnabled(t *testing.T) {
	chain := Build(fullPreset(), nil)
	want := []string{
		"highpass", "lowpass", "afftdn", "acompressor",
		"equalizer", "equalizer", // eq bands
		"equalizer", // voice emphasis
		"alimiter", "loudnorm",
	}
	if got := stageNames(chain); !reflect.DeepEqual(got, want) {
		t.Fatalf("got stage order %v, want %v", got, want)
	}
}

func TestZeroFieldsOmitExactlyOneStage(t *testing.T) {
	full := Build(fullPreset(), nil)

	tests := []struct {
		name   string
		modify func(*presets.Preset)
		omits  string
	}{
		{"highpass", func(p *presets.Preset) { p.HighpassHz = 0 }, "highpass"},
		{"lowpass", func(p *presets.Preset) { p.LowpassHz = 0 }, "lowpass"},
		{"noise reduction", func(p *presets.Preset) { p.NoiseReduction = 0 }, "afftdn"},
		{"dynamic boost", func(p *presets.Preset) { p.DynamicBoost = 0 }, "acompressor"},
	}
	for _, tt := range tests {
		p := fullPreset()
		tt.modify(&p)
		chain := Build(p, nil)
		if len(chain) != len(full)-1 {
			t.Errorf("%s: got %d stages, want %d", tt.name, len(chain), len(full)-1)
		}
		for _, s := range chain {
			if s.Name == tt.omits {
				t.Errorf("%s: stage %q still present", tt.name, tt.omits)
			}
		}
	}

	// voice emphasis shares the equalizer name, so count instead
	p := fullPreset()
	p.VoiceEmphasisDb = 0
	chain := Build(p, nil)
	if len(chain) != len(full)-1 {
		t.Errorf("voice emphasis: got %d stages, want %d", len(chain), len(full)-1)
	}
}

func TestLimiterAndLoudnormNeverOmitted(t *testing.T) {
	chain := Build(presets.Preset{Key: "empty"}, nil)
	want := []string{"alimiter", "loudnorm"}
	if got := stageNames(chain); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// overrides must behave as a field-level merge, not a preset replacement
func TestOverrideMergeLaw(t *testing.T) {
	base, err := presets.Lookup("whisper")
	if err != nil {
		t.Fatal(err)
	}

	hp := 60.0
	viaOverride := Build(base, &presets.Overrides{HighpassHz: &hp}).String()

	replaced := base
	replaced.HighpassHz = hp
	viaPreset := Build(replaced, nil).String()

	if viaOverride != viaPreset {
		t.Fatalf("override build differs from replaced-field build:\n%s\n%s", viaOverride, viaPreset)
	}
}

func TestWhisperScenario(t *testing.T) {
	base, err := presets.Lookup("whisper")
	if err != nil {
		t.Fatal(err)
	}

	hp, lp, nr, boost, voice := 30.0, 3500.0, 0.7, 15.0, 8.0
	ov := &presets.Overrides{
		HighpassHz:      &hp,
		LowpassHz:       &lp,
		NoiseReduction:  &nr,
		DynamicBoost:    &boost,
		VoiceEmphasisDb: &voice,
		EqBands: []presets.EqBand{
			{FreqHz: 100, GainDb: -6},
			{FreqHz: 300, GainDb: 3},
			{FreqHz: 1000, GainDb: 6},
			{FreqHz: 2000, GainDb: 4},
			{FreqHz: 3000, GainDb: 2},
		},
	}

	chain := Build(base, ov)
	want := []string{
		"highpass", "lowpass", "afftdn", "acompressor",
		"equalizer", "equalizer", "equalizer", "equalizer", "equalizer",
		"equalizer", // voice emphasis
		"alimiter", "loudnorm",
	}
	if got := stageNames(chain); !reflect.DeepEqual(got, want) {
		t.Fatalf("got stage order %v, want %v", got, want)
	}

	// boost 15 -> 3.5:1 ratio with a -21.25 dB threshold
	comp := chain[3]
	wantComp := "acompressor=threshold=-21.25dB:ratio=3.5:attack=10:release=100:makeup=2:knee=2"
	if comp.String() != wantComp {
		t.Errorf("got compressor %q, want %q", comp.String(), wantComp)
	}
}

func TestNoCompressorWhenBoostZero(t *testing.T) {
	p := fullPreset()
	p.DynamicBoost = 0
	chain := Build(p, nil)
	names := stageNames(chain)
	for _, name := range names {
		if name == "acompressor" {
			t.Fatal("compressor present despite zero dynamic boost")
		}
	}
	if names[len(names)-2] != "alimiter" || names[len(names)-1] != "loudnorm" {
		t.Fatalf("limiter/loudnorm missing from tail: %v", names)
	}
}

func TestSerializeWhisperDefaults(t *testing.T) {
	base, err := presets.Lookup("whisper")
	if err != nil {
		t.Fatal(err)
	}
	got := Build(base, nil).String()
	want := "highpass=f=30," +
		"lowpass=f=3500," +
		"afftdn=nr=0.5:nf=-20:nt=w," +
		"acompressor=threshold=-23dB:ratio=2.8:attack=10:release=100:makeup=2:knee=2," +
		"equalizer=f=100:t=o:g=-3," +
		"equalizer=f=300:t=o:g=2," +
		"equalizer=f=1000:t=o:g=3," +
		"equalizer=f=2000:t=o:g=2," +
		"equalizer=f=1000:t=o:g=4:w=800," +
		"alimiter=level_in=1:level_out=0.95:limit=0.95," +
		"loudnorm=I=-16:TP=-1.5:LRA=11"
	if got != want {
		t.Fatalf("serialized chain:\n got %s\nwant %s", got, want)
	}
}

func TestEqGainClamped(t *testing.T) {
	p := presets.Preset{Key: "loud", EqBands: []presets.EqBand{
		{FreqHz: 500, GainDb: 25},
		{FreqHz: 700, GainDb: -25},
	}}
	chain := Build(p, nil)
	if got := chain[0].String(); got != "equalizer=f=500:t=o:g=10" {
		t.Errorf("positive gain not clamped: %s", got)
	}
	if got := chain[1].String(); got != "equalizer=f=700:t=o:g=-10" {
		t.Errorf("negative gain not clamped: %s", got)
	}
}

func TestVoiceEmphasisGainCapped(t *testing.T) {
	p := presets.Preset{Key: "shout", VoiceEmphasisDb: 12}
	chain := Build(p, nil)
	if got := chain[0].String(); got != "equalizer=f=1000:t=o:g=6:w=800" {
		t.Errorf("voice emphasis gain not capped: %s", got)
	}
}
