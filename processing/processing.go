// Package processing coordinates one request end to end: preset lookup,
// chain construction, temp path allocation, probe, transform, and cleanup.
package processing

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"forensic-audio/ffmpeg"
	"forensic-audio/filter"
	"forensic-audio/jobs"
	"forensic-audio/presets"
)

type Kind string

const (
	KindUnknownPreset Kind = "unknown_preset"
	KindUploadWrite   Kind = "upload_write"
	KindProbe         Kind = "probe"
	KindTransform     Kind = "transform"
)

// Error is the only error type that crosses out of this package. Every
// lower-level failure is translated into one of the Kinds above.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Orchestrator is the external transcoding engine. ffmpeg.Runner is the real
// implementation; tests substitute synthetic ones.
type Orchestrator interface {
	Probe(ctx context.Context, inputPath string) (ffmpeg.MediaInfo, error)
	Transform(ctx context.Context, inputPath, outputPath, filterGraph string) (ffmpeg.TransformResult, error)
}

// Result is a completed request: the processed audio plus its metrics.
type Result struct {
	Audio          []byte
	PresetKey      string
	FilterGraph    string
	InputDuration  float64 // seconds
	ProcessingTime time.Duration
	OutputSize     int64
}

type Processor struct {
	jobs *jobs.Manager
	orch Orchestrator
	log  *logrus.Logger
}

func New(manager *jobs.Manager, orch Orchestrator, logger *logrus.Logger) *Processor {
	return &Processor{jobs: manager, orch: orch, log: logger}
}

// Handle processes one uploaded file with the named preset and optional
// overrides. The temp paths are released on every exit path; an unknown
// preset fails before anything is allocated or invoked.
func (p *Processor) Handle(ctx context.Context, fileBytes []byte, fileName, presetKey string, ov *presets.Overrides) (*Result, error) {
	preset, err := presets.Lookup(presetKey)
	if err != nil {
		return nil, &Error{Kind: KindUnknownPreset, Message: fmt.Sprintf("no preset %q", presetKey), Err: err}
	}

	job := p.jobs.Allocate(fileName)
	defer p.jobs.Release(job)

	if err := os.WriteFile(job.InputPath, fileBytes, 0600); err != nil {
		return nil, &Error{Kind: KindUploadWrite, Message: "could not write uploaded file", Err: err}
	}

	p.log.Infof("processing %s (%d bytes) with preset %q", fileName, len(fileBytes), presetKey)
	started := time.Now()

	info, err := p.orch.Probe(ctx, job.InputPath)
	if err != nil {
		return nil, &Error{Kind: KindProbe, Message: "could not analyze input file", Err: err}
	}

	graph := filter.Build(preset, ov).String()

	res, err := p.orch.Transform(ctx, job.InputPath, job.OutputPath, graph)
	if err != nil {
		return nil, &Error{Kind: KindTransform, Message: "audio processing failed", Err: err}
	}

	audio, err := os.ReadFile(job.OutputPath)
	if err != nil {
		return nil, &Error{Kind: KindTransform, Message: "could not read processed output", Err: err}
	}

	elapsed := time.Since(started)
	p.log.Infof("processed %s: %.1fs of audio -> %d bytes in %s", fileName, info.DurationSeconds, res.OutputSize, elapsed)

	return &Result{
		Audio:          audio,
		PresetKey:      presetKey,
		FilterGraph:    graph,
		InputDuration:  info.DurationSeconds,
		ProcessingTime: elapsed,
		OutputSize:     res.OutputSize,
	}, nil
}
