package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// ProbeError wraps an ffprobe failure: a non-zero exit or unparseable output.
type ProbeError struct {
	Stderr string
	Err    error
}

func (e *ProbeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("probe failed: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("probe failed: %v", e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// TransformError wraps an ffmpeg failure with its exit code and diagnostics.
type TransformError struct {
	ExitCode int
	Stderr   string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform failed with exit code %d: %s", e.ExitCode, e.Stderr)
}

type TransformResult struct {
	OutputSize int64
	Elapsed    time.Duration
}

// Runner invokes the external ffprobe/ffmpeg binaries. Each invocation is
// bounded by Timeout when nonzero. Runner holds no mutable state, so a single
// value is safe for concurrent requests.
type Runner struct {
	Timeout time.Duration
}

func (r Runner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout > 0 {
		return context.WithTimeout(ctx, r.Timeout)
	}
	return context.WithCancel(ctx)
}

// Probe inspects inputPath without modifying it and returns its media
// metadata.
func (r Runner) Probe(ctx context.Context, inputPath string) (MediaInfo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	stdout, stderr, err := Ffprobe(ctx,
		"-v", "quiet", "-print_format", "json",
		"-show_format", "-show_streams", inputPath)
	if err != nil {
		return MediaInfo{}, &ProbeError{Stderr: string(stderr), Err: err}
	}

	info, err := parseProbeOutput(stdout)
	if err != nil {
		return MediaInfo{}, &ProbeError{Err: err}
	}
	return info, nil
}

func transformArgs(inputPath, outputPath, filterGraph string) []string {
	return []string{
		"-y", "-i", inputPath,
		"-af", filterGraph,
		"-c:a", "pcm_s16le", // 16-bit PCM for compatibility
		"-ar", "44100",
		"-ac", "2",
		outputPath,
	}
}

// Transform runs the filter graph over inputPath and writes outputPath as
// 44.1 kHz 16-bit stereo PCM. Elapsed wall time and output size are measured
// here so callers can report them.
func (r Runner) Transform(ctx context.Context, inputPath, outputPath, filterGraph string) (TransformResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	_, stderr, err := Ffmpeg(ctx, transformArgs(inputPath, outputPath, filterGraph)...)
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return TransformResult{}, &TransformError{ExitCode: exitCode, Stderr: string(stderr)}
	}

	fi, err := os.Stat(outputPath)
	if err != nil {
		return TransformResult{}, &TransformError{Stderr: fmt.Sprintf("output file was not created: %v", err)}
	}
	if fi.Size() == 0 {
		return TransformResult{}, &TransformError{Stderr: "output file is empty"}
	}

	return TransformResult{OutputSize: fi.Size(), Elapsed: time.Since(start)}, nil
}
