package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// runs ffmpeg with the provided args and returns (stdout, stderr, error)
func Ffmpeg(ctx context.Context, args ...string) ([]byte, []byte, error) {
	ffmpeg := "ffmpeg"
	log.Infoln(ffmpeg, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	if err != nil {
		log.Errorf("ffmpeg error: %v", err)
		log.Errorln("stderr:", stderr.String())
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// Version returns the first line of `ffmpeg -version` output.
func Version(ctx context.Context) (string, error) {
	stdout, _, err := Ffmpeg(ctx, "-version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(stdout), "\n")
	return strings.TrimSpace(line), nil
}
