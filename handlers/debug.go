package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"golang.org/x/sys/unix"

	"forensic-audio/ffmpeg"
	"forensic-audio/presets"
)

// getFreeSpace returns the free space in bytes for the filesystem containing the given directory
func getFreeSpace(dir string) (uint64, error) {
	var stat unix.Statfs_t
	err := unix.Statfs(dir, &stat)
	if err != nil {
		return 0, fmt.Errorf("error getting filesystem stats: %v", err)
	}

	freeSpace := stat.Bavail * uint64(stat.Bsize)
	return freeSpace, nil
}

// DebugGet reports the state of the external engine and the temp directory.
func DebugGet(c echo.Context) error {

	version, err := ffmpeg.Version(c.Request().Context())
	ffmpegAvailable := err == nil
	if err != nil {
		log.Errorln(err)
		version = "not available"
	}

	var tempFiles []string
	entries, err := os.ReadDir(tempDir)
	if err != nil {
		log.Errorln(err)
	}
	for _, entry := range entries {
		tempFiles = append(tempFiles, entry.Name())
	}

	free, err := getFreeSpace(tempDir)
	if err != nil {
		log.Errorln(err)
	}
	freeMiB := float64(free) / 1024 / 1024

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":          "debug",
		"ffmpegAvailable": ffmpegAvailable,
		"ffmpegVersion":   version,
		"tempDir":         tempDir,
		"tempFiles":       tempFiles,
		"freeMiB":         fmt.Sprintf("%.2f", freeMiB),
		"presets":         presets.Keys(),
	})
}
