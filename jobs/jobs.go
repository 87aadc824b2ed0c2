// Package jobs allocates the per-request temporary input/output paths and
// guarantees their removal once a request is done.
package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Manager hands out unique path pairs under a single temp directory. The
// directory is shared between concurrent requests but every pair is disjoint
// by construction, so no locking is needed.
type Manager struct {
	dir string
	log *logrus.Logger
}

func NewManager(dir string, logger *logrus.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create temp dir %s: %w", dir, err)
	}
	return &Manager{dir: dir, log: logger}, nil
}

func (m *Manager) Dir() string {
	return m.dir
}

// Job is one request's pair of temporary file locations.
type Job struct {
	InputPath  string
	OutputPath string
}

// Allocate reserves a unique input/output path pair. The token is a UUIDv7,
// so two concurrent uploads with the same original name can't collide.
func (m *Manager) Allocate(originalName string) Job {
	token := uuid.Must(uuid.NewV7()).String()
	return Job{
		InputPath:  filepath.Join(m.dir, fmt.Sprintf("input_%s_%s", token, sanitizeName(originalName))),
		OutputPath: filepath.Join(m.dir, fmt.Sprintf("output_%s.wav", token)),
	}
}

// Release removes both of the job's files. Removal failures are logged and
// never propagate: by the time Release runs the response is already decided.
func (m *Manager) Release(j Job) {
	for _, path := range []string{j.InputPath, j.OutputPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			m.log.Warnf("cleanup: could not remove %s: %v", path, err)
		}
	}
}

// sanitizeName reduces an uploaded filename to a safe base name so it can't
// escape the temp directory or smuggle separators into the path.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
