package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/png-squeeze/internal/selector"
)

// Scratch is an opt-in dump of candidate byte streams to a directory, for
// inspecting what each strategy produced.
//
// Every artifact name carries a fresh UUID, so dumps from concurrently
// evaluated strategies, or from repeated runs into the same directory, can
// never collide. Verification itself never reads these files; candidates
// are verified from memory.
type Scratch struct {
	dir string

	mu    sync.Mutex
	files map[string]string // strategy name -> artifact path
}

// NewScratch creates the scratch directory if needed and returns a handle
// for dumping candidates into it.
func NewScratch(dir string) (*Scratch, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	return &Scratch{dir: dir, files: make(map[string]string)}, nil
}

// Dump writes one candidate's bytes to a uniquely named artifact and
// returns its path. Safe for concurrent use.
func (s *Scratch) Dump(c selector.Candidate) (string, error) {
	name := fmt.Sprintf("%s-%s.png", c.Strategy, uuid.NewString())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, c.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to dump candidate %q: %w", c.Strategy, err)
	}

	s.mu.Lock()
	s.files[c.Strategy] = path
	s.mu.Unlock()
	return path, nil
}

// Discard removes every dumped artifact except the one belonging to
// keepStrategy. Pass an empty string to remove everything. Removal errors
// for individual files are ignored; the artifacts are diagnostic only.
func (s *Scratch) Discard(keepStrategy string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for strategyName, path := range s.files {
		if strategyName == keepStrategy {
			continue
		}
		_ = os.Remove(path)
		delete(s.files, strategyName)
	}
}
