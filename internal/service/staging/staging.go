// Package staging owns the transient storage of validated audio artifacts
// before they are handed to the transcription backend.
package staging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/google/uuid"

	"shipvoice-speech-service/internal/consts"
)

// Artifact is a staged audio file awaiting processing.
type Artifact struct {
	Name         string `json:"filename"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

// Store writes artifacts into a single transient directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the staging directory.
func (s *Store) Dir() string {
	return s.dir
}

// Stage writes content under a collision-free generated name and returns the
// artifact handle. The file appears atomically: it is written to a temporary
// name first and renamed into place, so a partially written artifact is never
// visible to Latest.
func (s *Store) Stage(ctx context.Context, content []byte, originalName string) (*Artifact, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, gerror.WrapCode(consts.CodeStagingIO, err, "creating staging directory failed")
	}

	// Timestamp alone collides under concurrent calls within one clock tick,
	// so a random suffix is appended to the generated name.
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".wav"
	}
	name := fmt.Sprintf("%s%d_%s%s",
		consts.StagedPrefix, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	path := filepath.Join(s.dir, name)

	tmp := path + ".part"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		_ = os.Remove(tmp)
		return nil, gerror.WrapCode(consts.CodeStagingIO, err, "writing staged artifact failed")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, gerror.WrapCode(consts.CodeStagingIO, err, "publishing staged artifact failed")
	}

	return &Artifact{
		Name:         name,
		OriginalName: originalName,
		Path:         path,
		Size:         int64(len(content)),
	}, nil
}

// Latest returns the most recently staged artifact, or a not-found error when
// the staging directory holds none. In-flight ".part" files are ignored.
func (s *Store) Latest(ctx context.Context) (*Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerror.NewCode(consts.CodeNotFound, "no staged artifact found")
		}
		return nil, gerror.WrapCode(consts.CodeStagingIO, err, "reading staging directory failed")
	}

	var (
		latest     *Artifact
		latestTime time.Time
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, consts.StagedPrefix) || strings.HasSuffix(name, ".part") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == nil || info.ModTime().After(latestTime) {
			latest = &Artifact{
				Name: name,
				Path: filepath.Join(s.dir, name),
				Size: info.Size(),
			}
			latestTime = info.ModTime()
		}
	}
	if latest == nil {
		return nil, gerror.NewCode(consts.CodeNotFound, "no staged artifact found")
	}
	return latest, nil
}
