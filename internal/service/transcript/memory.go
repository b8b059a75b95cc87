package transcript

import (
	"context"
	"sync"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gtime"
	"github.com/google/uuid"

	"shipvoice-speech-service/internal/consts"
)

// MemoryRepository keeps transcripts in process memory. It is the default
// store when no database is configured, and the store used by tests.
//
// A single mutex serializes id assignment and front insertion; reads work on
// copies so a returned record can never observe later mutation.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []*Transcript
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, title string, content Content, size string, notes string) (*Transcript, error) {
	if title == "" {
		return nil, gerror.NewCode(consts.CodeMissingField, "title is required")
	}
	record := &Transcript{
		Id:          uuid.NewString(),
		Title:       title,
		DateCreated: gtime.Now(),
		Size:        size,
		Content:     content.clone(),
		Notes:       notes,
	}

	r.mu.Lock()
	r.records = append([]*Transcript{record}, r.records...)
	r.mu.Unlock()

	return copyOf(record), nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Preview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	previews := make([]Preview, 0, len(r.records))
	for _, record := range r.records {
		previews = append(previews, record.AsPreview())
	}
	return previews, nil
}

func (r *MemoryRepository) GetById(ctx context.Context, id string) (*Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.Id == id {
			return copyOf(record), nil
		}
	}
	return nil, gerror.NewCodef(consts.CodeNotFound, "transcript %s not found", id)
}

func copyOf(t *Transcript) *Transcript {
	out := *t
	out.Content = t.Content.clone()
	return &out
}
