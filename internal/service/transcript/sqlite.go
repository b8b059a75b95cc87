package transcript

import (
	"context"
	"sync"

	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gtime"
	"github.com/google/uuid"

	"shipvoice-speech-service/internal/consts"
	"shipvoice-speech-service/internal/dao"
	"shipvoice-speech-service/internal/model/entity"
)

// DBRepository persists transcripts through the transcript DAO. Listing order
// is created_at descending with the autoincrement id as tie-break, so records
// created within the same wall-clock second still list newest-first.
type DBRepository struct {
	mu sync.Mutex
}

func NewDBRepository() *DBRepository {
	return &DBRepository{}
}

func (r *DBRepository) Create(ctx context.Context, title string, content Content, size string, notes string) (*Transcript, error) {
	if title == "" {
		return nil, gerror.NewCode(consts.CodeMissingField, "title is required")
	}

	id := uuid.NewString()
	created := gtime.Now()

	// One critical section around id-assignment-and-insert; the database does
	// the rest.
	r.mu.Lock()
	_, err := dao.Transcript.Ctx(ctx).Data(g.Map{
		"transcript_id": id,
		"title":         title,
		"size":          size,
		"notes":         notes,
		"content": g.Map{
			consts.RoleShipper:  content.Shipper,
			consts.RoleCustomer: content.Customer,
		},
		"created_at": created,
	}).Insert()
	r.mu.Unlock()
	if err != nil {
		return nil, gerror.Wrap(err, "inserting transcript record failed")
	}

	return &Transcript{
		Id:          id,
		Title:       title,
		DateCreated: created,
		Size:        size,
		Content:     content.clone(),
		Notes:       notes,
	}, nil
}

func (r *DBRepository) List(ctx context.Context) ([]Preview, error) {
	cols := dao.Transcript.Columns()
	var records []entity.Transcript
	if err := dao.Transcript.Ctx(ctx).
		OrderDesc(cols.CreatedAt).
		OrderDesc(cols.Id).
		Scan(&records); err != nil {
		return nil, gerror.Wrap(err, "listing transcripts failed")
	}

	previews := make([]Preview, 0, len(records))
	for _, record := range records {
		previews = append(previews, fromEntity(&record).AsPreview())
	}
	return previews, nil
}

func (r *DBRepository) GetById(ctx context.Context, id string) (*Transcript, error) {
	var record *entity.Transcript
	if err := dao.Transcript.Ctx(ctx).
		Where(dao.Transcript.Columns().TranscriptId+" = ?", id).
		Limit(1).
		Scan(&record); err != nil {
		return nil, gerror.Wrap(err, "querying transcript failed")
	}
	if record == nil {
		return nil, gerror.NewCodef(consts.CodeNotFound, "transcript %s not found", id)
	}
	return fromEntity(record), nil
}

func fromEntity(record *entity.Transcript) *Transcript {
	t := &Transcript{
		Id:          record.TranscriptId,
		Title:       record.Title,
		DateCreated: record.CreatedAt,
		Size:        record.Size,
		Notes:       record.Notes,
	}
	content := record.Content
	if content == nil {
		content = gjson.New(nil)
	}
	t.Content.Shipper = content.Get(consts.RoleShipper).Strings()
	t.Content.Customer = content.Get(consts.RoleCustomer).Strings()
	return t
}
