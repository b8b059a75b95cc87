package transcript

import (
	"context"
	"net/http"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	v1 "shipvoice-speech-service/api/transcript/v1"
	"shipvoice-speech-service/internal/consts"
)

// Create persists a transcript. Persisting is always an explicit caller
// action, never a side effect of transcription.
func (c *ControllerV1) Create(ctx context.Context, req *v1.CreateReq) (res *v1.CreateRes, err error) {
	if req.Title == "" || req.Content == nil {
		return nil, gerror.NewCode(consts.CodeMissingField, "missing required fields: title and content")
	}

	size := req.Size
	if size == "" {
		size = "0MB"
	}

	record, err := c.repo.Create(ctx, req.Title, *req.Content, size, req.Notes)
	if err != nil {
		return nil, err
	}

	g.RequestFromCtx(ctx).Response.Status = http.StatusCreated
	return &v1.CreateRes{Transcript: record}, nil
}
