package transcript

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	v1 "shipvoice-speech-service/api/transcript/v1"
	"shipvoice-speech-service/internal/consts"
)

// Transcribe runs the most recently staged artifact through the backend and
// returns the normalized transcript. Failures keep the original JSON contract
// of this boundary: {success:false, error} with the mapped status.
func (c *ControllerV1) Transcribe(ctx context.Context, req *v1.TranscribeReq) (res *v1.TranscribeRes, err error) {
	run, err := c.pipeline.Transcribe(ctx)
	if err != nil {
		r := g.RequestFromCtx(ctx)
		r.Response.WriteStatus(consts.HTTPStatus(gerror.Code(err)), g.Map{
			"success": false,
			"error":   err.Error(),
		})
		return nil, nil
	}

	return &v1.TranscribeRes{
		Success:   true,
		Text:      run.Text,
		Result:    run.Normalized,
		SizeLabel: humanize.IBytes(uint64(run.Artifact.Size)),
	}, nil
}
