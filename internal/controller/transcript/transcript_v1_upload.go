package transcript

import (
	"context"
	"io"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	v1 "shipvoice-speech-service/api/transcript/v1"
	"shipvoice-speech-service/internal/consts"
)

// Upload validates and stages one audio recording. The multipart field name
// is "file". Transcription is a separate call: the artifact sits in staging
// until the caller triggers /transcribe.
func (c *ControllerV1) Upload(ctx context.Context, req *v1.UploadReq) (res *v1.UploadRes, err error) {
	file := g.RequestFromCtx(ctx).GetUploadFile("file")
	if file == nil {
		return nil, gerror.NewCode(consts.CodeMissingField, "no file provided, use field name 'file'")
	}

	reader, err := file.Open()
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeStagingIO, err, "opening uploaded file failed")
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, gerror.WrapCode(consts.CodeStagingIO, err, "reading uploaded file failed")
	}

	artifact, err := c.pipeline.Stage(ctx, content, file.Header.Get("Content-Type"), file.Filename)
	if err != nil {
		return nil, err
	}

	return &v1.UploadRes{
		Success:      true,
		Filename:     artifact.Name,
		OriginalName: file.Filename,
		Size:         artifact.Size,
		Path:         artifact.Path,
	}, nil
}
