package transcript

import (
	"context"

	v1 "shipvoice-speech-service/api/transcript/v1"
)

func (c *ControllerV1) List(ctx context.Context, req *v1.ListReq) (res *v1.ListRes, err error) {
	previews, err := c.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &v1.ListRes{Transcripts: previews}, nil
}
