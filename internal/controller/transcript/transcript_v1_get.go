package transcript

import (
	"context"

	v1 "shipvoice-speech-service/api/transcript/v1"
)

func (c *ControllerV1) Get(ctx context.Context, req *v1.GetReq) (res *v1.GetRes, err error) {
	record, err := c.repo.GetById(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &v1.GetRes{Transcript: record}, nil
}
