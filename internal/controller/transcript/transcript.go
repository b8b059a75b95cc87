// =================================================================================
// This file is auto-generated by the GoFrame CLI tool. You may modify it as you wish.
// =================================================================================

package transcript

import (
	"shipvoice-speech-service/api/transcript"
	transcriptSvc "shipvoice-speech-service/internal/service/transcript"
)

type ControllerV1 struct {
	pipeline *transcriptSvc.Pipeline
	repo     transcriptSvc.Repository
}

func NewV1(pipeline *transcriptSvc.Pipeline, repo transcriptSvc.Repository) transcript.ITranscriptV1 {
	return &ControllerV1{
		pipeline: pipeline,
		repo:     repo,
	}
}
