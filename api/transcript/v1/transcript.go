package v1

import (
	"github.com/gogf/gf/v2/frame/g"

	"shipvoice-speech-service/internal/service/transcript"
)

// Upload stages one audio recording for transcription.
// The multipart field name is "file".
type UploadReq struct {
	g.Meta `path:"/upload" method:"post" mime:"multipart/form-data" summary:"Upload an audio recording"`
}
type UploadRes struct {
	Success      bool   `json:"success"`
	Filename     string `json:"filename" dc:"generated staged filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size" dc:"size in bytes"`
	Path         string `json:"path"`
}

// Transcribe runs the most recently staged artifact through the backend.
type TranscribeReq struct {
	g.Meta `path:"/transcribe" method:"post" summary:"Transcribe the most recently staged recording"`
}
type TranscribeRes struct {
	Success   bool                   `json:"success"`
	Text      string                 `json:"text" dc:"flattened speaker: utterance rendering"`
	Result    *transcript.Normalized `json:"result" dc:"normalized structured transcript"`
	SizeLabel string                 `json:"sizeLabel" dc:"human-readable source size"`
}

type ListReq struct {
	g.Meta `path:"/storage" method:"get" summary:"List stored transcripts"`
}
type ListRes struct {
	Transcripts []transcript.Preview `json:"transcripts"`
}

type GetReq struct {
	g.Meta `path:"/storage/{id}" method:"get" summary:"Get a stored transcript"`
	Id     string `json:"id" v:"required" dc:"transcript id"`
}
type GetRes struct {
	Transcript *transcript.Transcript `json:"transcript"`
}

type CreateReq struct {
	g.Meta  `path:"/storage" method:"post" summary:"Store a transcript"`
	Title   string              `json:"title"`
	Content *transcript.Content `json:"content"`
	Size    string              `json:"size"`
	Notes   string              `json:"notes"`
}
type CreateRes struct {
	Transcript *transcript.Transcript `json:"transcript"`
}
