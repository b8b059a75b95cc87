package validation

import (
	"github.com/gabriel-vasile/mimetype"
	"github.com/gogf/gf/v2/errors/gerror"

	"shipvoice-speech-service/internal/consts"
)

// Validate checks an audio artifact against the type and size policy. It is a
// pure check: no side effects, same verdict for the same input.
//
// The declared MIME type must be on the audio allow-list and the declared size
// within the cap. The content is additionally sniffed so a renamed binary with
// a forged Content-Type header does not slip through.
func Validate(content []byte, declaredType string, declaredSize int64) error {
	if _, ok := consts.AllowedAudioTypes[declaredType]; !ok {
		return gerror.NewCodef(consts.CodeInvalidType,
			"invalid file type %q, only WAV and MP3 files are allowed", declaredType)
	}
	if declaredSize > consts.MaxUploadSize {
		return gerror.NewCodef(consts.CodeTooLarge,
			"file too large: %d bytes, maximum is %d bytes", declaredSize, consts.MaxUploadSize)
	}
	if int64(len(content)) > consts.MaxUploadSize {
		return gerror.NewCodef(consts.CodeTooLarge,
			"file too large: %d bytes, maximum is %d bytes", len(content), consts.MaxUploadSize)
	}
	mType := mimetype.Detect(content)
	if _, ok := consts.AllowedAudioExt[mType.Extension()]; !ok {
		return gerror.NewCodef(consts.CodeInvalidType,
			"unsupported content format %q detected", mType.Extension())
	}
	return nil
}
