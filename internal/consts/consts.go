package consts

import (
	"net/http"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/frame/g"
)

// Speaker roles of a two-party logistics call.
const (
	RoleShipper  = "shipper"
	RoleCustomer = "customer"
)

const (
	// MaxUploadSize is the artifact size cap in bytes.
	MaxUploadSize = 200 * 1024 * 1024 // 200 MiB

	// StagedPrefix is the filename prefix of every staged artifact.
	StagedPrefix = "upload_"
)

var (
	// AllowedAudioTypes maps accepted declared MIME types to their canonical extension.
	AllowedAudioTypes = g.MapStrStr{
		"audio/wav":   ".wav",
		"audio/x-wav": ".wav",
		"audio/wave":  ".wav",
		"audio/mp3":   ".mp3",
		"audio/mpeg":  ".mp3",
	}

	// AllowedAudioExt is the extension allow-list for content-sniffed types.
	AllowedAudioExt = g.MapStrStr{
		".wav": "audio",
		".mp3": "audio",
	}
)

// Failure kinds of the pipeline. Every error crossing a package boundary carries
// one of these codes so the HTTP layer can map it to a status.
var (
	CodeInvalidType    = gcode.New(40001, "invalid artifact type", nil)
	CodeTooLarge       = gcode.New(40002, "artifact too large", nil)
	CodeMissingField   = gcode.New(40003, "missing required field", nil)
	CodeNotFound       = gcode.New(40401, "transcript not found", nil)
	CodeStagingIO      = gcode.New(50001, "staging failure", nil)
	CodeBackendFailure = gcode.New(50002, "transcription backend failure", nil)
	CodeBackendTimeout = gcode.New(50003, "transcription backend timeout", nil)
)

// HTTPStatus returns the HTTP status for a failure code. Unknown codes are
// treated as internal failures.
func HTTPStatus(code gcode.Code) int {
	switch code {
	case CodeInvalidType, CodeTooLarge, CodeMissingField:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
