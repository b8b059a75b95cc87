package middlewares

import (
	"net/http"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"

	"shipvoice-speech-service/internal/consts"
)

// Response writes handler results as flat JSON bodies (no envelope) and maps
// failure codes to HTTP statuses. A handler that already wrote to the buffer
// is left alone.
func Response(r *ghttp.Request) {
	r.Middleware.Next()

	if r.Response.BufferLength() > 0 {
		return
	}

	if err := r.GetError(); err != nil {
		code := gerror.Code(err)
		status := consts.HTTPStatus(code)
		if code == gcode.CodeValidationFailed {
			status = http.StatusBadRequest
		}
		r.Response.ClearBuffer()
		r.Response.WriteStatus(status, g.Map{"error": err.Error()})
		return
	}

	if res := r.GetHandlerResponse(); res != nil {
		r.Response.WriteJson(res)
	}
}
