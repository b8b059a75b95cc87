package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/gogf/gf/v2/os/gcmd"
	"github.com/gogf/gf/v2/os/glog"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"shipvoice-speech-service/internal/consts"
	"shipvoice-speech-service/internal/controller/transcript"
	"shipvoice-speech-service/internal/middlewares"
	"shipvoice-speech-service/internal/service/archive"
	"shipvoice-speech-service/internal/service/engine"
	"shipvoice-speech-service/internal/service/recorder"
	"shipvoice-speech-service/internal/service/staging"
	transcriptSvc "shipvoice-speech-service/internal/service/transcript"
)

var (
	Main = gcmd.Command{
		Name:  "main",
		Usage: "main",
		Brief: "start http server",
		Func: func(ctx context.Context, parser *gcmd.Parser) (err error) {
			fmt.Println(`
 ____  _     _      __     __    _
/ ___|| |__ (_)_ __ \ \   / /__ (_) ___ ___
\___ \| '_ \| | '_ \ \ \ / / _ \| |/ __/ _ \
 ___) | | | | | |_) | \ V / (_) | | (_|  __/
|____/|_| |_|_| .__/   \_/ \___/|_|\___\___|
              |_|
			`)
			fmt.Println("ShipVoice Speech Service")
			fmt.Println()

			s := g.Server()
			logger := g.Log()

			if err := archive.Init(ctx); err != nil {
				logger.Warningf(ctx, "artifact archive init failed: %v", err)
			}

			stagingDir := g.Cfg().MustGet(ctx, "staging.dir", "tmp").String()
			store := staging.NewStore(stagingDir)

			eng := engine.NewClient(
				g.Cfg().MustGet(ctx, "engine.endpoint", "http://localhost:5000").String(),
				g.Cfg().MustGet(ctx, "engine.timeout", engine.DefaultTimeout).Duration(),
			)
			if err := eng.Health(ctx); err != nil {
				logger.Warningf(ctx, "transcription backend not reachable yet: %v", err)
			}

			pipeline := transcriptSvc.NewPipeline(store, eng)

			var repo transcriptSvc.Repository
			if g.Cfg().MustGet(ctx, "database.default.link").String() != "" {
				repo = transcriptSvc.NewDBRepository()
				logger.Info(ctx, "using sqlite transcript repository")
			} else {
				repo = transcriptSvc.NewMemoryRepository()
				logger.Info(ctx, "no database configured, using in-memory transcript repository")
			}

			s.SetPort(g.Cfg().MustGet(ctx, "server.port", 8000).Int())
			s.SetClientMaxBodySize(consts.MaxUploadSize + 1024*1024)
			s.Use(middlewares.BrotliMiddleware)
			s.Use(ghttp.MiddlewareCORS)

			s.Group("/api", func(group *ghttp.RouterGroup) {
				group.Middleware(middlewares.Response)
				group.Bind(
					transcript.NewV1(pipeline, repo),
				)
			})

			setupRecordHandler(ctx, s, pipeline, logger)

			s.Run()
			return nil
		},
	}
)

// setupRecordHandler binds the live microphone capture endpoint. The client
// streams raw PCM as binary websocket frames and sends the text message
// "stop" when done; the assembled WAV then goes through the normal
// validate+stage pipeline and the reply carries the staged filename.
func setupRecordHandler(ctx context.Context, s *ghttp.Server, pipeline *transcriptSvc.Pipeline, logger *glog.Logger) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	opts := recorder.Options{
		Dir:           g.Cfg().MustGet(ctx, "record.dir", "tmp/capture").String(),
		MaxBytes:      g.Cfg().MustGet(ctx, "record.maxBytes", 268435456).Int64(),
		SampleRate:    g.Cfg().MustGet(ctx, "record.sampleRate", 16000).Int(),
		Channels:      g.Cfg().MustGet(ctx, "record.channels", 1).Int(),
		BitsPerSample: g.Cfg().MustGet(ctx, "record.bitsPerSample", 16).Int(),
	}

	s.BindHandler("/api/record", func(r *ghttp.Request) {
		connectID := uuid.NewString()
		conn, err := upgrader.Upgrade(r.Response.Writer, r.Request, nil)
		if err != nil {
			r.Response.Write(err.Error())
			return
		}
		defer conn.Close()

		reqCtx := r.Context()
		rec, err := recorder.New(connectID, opts)
		if err != nil {
			if errors.Is(err, recorder.ErrDisabled) {
				logger.Warningf(reqCtx, "recording disabled, connect_id=%s", connectID)
			} else {
				logger.Warningf(reqCtx, "recorder init failed, connect_id=%s: %v", connectID, err)
			}
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "recording unavailable"),
				time.Now().Add(time.Second),
			)
			return
		}

		logger.Infof(reqCtx, "capture session started, connect_id=%s", connectID)

		for {
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				if !isNormalClosure(err) {
					logger.Warningf(reqCtx, "capture read failed, connect_id=%s: %v", connectID, err)
				}
				break
			}
			if msgType == websocket.TextMessage && string(msg) == "stop" {
				break
			}
			if msgType != websocket.BinaryMessage {
				continue
			}
			if err := rec.Append(msg); err != nil {
				logger.Warningf(reqCtx, "capture write failed, connect_id=%s: %v", connectID, err)
				break
			}
		}

		result, err := rec.Finalize()
		if err != nil {
			logger.Warningf(reqCtx, "capture finalize failed, connect_id=%s: %v", connectID, err)
			_ = conn.WriteJSON(g.Map{"success": false, "error": err.Error()})
			return
		}
		if result == nil {
			logger.Infof(reqCtx, "capture session empty, connect_id=%s", connectID)
			_ = conn.WriteJSON(g.Map{"success": false, "error": "no audio received"})
			return
		}

		content, err := os.ReadFile(result.FilePath)
		if err != nil {
			logger.Warningf(reqCtx, "capture readback failed, connect_id=%s: %v", connectID, err)
			_ = conn.WriteJSON(g.Map{"success": false, "error": err.Error()})
			return
		}
		artifact, err := pipeline.Stage(reqCtx, content, "audio/wav", filepath.Base(result.FilePath))
		if err != nil {
			logger.Warningf(reqCtx, "capture staging failed, connect_id=%s: %v", connectID, err)
			_ = conn.WriteJSON(g.Map{"success": false, "error": err.Error()})
			return
		}
		_ = os.Remove(result.FilePath)

		logger.Infof(reqCtx, "capture session staged, connect_id=%s, file=%s, bytes=%d",
			connectID, artifact.Name, artifact.Size)
		_ = conn.WriteJSON(g.Map{
			"success":  true,
			"filename": artifact.Name,
			"size":     artifact.Size,
		})
	})
}

func isNormalClosure(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseGoingAway)
}
