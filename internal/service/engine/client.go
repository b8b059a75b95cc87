// Package engine talks to the external diarization/ASR backend.
package engine

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/util/gconv"

	"shipvoice-speech-service/internal/consts"
)

const (
	// DefaultTimeout bounds one backend call. Diarization of a long call is
	// slow, so the bound is generous.
	DefaultTimeout = 5 * time.Minute

	// numSpeakers is fixed: the product only handles two-party calls.
	numSpeakers = 2
)

// Utterance is one speaker-attributed line as reported by the backend.
type Utterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Result is the raw backend response shape. It is never persisted; the
// normalizer consumes it right away.
type Result struct {
	Success        bool        `json:"success"`
	Transcriptions []Utterance `json:"transcriptions"`
	Error          string      `json:"error"`
}

// Client sends staged artifacts to the backend over HTTP.
type Client struct {
	endpoint string
	timeout  time.Duration
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{endpoint: endpoint, timeout: timeout}
}

// Transcribe submits one staged artifact reference and waits for the finished
// result. Exactly one request is sent; retrying is the caller's policy.
//
// An empty transcription list is a valid "no speech detected" result. A
// backend-reported failure or a non-success status is surfaced as a backend
// failure carrying the backend's own message.
func (c *Client) Transcribe(ctx context.Context, artifactPath string) (*Result, error) {
	r, err := g.Client().
		Timeout(c.timeout).
		ContentJson().
		Post(ctx, c.endpoint+"/process_audio", g.Map{
			"audio_path":   artifactPath,
			"num_speakers": numSpeakers,
		})
	if err != nil {
		if isTimeout(err) {
			return nil, gerror.WrapCode(consts.CodeBackendTimeout, err,
				"transcription backend did not respond in time")
		}
		return nil, gerror.WrapCode(consts.CodeBackendFailure, err,
			"request to transcription backend failed")
	}
	defer r.Close()

	body := r.ReadAllString()

	// The status is checked before the body is parsed: a proxy error page is
	// not JSON and must still surface as a status failure.
	if r.StatusCode < 200 || r.StatusCode >= 300 {
		var failure Result
		msg := ""
		if parseErr := gconv.Struct(body, &failure); parseErr == nil {
			msg = failure.Error
		}
		if msg == "" {
			msg = r.Status
		}
		return nil, gerror.NewCodef(consts.CodeBackendFailure,
			"transcription backend returned %d: %s", r.StatusCode, msg)
	}

	var result Result
	if err = gconv.Struct(body, &result); err != nil {
		return nil, gerror.WrapCode(consts.CodeBackendFailure, err,
			"malformed transcription backend response")
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "backend reported failure without a message"
		}
		return nil, gerror.NewCodef(consts.CodeBackendFailure, "%s", msg)
	}

	return &result, nil
}

// Health probes the backend health endpoint.
func (c *Client) Health(ctx context.Context) error {
	r, err := g.Client().Timeout(10 * time.Second).Get(ctx, c.endpoint+"/health")
	if err != nil {
		return gerror.WrapCode(consts.CodeBackendFailure, err, "backend health probe failed")
	}
	defer r.Close()
	if r.StatusCode != 200 {
		return gerror.NewCodef(consts.CodeBackendFailure, "backend unhealthy: %s", r.Status)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
