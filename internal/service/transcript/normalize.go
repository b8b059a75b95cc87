package transcript

import (
	"context"
	"strings"

	"github.com/gogf/gf/v2/frame/g"

	"shipvoice-speech-service/internal/consts"
	"shipvoice-speech-service/internal/service/engine"
)

// Transcript variants produced by normalization.
const (
	KindTwoParty   = "two_party"
	KindSingleLine = "single_line"
)

// Normalized is the canonical form of one backend result: either a two-party
// transcript (Content populated, possibly one side empty) or a single-line
// transcript (Lines populated), never both.
type Normalized struct {
	Kind         string   `json:"kind"`
	Content      Content  `json:"content"`
	Unattributed []string `json:"unattributed,omitempty"`
	Lines        []string `json:"lines,omitempty"`
}

// Normalize converts a raw backend result into the canonical transcript shape.
// It is deterministic and idempotent: the same result always yields identical
// ordered sequences.
//
// Speaker attribution is a case-insensitive exact match against the two known
// roles; the diarizer's positional labels speaker_00/speaker_01 map to shipper
// and customer respectively. Anything else is kept in Unattributed and logged,
// never silently dropped. A result with no speaker labels at all is the
// single-line variant, with line order preserved exactly as received.
func Normalize(ctx context.Context, res *engine.Result) *Normalized {
	if isSingleLine(res) {
		n := &Normalized{Kind: KindSingleLine}
		for _, u := range res.Transcriptions {
			n.Lines = append(n.Lines, u.Text)
		}
		return n
	}

	n := &Normalized{Kind: KindTwoParty}
	for _, u := range res.Transcriptions {
		switch role, ok := matchRole(u.Speaker); {
		case ok && role == consts.RoleShipper:
			n.Content.Shipper = append(n.Content.Shipper, u.Text)
		case ok && role == consts.RoleCustomer:
			n.Content.Customer = append(n.Content.Customer, u.Text)
		default:
			g.Log().Warningf(ctx, "unattributed utterance from speaker %q: %q", u.Speaker, u.Text)
			n.Unattributed = append(n.Unattributed, u.Text)
		}
	}
	return n
}

// Flatten renders the result as the newline-joined "speaker: utterance" text
// shown to the caller, preserving the backend's utterance order across roles.
func Flatten(res *engine.Result) string {
	var lines []string
	for _, u := range res.Transcriptions {
		if strings.TrimSpace(u.Speaker) == "" {
			lines = append(lines, u.Text)
			continue
		}
		label := u.Speaker
		if role, ok := matchRole(u.Speaker); ok {
			label = role
		}
		lines = append(lines, label+": "+u.Text)
	}
	return strings.Join(lines, "\n")
}

func isSingleLine(res *engine.Result) bool {
	if len(res.Transcriptions) == 0 {
		return false
	}
	for _, u := range res.Transcriptions {
		if strings.TrimSpace(u.Speaker) != "" {
			return false
		}
	}
	return true
}

func matchRole(speaker string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(speaker)) {
	case consts.RoleShipper, "speaker_00":
		return consts.RoleShipper, true
	case consts.RoleCustomer, "speaker_01":
		return consts.RoleCustomer, true
	default:
		return "", false
	}
}
