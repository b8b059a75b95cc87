// Package transcript holds the canonical two-party transcript model, the
// normalizer for backend results, the repository and the pipeline orchestrator.
package transcript

import (
	"github.com/gogf/gf/v2/os/gtime"
)

// Content is the two ordered utterance sequences of a call, keyed by the fixed
// shipper and customer roles. Sequences are insertion-ordered.
type Content struct {
	Shipper  []string `json:"shipper"`
	Customer []string `json:"customer"`
}

// Transcript is the durable record. Once returned by the repository it is
// frozen; callers receive copies, never shared slices.
type Transcript struct {
	Id          string      `json:"id"`
	Title       string      `json:"title"`
	DateCreated *gtime.Time `json:"dateCreated"`
	Size        string      `json:"size"`
	Content     Content     `json:"content"`
	Notes       string      `json:"notes,omitempty"`
}

// Preview is the list-view projection of a transcript. It is always computed
// from the record on read, never stored.
type Preview struct {
	Id          string      `json:"id"`
	Title       string      `json:"title"`
	DateCreated *gtime.Time `json:"dateCreated"`
	Size        string      `json:"size"`
	Preview     string      `json:"preview"`
}

// AsPreview projects the record for list views. The preview line is the first
// shipper utterance, or empty when the shipper never spoke.
func (t *Transcript) AsPreview() Preview {
	p := Preview{
		Id:          t.Id,
		Title:       t.Title,
		DateCreated: t.DateCreated,
		Size:        t.Size,
	}
	if len(t.Content.Shipper) > 0 {
		p.Preview = t.Content.Shipper[0]
	}
	return p
}

func (c Content) clone() Content {
	out := Content{
		Shipper:  make([]string, len(c.Shipper)),
		Customer: make([]string, len(c.Customer)),
	}
	copy(out.Shipper, c.Shipper)
	copy(out.Customer, c.Customer)
	return out
}
