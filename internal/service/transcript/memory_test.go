package transcript

import (
	"fmt"
	"testing"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gctx"
	"github.com/gogf/gf/v2/test/gtest"

	"shipvoice-speech-service/internal/consts"
)

func TestMemoryCreateAssignsDistinctIds(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		repo := NewMemoryRepository()
		ctx := gctx.New()

		ids := make(map[string]bool)
		for i := 0; i < 10; i++ {
			record, err := repo.Create(ctx, fmt.Sprintf("call %d", i), Content{}, "1MB", "")
			t.AssertNil(err)
			t.AssertNE(record.Id, "")
			t.Assert(ids[record.Id], false)
			ids[record.Id] = true
			t.AssertNE(record.DateCreated, nil)
		}
	})
}

func TestMemoryCreateRequiresTitle(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		repo := NewMemoryRepository()
		_, err := repo.Create(gctx.New(), "", Content{}, "", "")
		t.AssertNE(err, nil)
		t.Assert(gerror.Code(err), consts.CodeMissingField)
	})
}

func TestMemoryListNewestFirst(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		repo := NewMemoryRepository()
		ctx := gctx.New()

		for _, title := range []string{"first", "second", "third"} {
			_, err := repo.Create(ctx, title, Content{}, "", "")
			t.AssertNil(err)
		}

		previews, err := repo.List(ctx)
		t.AssertNil(err)
		t.Assert(len(previews), 3)
		t.Assert(previews[0].Title, "third")
		t.Assert(previews[1].Title, "second")
		t.Assert(previews[2].Title, "first")
	})
}

func TestMemoryPreviewLine(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		repo := NewMemoryRepository()
		ctx := gctx.New()

		_, err := repo.Create(ctx, "with shipper", Content{
			Shipper:  []string{"Xin chào", "tomorrow then"},
			Customer: []string{"OK"},
		}, "2MB", "")
		t.AssertNil(err)
		_, err = repo.Create(ctx, "customer only", Content{
			Customer: []string{"hello?"},
		}, "1MB", "")
		t.AssertNil(err)

		previews, err := repo.List(ctx)
		t.AssertNil(err)
		t.Assert(previews[0].Title, "customer only")
		t.Assert(previews[0].Preview, "")
		t.Assert(previews[1].Preview, "Xin chào")
	})
}

func TestMemoryGetById(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		repo := NewMemoryRepository()
		ctx := gctx.New()

		created, err := repo.Create(ctx, "call", Content{Shipper: []string{"hi"}}, "1MB", "note")
		t.AssertNil(err)

		got, err := repo.GetById(ctx, created.Id)
		t.AssertNil(err)
		t.Assert(got.Title, "call")
		t.Assert(got.Notes, "note")
		t.Assert(got.Content.Shipper, []string{"hi"})

		_, err = repo.GetById(ctx, "no-such-id")
		t.AssertNE(err, nil)
		t.Assert(gerror.Code(err), consts.CodeNotFound)
	})
}

func TestMemoryRecordsAreFrozen(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		repo := NewMemoryRepository()
		ctx := gctx.New()

		content := Content{Shipper: []string{"original"}}
		created, err := repo.Create(ctx, "call", content, "", "")
		t.AssertNil(err)

		// Mutating the caller's input or a returned copy must not leak into
		// the stored record.
		content.Shipper[0] = "tampered input"
		created.Content.Shipper[0] = "tampered output"

		got, err := repo.GetById(ctx, created.Id)
		t.AssertNil(err)
		t.Assert(got.Content.Shipper, []string{"original"})
	})
}
