package transcript

import (
	"context"
	"os"
	"testing"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gctx"
	"github.com/gogf/gf/v2/test/gtest"
	"github.com/gogf/gf/v2/text/gstr"

	"shipvoice-speech-service/internal/consts"
	"shipvoice-speech-service/internal/service/engine"
	"shipvoice-speech-service/internal/service/staging"
)

type fakeEngine struct {
	result *engine.Result
	err    error
	path   string
}

func (f *fakeEngine) Transcribe(ctx context.Context, artifactPath string) (*engine.Result, error) {
	f.path = artifactPath
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testWAV(payload int) []byte {
	return append([]byte("RIFF\x00\x00\x00\x00WAVE"), make([]byte, payload)...)
}

func TestPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		eng := &fakeEngine{result: &engine.Result{
			Success: true,
			Transcriptions: []engine.Utterance{
				{Speaker: "shipper", Text: "Xin chào"},
				{Speaker: "customer", Text: "OK"},
			},
		}}
		pipeline := NewPipeline(staging.NewStore(dir), eng)
		ctx := gctx.New()

		t.Assert(pipeline.State(), StateIdle)

		artifact, err := pipeline.Stage(ctx, testWAV(2*1024*1024), "audio/wav", "call.wav")
		t.AssertNil(err)
		t.Assert(pipeline.State(), StateStaged)

		run, err := pipeline.Transcribe(ctx)
		t.AssertNil(err)
		t.Assert(pipeline.State(), StateCompleted)
		t.Assert(eng.path, artifact.Path)
		t.Assert(run.Normalized.Kind, KindTwoParty)
		t.Assert(run.Normalized.Content.Shipper, []string{"Xin chào"})
		t.Assert(run.Normalized.Content.Customer, []string{"OK"})
		t.Assert(run.Text, "shipper: Xin chào\ncustomer: OK")

		// Persist and read back through the repository like the handler does.
		repo := NewMemoryRepository()
		_, err = repo.Create(ctx, artifact.OriginalName, run.Normalized.Content, "2MB", "")
		t.AssertNil(err)
		previews, err := repo.List(ctx)
		t.AssertNil(err)
		t.Assert(len(previews), 1)
		t.Assert(previews[0].Preview, "Xin chào")
	})
}

func TestPipelineStageRejectsInvalidUpload(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		pipeline := NewPipeline(staging.NewStore(dir), &fakeEngine{})
		ctx := gctx.New()

		_, err := pipeline.Stage(ctx, []byte("not audio at all"), "audio/wav", "fake.wav")
		t.AssertNE(err, nil)
		t.Assert(gerror.Code(err), consts.CodeInvalidType)
		t.Assert(pipeline.State(), StateIdle)
	})
}

func TestPipelineBackendFailure(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		eng := &fakeEngine{err: gerror.NewCode(consts.CodeBackendFailure, "engine unavailable")}
		pipeline := NewPipeline(staging.NewStore(dir), eng)
		ctx := gctx.New()

		_, err := pipeline.Stage(ctx, testWAV(64), "audio/wav", "call.wav")
		t.AssertNil(err)

		_, err = pipeline.Transcribe(ctx)
		t.AssertNE(err, nil)
		t.Assert(pipeline.State(), StateFailed)
		t.Assert(gstr.Contains(err.Error(), "engine unavailable"), true)

		// Nothing was persisted on the failure path.
		repo := NewMemoryRepository()
		previews, err := repo.List(ctx)
		t.AssertNil(err)
		t.Assert(len(previews), 0)

		// The staged artifact stays for a retry.
		latest, err := staging.NewStore(dir).Latest(ctx)
		t.AssertNil(err)
		t.Assert(gstr.HasPrefix(latest.Name, consts.StagedPrefix), true)
	})
}

func TestPipelineTranscribeWithoutStage(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		pipeline := NewPipeline(staging.NewStore(dir), &fakeEngine{})
		_, err := pipeline.Transcribe(gctx.New())
		t.AssertNE(err, nil)
		t.Assert(gerror.Code(err), consts.CodeNotFound)
	})
}

// checkingEngine verifies the handed-over path exists at call time.
type checkingEngine struct {
	result  *engine.Result
	sawFile bool
}

func (f *checkingEngine) Transcribe(ctx context.Context, artifactPath string) (*engine.Result, error) {
	_, err := os.Stat(artifactPath)
	f.sawFile = err == nil
	return f.result, nil
}

func TestPipelineArtifactRemainsUntilTranscribed(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		eng := &checkingEngine{result: &engine.Result{Success: true}}
		pipeline := NewPipeline(staging.NewStore(dir), eng)
		ctx := gctx.New()

		artifact, err := pipeline.Stage(ctx, testWAV(16), "audio/wav", "call.wav")
		t.AssertNil(err)

		// Nothing removes the staged file between staging and the backend
		// call; the backend must be able to open it.
		run, err := pipeline.Transcribe(ctx)
		t.AssertNil(err)
		t.Assert(eng.sawFile, true)
		t.Assert(run.Artifact.Path, artifact.Path)

		_, err = os.Stat(artifact.Path)
		t.AssertNil(err)
	})
}

// blockingEngine parks inside Transcribe until released.
type blockingEngine struct {
	started chan struct{}
	release chan struct{}
	result  *engine.Result
	path    string
}

func (f *blockingEngine) Transcribe(ctx context.Context, artifactPath string) (*engine.Result, error) {
	f.path = artifactPath
	close(f.started)
	<-f.release
	return f.result, nil
}

func TestPipelineConcurrentStageKeepsRunsApart(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		eng := &blockingEngine{
			started: make(chan struct{}),
			release: make(chan struct{}),
			result: &engine.Result{
				Success: true,
				Transcriptions: []engine.Utterance{
					{Speaker: "shipper", Text: "first call"},
				},
			},
		}
		pipeline := NewPipeline(staging.NewStore(dir), eng)
		ctx := gctx.New()

		first, err := pipeline.Stage(ctx, testWAV(16), "audio/wav", "first.wav")
		t.AssertNil(err)

		type outcome struct {
			run *RunResult
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			run, err := pipeline.Transcribe(ctx)
			done <- outcome{run: run, err: err}
		}()

		<-eng.started

		// A second upload while the first run is in flight starts its own
		// run; it must not rewind or hijack the transcribing one.
		_, err = pipeline.Stage(ctx, testWAV(16), "audio/wav", "second.wav")
		t.AssertNil(err)
		t.Assert(pipeline.State(), StateStaged)

		close(eng.release)
		got := <-done
		t.AssertNil(got.err)
		t.Assert(eng.path, first.Path)
		t.Assert(got.run.Artifact.Path, first.Path)
		t.Assert(got.run.Normalized.Content.Shipper, []string{"first call"})

		// The completed first run does not clobber the new run's phase.
		t.Assert(pipeline.State(), StateStaged)
	})
}

func TestPipelinePicksLatestStagedArtifact(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		eng := &fakeEngine{result: &engine.Result{Success: true}}
		pipeline := NewPipeline(staging.NewStore(dir), eng)
		ctx := gctx.New()

		_, err := pipeline.Stage(ctx, testWAV(16), "audio/wav", "old.wav")
		t.AssertNil(err)
		second, err := pipeline.Stage(ctx, testWAV(16), "audio/wav", "new.wav")
		t.AssertNil(err)

		_, err = pipeline.Transcribe(ctx)
		t.AssertNil(err)
		t.Assert(eng.path, second.Path)
	})
}
