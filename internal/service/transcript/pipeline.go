package transcript

import (
	"context"
	"sync"

	"shipvoice-speech-service/internal/service/archive"
	"shipvoice-speech-service/internal/service/engine"
	"shipvoice-speech-service/internal/service/staging"
	"shipvoice-speech-service/internal/service/validation"
)

// State of a pipeline run.
type State string

const (
	StateIdle         State = "idle"
	StateStaged       State = "staged"
	StateTranscribing State = "transcribing"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

// Engine abstracts the transcription backend client for the pipeline.
type Engine interface {
	Transcribe(ctx context.Context, artifactPath string) (*engine.Result, error)
}

// RunResult is what a completed run hands back to the caller. Persisting it is
// an explicit separate caller action.
type RunResult struct {
	Artifact   *staging.Artifact
	Normalized *Normalized
	Text       string
}

// run carries the phase of one staged artifact. Each run owns its state, so a
// new upload never rewinds a run that is already transcribing.
type run struct {
	state    State
	artifact *staging.Artifact
}

// Pipeline composes validate, stage, transcribe and normalize into the
// end-to-end flow. Staging and transcription are separate calls: a staged
// artifact may sit untouched until the caller triggers processing.
type Pipeline struct {
	staging *staging.Store
	engine  Engine

	mu      sync.Mutex
	current *run
}

func NewPipeline(store *staging.Store, eng Engine) *Pipeline {
	return &Pipeline{
		staging: store,
		engine:  eng,
	}
}

// State returns the phase of the most recently started run.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return StateIdle
	}
	return p.current.state
}

// Stage validates the artifact against the type/size policy and writes it into
// transient storage. Every staged artifact starts a fresh run.
func (p *Pipeline) Stage(ctx context.Context, content []byte, declaredType string, originalName string) (*staging.Artifact, error) {
	if err := validation.Validate(content, declaredType, int64(len(content))); err != nil {
		return nil, err
	}
	artifact, err := p.staging.Stage(ctx, content, originalName)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.current = &run{state: StateStaged, artifact: artifact}
	p.mu.Unlock()

	return artifact, nil
}

// Transcribe sends the most recently staged artifact to the backend and
// normalizes the result. Any backend or normalization failure terminates the
// run as failed; the staged artifact is left in place.
//
// The backend call runs outside the state lock so a slow backend never stalls
// unrelated staging calls. The staged file stays on disk for the whole run;
// archival is enqueued only once the run has completed, so the backend always
// reads an existing file.
func (p *Pipeline) Transcribe(ctx context.Context) (*RunResult, error) {
	p.mu.Lock()
	r := p.current
	p.mu.Unlock()

	if r == nil {
		latest, err := p.staging.Latest(ctx)
		if err != nil {
			return nil, err
		}
		r = &run{state: StateStaged, artifact: latest}
		p.mu.Lock()
		if p.current == nil {
			p.current = r
		}
		p.mu.Unlock()
	}

	p.transition(r, StateTranscribing)

	result, err := p.engine.Transcribe(ctx, r.artifact.Path)
	if err != nil {
		p.transition(r, StateFailed)
		return nil, err
	}

	normalized := Normalize(ctx, result)
	p.transition(r, StateCompleted)

	archive.Enqueue(ctx, archive.Task{
		ObjectKey: r.artifact.Name,
		FilePath:  r.artifact.Path,
	})

	return &RunResult{
		Artifact:   r.artifact,
		Normalized: normalized,
		Text:       Flatten(result),
	}, nil
}

func (p *Pipeline) transition(r *run, s State) {
	p.mu.Lock()
	r.state = s
	p.mu.Unlock()
}
