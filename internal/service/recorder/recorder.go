// Package recorder captures raw PCM frames from a live microphone session and
// assembles them into a WAV artifact for the staging pipeline.
package recorder

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
)

var ErrDisabled = errors.New("recorder disabled")

// Options configure a capture session.
type Options struct {
	Dir           string
	MaxBytes      int64
	SampleRate    int
	Channels      int
	BitsPerSample int
}

func (o *Options) applyDefaults() {
	if o.SampleRate == 0 {
		o.SampleRate = 16000
	}
	if o.Channels == 0 {
		o.Channels = 1
	}
	if o.BitsPerSample == 0 {
		o.BitsPerSample = 16
	}
}

// Result describes a finalized capture.
type Result struct {
	ConnectID string
	FilePath  string
	Size      int64
	StartedAt time.Time
	EndedAt   time.Time
}

// Recorder accumulates the audio frames of one connection.
type Recorder struct {
	connectID string
	opts      Options

	mu       sync.Mutex
	file     *os.File
	pcmPath  string
	wavPath  string
	total    int64
	closed   bool
	started  time.Time
}

func New(connectID string, opts Options) (*Recorder, error) {
	if opts.Dir == "" {
		return nil, ErrDisabled
	}
	opts.applyDefaults()
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, gerror.Wrap(err, "creating capture directory failed")
	}
	base := filepath.Join(opts.Dir, "recording_"+connectID)
	file, err := os.Create(base + ".pcm")
	if err != nil {
		return nil, gerror.Wrap(err, "creating capture file failed")
	}
	return &Recorder{
		connectID: connectID,
		opts:      opts,
		file:      file,
		pcmPath:   base + ".pcm",
		wavPath:   base + ".wav",
		started:   time.Now(),
	}, nil
}

// Append writes one audio frame. Exceeding the byte limit or a write failure
// terminates the capture.
func (r *Recorder) Append(frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.file == nil {
		return gerror.New("recorder already closed")
	}
	if r.opts.MaxBytes > 0 && r.total+int64(len(frame)) > r.opts.MaxBytes {
		r.closeLocked()
		return gerror.New("recording byte limit exceeded")
	}
	n, err := r.file.Write(frame)
	if err != nil {
		r.closeLocked()
		return gerror.Wrap(err, "writing audio frame failed")
	}
	r.total += int64(n)
	return nil
}

// Finalize closes the capture and wraps the PCM data into a WAV file. A nil
// result means no audio was received.
func (r *Recorder) Finalize() (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			return nil, gerror.Wrap(err, "closing capture file failed")
		}
		r.file = nil
	}
	r.closed = true
	if r.total == 0 {
		_ = os.Remove(r.pcmPath)
		return nil, nil
	}
	if err := r.flushToWAV(); err != nil {
		return nil, gerror.Wrap(err, "assembling WAV failed")
	}
	info, err := os.Stat(r.wavPath)
	if err != nil {
		return nil, gerror.Wrap(err, "stat on WAV file failed")
	}
	return &Result{
		ConnectID: r.connectID,
		FilePath:  r.wavPath,
		Size:      info.Size(),
		StartedAt: r.started,
		EndedAt:   time.Now(),
	}, nil
}

// Discard closes the capture and removes whatever was written.
func (r *Recorder) Discard() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeLocked()
	_ = os.Remove(r.pcmPath)
	_ = os.Remove(r.wavPath)
}

func (r *Recorder) closeLocked() {
	if r.closed {
		return
	}
	if r.file != nil {
		_ = r.file.Close()
		r.file = nil
	}
	r.closed = true
}

func (r *Recorder) flushToWAV() error {
	src, err := os.Open(r.pcmPath)
	if err != nil {
		return gerror.Wrap(err, "opening PCM file failed")
	}
	defer src.Close()

	dst, err := os.Create(r.wavPath)
	if err != nil {
		return gerror.Wrap(err, "creating WAV file failed")
	}

	if err := writeWAVHeader(dst, r.opts.Channels, r.opts.SampleRate, r.opts.BitsPerSample, r.total); err != nil {
		dst.Close()
		return gerror.Wrap(err, "writing WAV header failed")
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return gerror.Wrap(err, "writing WAV data failed")
	}
	if err := dst.Close(); err != nil {
		return gerror.Wrap(err, "closing WAV file failed")
	}
	return os.Remove(r.pcmPath)
}
