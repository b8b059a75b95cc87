// Package archive pushes audio artifacts to TOS object storage for retention
// once a transcription run has consumed them. It is optional: without
// configuration Enqueue is a no-op and the staged files are simply left in
// place.
package archive

import (
	"context"
	"os"
	"sync"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/volcengine/ve-tos-golang-sdk/v2/tos"
)

type options struct {
	Enabled   bool
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	QueueSize int
	Workers   int
	// DeleteLocal removes the staged file after a successful upload.
	DeleteLocal bool
}

// Task is one artifact to archive.
type Task struct {
	ObjectKey string
	FilePath  string
}

var (
	opts      options
	client    *tos.ClientV2
	queue     chan Task
	startOnce sync.Once
)

// Init reads the archive configuration and, when enabled, connects the TOS
// client and starts the upload workers.
func Init(ctx context.Context) error {
	opts = options{
		Enabled:     g.Cfg().MustGet(ctx, "archive.enabled", false).Bool(),
		Endpoint:    g.Cfg().MustGet(ctx, "archive.tos.endpoint").String(),
		Region:      g.Cfg().MustGet(ctx, "archive.tos.region").String(),
		Bucket:      g.Cfg().MustGet(ctx, "archive.tos.bucket").String(),
		AccessKey:   g.Cfg().MustGet(ctx, "archive.tos.ak").String(),
		SecretKey:   g.Cfg().MustGet(ctx, "archive.tos.sk").String(),
		QueueSize:   g.Cfg().MustGet(ctx, "archive.queueSize", 16).Int(),
		Workers:     g.Cfg().MustGet(ctx, "archive.workers", 2).Int(),
		DeleteLocal: g.Cfg().MustGet(ctx, "archive.deleteLocal", true).Bool(),
	}
	if !opts.Enabled {
		return nil
	}
	if opts.Endpoint == "" || opts.Bucket == "" {
		opts.Enabled = false
		return gerror.New("archive enabled but archive.tos.endpoint/bucket missing")
	}

	credential := tos.NewStaticCredentials(opts.AccessKey, opts.SecretKey)
	var err error
	if client, err = tos.NewClientV2(
		opts.Endpoint,
		tos.WithCredentials(credential),
		tos.WithRegion(opts.Region),
	); err != nil {
		opts.Enabled = false
		return gerror.Wrap(err, "TOS client init failed")
	}
	g.Log().Info(ctx, "artifact archive initialized, bucket:", opts.Bucket)

	queue = make(chan Task, opts.QueueSize)
	startOnce.Do(func() {
		for i := 0; i < opts.Workers; i++ {
			go worker(ctx)
		}
	})
	return nil
}

// Enqueue schedules an artifact for archival. It never blocks the pipeline:
// when the queue is full the artifact is skipped with a warning.
func Enqueue(ctx context.Context, task Task) {
	if !opts.Enabled || queue == nil {
		return
	}
	select {
	case queue <- task:
	default:
		g.Log().Warningf(ctx, "archive queue full, skipping %s", task.ObjectKey)
	}
}

func worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-queue:
			if err := uploadOne(ctx, task); err != nil {
				g.Log().Warningf(ctx, "archive upload failed, key=%s: %v", task.ObjectKey, err)
				continue
			}
			g.Log().Infof(ctx, "archive upload completed, key=%s", task.ObjectKey)
			if opts.DeleteLocal {
				_ = os.Remove(task.FilePath)
			}
		}
	}
}

func uploadOne(ctx context.Context, task Task) error {
	file, err := os.Open(task.FilePath)
	if err != nil {
		return gerror.Wrap(err, "opening artifact failed")
	}
	defer file.Close()

	if _, err = client.PutObjectV2(ctx, &tos.PutObjectV2Input{
		PutObjectBasicInput: tos.PutObjectBasicInput{
			Bucket: opts.Bucket,
			Key:    task.ObjectKey,
		},
		Content: file,
	}); err != nil {
		if serverErr, ok := err.(*tos.TosServerError); ok {
			return gerror.Wrapf(serverErr, "TOS upload rejected, code=%s status=%d",
				serverErr.Code, serverErr.StatusCode)
		}
		return gerror.Wrap(err, "TOS upload failed")
	}
	return nil
}
