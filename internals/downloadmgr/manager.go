package downloadmgr

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of parallel downloads if nothing else is set
const DefaultWorkers = 16

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue []Downloader
	// Workers is the maximum number of parallel downloads
	Workers int
	// OnProgress is called after every finished item. Calls never overlap
	// and done only ever grows
	OnProgress func(done int, total int)
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// Len returns the number of queued items
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Start starts the download queue. The first error cancels all other items
func (d *DownloadManager) Start(ctx context.Context) error {
	if len(d.queue) == 0 {
		return nil
	}

	workers := d.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	mu := sync.Mutex{}
	done := 0
	total := len(d.queue)

	for _, item := range d.queue {
		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := item.Download(ctx); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			done++
			if d.OnProgress != nil {
				d.OnProgress(done, total)
			}
			return nil
		})
	}
	return g.Wait()
}

// Downloader allows downloadmgr to download the file
type Downloader interface {
	Download(ctx context.Context) error
}

// DownloaderFunc is a func that can be queued
type DownloaderFunc func(ctx context.Context) error

// Download calls f
func (f DownloaderFunc) Download(ctx context.Context) error {
	return f(ctx)
}

// New creates a new downloadmgr
func New(workers int) *DownloadManager {
	return &DownloadManager{Workers: workers}
}
