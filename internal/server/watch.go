package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces editor write bursts into one re-ingestion.
const watchDebounce = 100 * time.Millisecond

// watchItemFile re-ingests a local item file into the watch tenant
// whenever it changes. Development convenience: it keeps a live catalog
// in sync with a file on disk without re-uploading by hand.
func (s *Server) watchItemFile(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	target, err := filepath.Abs(s.cfg.WatchFile)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	s.ingestWatched(ctx, target)

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				s.ingestWatched(ctx, target)
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func (s *Server) ingestWatched(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("failed to read watched item file", "path", path, "error", err)
		return
	}

	res, err := s.svc.Upload(ctx, s.cfg.WatchTenant, content)
	if err != nil {
		s.logger.Error("watched item file rejected", "path", path, "error", err)
		return
	}
	s.logger.Info("watched item file ingested",
		"path", path,
		"tenant", s.cfg.WatchTenant,
		"accepted", res.Accepted,
		"rejected", res.Rejected)
}
