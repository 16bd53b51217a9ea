package syncer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sublign/internal/logging"
	"sublign/internal/media"
	"sublign/internal/services"
)

// Summary aggregates the outcome of one batch run.
type Summary struct {
	RunID     string
	Media     int
	Subtitles int
	Shifted   int
	Unchanged int
	Failed    int
	Results   []Result
	Duration  time.Duration
}

// Run discovers media under the given roots, aligns every sidecar
// subtitle, and returns the aggregate outcome. Individual subtitle
// failures are recorded in the summary rather than aborting the batch.
func (s *Syncer) Run(ctx context.Context, roots ...string) (*Summary, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, s.logger)

	if len(roots) == 0 {
		roots = []string{"."}
	}

	lock := NewRunLock(s.cfg)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("run lock release failed", logging.Error(err))
		}
	}()

	var items []*media.Item
	seen := make(map[string]struct{})
	for _, root := range roots {
		found, err := media.Discover(root)
		if err != nil {
			return nil, err
		}
		for _, item := range found {
			if _, ok := seen[item.Path]; ok {
				continue
			}
			seen[item.Path] = struct{}{}
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "syncer", "discover",
			fmt.Sprintf("no supported media under %s", strings.Join(roots, ", ")), nil)
	}

	batch := make(map[*media.Item][]string, len(items))
	subtitleCount := 0
	for _, item := range items {
		subtitles, err := item.Subtitles()
		if err != nil {
			return nil, err
		}
		batch[item] = subtitles
		subtitleCount += len(subtitles)
	}

	started := time.Now()
	summary := &Summary{RunID: runID, Media: len(items), Subtitles: subtitleCount}
	logger.InfoContext(ctx, "starting sync run",
		logging.Int("media", summary.Media),
		logging.Int("subtitles", summary.Subtitles),
		logging.String("roots", strings.Join(roots, ", ")))
	if err := s.notifier.NotifyRunStarted(ctx, summary.Media, summary.Subtitles); err != nil {
		logger.WarnContext(ctx, "run start notification failed", logging.Error(err))
	}

	for _, item := range items {
		s.syncMedia(ctx, item, batch[item], summary)
	}

	summary.Duration = time.Since(started)
	logger.InfoContext(ctx, "sync run complete",
		logging.Int("shifted", summary.Shifted),
		logging.Int("unchanged", summary.Unchanged),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration))
	if err := s.notifier.NotifyRunCompleted(ctx, summary.Shifted, summary.Unchanged, summary.Failed, summary.Duration); err != nil {
		logger.WarnContext(ctx, "run completion notification failed", logging.Error(err))
	}
	return summary, nil
}

// syncMedia aligns every subtitle paired with one media file. A featurize
// or predict failure fails all of the file's subtitles at once because
// they share the prediction vector.
func (s *Syncer) syncMedia(ctx context.Context, item *media.Item, subtitles []string, summary *Summary) {
	if len(subtitles) == 0 {
		logging.WithContext(ctx, s.logger).InfoContext(ctx, "no subtitles for media",
			logging.String(logging.FieldMedia, filepath.Base(item.Path)))
		return
	}
	mediaCtx := services.WithMedia(ctx, filepath.Base(item.Path))

	if _, err := s.predictionsFor(mediaCtx, item); err != nil {
		logging.WithContext(mediaCtx, s.logger).ErrorContext(mediaCtx, "media analysis failed", logging.Error(err))
		s.notifyError(mediaCtx, filepath.Base(item.Path), err)
		for _, subtitlePath := range subtitles {
			summary.Failed++
			summary.Results = append(summary.Results, Result{
				MediaPath:    item.Path,
				SubtitlePath: subtitlePath,
				Err:          err,
			})
		}
		return
	}

	for _, subtitlePath := range subtitles {
		result, err := s.SyncSubtitle(mediaCtx, item, subtitlePath)
		if err != nil {
			result.Err = err
			summary.Failed++
			logging.WithContext(mediaCtx, s.logger).ErrorContext(mediaCtx, "subtitle sync failed",
				logging.String(logging.FieldSubtitle, filepath.Base(subtitlePath)),
				logging.Error(err))
			s.notifyError(mediaCtx, filepath.Base(subtitlePath), err)
		} else if result.Decision.Accepted {
			summary.Shifted++
		} else {
			summary.Unchanged++
		}
		summary.Results = append(summary.Results, result)
	}
}

func (s *Syncer) notifyError(ctx context.Context, subject string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if notifyErr := s.notifier.NotifyError(ctx, err, subject); notifyErr != nil {
		logging.WithContext(ctx, s.logger).WarnContext(ctx, "error notification failed", logging.Error(notifyErr))
	}
}
