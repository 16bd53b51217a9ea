package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"sublign/internal/align"
	"sublign/internal/audio"
	"sublign/internal/config"
	"sublign/internal/fileutil"
	"sublign/internal/history"
	"sublign/internal/logging"
	"sublign/internal/media"
	"sublign/internal/notify"
	"sublign/internal/plot"
	"sublign/internal/predict"
	"sublign/internal/services"
	"sublign/internal/subtitle"
)

// Result describes how one subtitle fared against its media file.
type Result struct {
	MediaPath     string
	SubtitlePath  string
	OffsetSeconds float64
	Decision      align.Decision
	Err           error
}

// Syncer drives the full alignment pipeline: featurize media, classify
// speech, search for the best shift, and rewrite accepted subtitles.
type Syncer struct {
	cfg         *config.Config
	logger      *slog.Logger
	featurizer  *audio.Featurizer
	features    *audio.FeatureCache
	predictions map[string][]float64
	predictor   predict.Predictor
	store       *history.Store
	notifier    notify.Service
}

// New wires a syncer. The store may be nil to skip history recording and
// the notifier may be nil to disable notifications.
func New(cfg *config.Config, logger *slog.Logger, predictor predict.Predictor, store *history.Store, notifier notify.Service) *Syncer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notify.NewService(&config.Config{})
	}
	return &Syncer{
		cfg:         cfg,
		logger:      logging.NewComponentLogger(logger, "syncer"),
		featurizer:  audio.NewFeaturizer(cfg, logger),
		features:    audio.NewFeatureCache(),
		predictions: make(map[string][]float64),
		predictor:   predictor,
		store:       store,
		notifier:    notifier,
	}
}

// predictionsFor featurizes and classifies a media file once, serving
// repeat subtitles for the same file from memory.
func (s *Syncer) predictionsFor(ctx context.Context, item *media.Item) ([]float64, error) {
	if cached, ok := s.predictions[item.Path]; ok {
		return cached, nil
	}
	if s.predictor == nil {
		return nil, services.Wrap(services.ErrPrecondition, "syncer", "predict", "no speech model loaded", nil)
	}

	features, ok := s.features.Get(item.Path)
	if !ok {
		computed, err := s.featurizer.Featurize(ctx, item)
		if err != nil {
			return nil, err
		}
		s.features.Put(item.Path, computed)
		features = computed
	}

	probabilities, err := s.predictor.Predict(ctx, features)
	if err != nil {
		return nil, err
	}
	s.predictions[item.Path] = probabilities
	return probabilities, nil
}

// SyncSubtitle aligns one subtitle against one media file, rewriting the
// file in place when the shift is accepted. A rejected shift is a normal
// outcome, not an error.
func (s *Syncer) SyncSubtitle(ctx context.Context, item *media.Item, subtitlePath string) (Result, error) {
	result := Result{MediaPath: item.Path, SubtitlePath: subtitlePath}
	logger := logging.WithContext(ctx, s.logger).With(
		logging.String(logging.FieldSubtitle, filepath.Base(subtitlePath)))

	probabilities, err := s.predictionsFor(ctx, item)
	if err != nil {
		return result, err
	}

	track, err := subtitle.Load(subtitlePath)
	if err != nil {
		return result, err
	}
	labels, err := track.Labels(len(probabilities), s.cfg.Audio.SampleRate, s.cfg.Audio.HopLength)
	if err != nil {
		return result, err
	}

	marginFrames := align.FramesForSeconds(s.cfg.Sync.MarginSeconds, s.cfg.Audio.SampleRate, s.cfg.Audio.HopLength)
	candidates, err := align.Score(probabilities, labels, marginFrames)
	if err != nil {
		return result, services.Wrap(services.ErrPrecondition, "syncer", "score",
			fmt.Sprintf("cannot search %s", filepath.Base(subtitlePath)), err)
	}
	decision, err := align.Decide(candidates, s.cfg.Sync.Safe)
	if err != nil {
		return result, err
	}

	offsetSeconds := align.SecondsForFrames(decision.BestOffset, s.cfg.Audio.SampleRate, s.cfg.Audio.HopLength)
	result.OffsetSeconds = offsetSeconds
	result.Decision = decision

	outcome := "unchanged"
	if decision.Accepted {
		outcome = "shifted"
	}
	attrs := append(logging.DecisionAttrs(outcome, gateReason(decision)),
		logging.Float64("offset_seconds", offsetSeconds),
		logging.Int("offset_frames", decision.BestOffset),
		logging.Float64("best_loss", decision.BestLoss),
		logging.Float64("mean_loss", decision.MeanLoss),
		logging.Float64("loss_stddev", decision.LossStdDev),
		logging.Bool("confident", decision.Confident))
	logger.InfoContext(ctx, "shift decision", logging.Args(attrs...)...)

	if decision.Accepted {
		if s.cfg.Sync.Backup {
			if err := fileutil.CopyFile(subtitlePath, subtitlePath+".bak"); err != nil {
				return result, fmt.Errorf("backup subtitle: %w", err)
			}
		}
		track.Shift(time.Duration(offsetSeconds * float64(time.Second)))
		if err := track.Save(); err != nil {
			return result, err
		}
	}

	if s.cfg.Sync.Plot {
		plotPath := subtitlePath + ".losses.png"
		if err := plot.SaveLossCurve(plotPath, filepath.Base(subtitlePath), candidates, decision,
			s.cfg.Audio.SampleRate, s.cfg.Audio.HopLength); err != nil {
			logger.WarnContext(ctx, "loss plot failed", logging.Error(err))
		}
	}

	s.record(ctx, logger, result)
	if decision.Accepted {
		if err := s.notifier.NotifySubtitleShifted(ctx, filepath.Base(subtitlePath), offsetSeconds); err != nil {
			logger.WarnContext(ctx, "shift notification failed", logging.Error(err))
		}
	}
	return result, nil
}

// record persists the decision. History failures are logged rather than
// surfaced because the subtitle rewrite already happened.
func (s *Syncer) record(ctx context.Context, logger *slog.Logger, result Result) {
	if s.store == nil {
		return
	}
	runID, _ := services.RunIDFromContext(ctx)
	model := ""
	if s.predictor != nil {
		model = s.predictor.Describe()
	}
	_, err := s.store.Add(ctx, &history.Record{
		RunID:         runID,
		MediaPath:     result.MediaPath,
		SubtitlePath:  result.SubtitlePath,
		Model:         model,
		OffsetFrames:  result.Decision.BestOffset,
		OffsetSeconds: result.OffsetSeconds,
		BestLoss:      result.Decision.BestLoss,
		MeanLoss:      result.Decision.MeanLoss,
		LossStdDev:    result.Decision.LossStdDev,
		Confident:     result.Decision.Confident,
		Accepted:      result.Decision.Accepted,
	})
	if err != nil {
		logger.WarnContext(ctx, "history write failed", logging.Error(err))
	}
}

func gateReason(decision align.Decision) string {
	switch {
	case decision.Confident:
		return "loss minimum below confidence gate"
	case decision.Accepted:
		return "safe mode disabled"
	default:
		return "loss minimum within noise"
	}
}
