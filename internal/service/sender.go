package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"vocabsender/internal/delivery"
	"vocabsender/internal/domain"
	"vocabsender/internal/repository"
)

// SenderOptions holds the run parameters assembled from configuration
type SenderOptions struct {
	Words         int
	TargetHours   []int
	ForceSend     bool
	Location      *time.Location
	RetentionDays int
}

// SenderService runs the send pipeline: guard, selection, formatting,
// delivery, state persistence
type SenderService struct {
	vocabRepo repository.VocabularyRepository
	stateRepo repository.StateRepository
	backends  []delivery.Backend
	selector  *Selector
	opts      SenderOptions
	logger    *zap.Logger

	now func() time.Time
}

// NewSenderService creates a new sender service
func NewSenderService(
	vocabRepo repository.VocabularyRepository,
	stateRepo repository.StateRepository,
	backends []delivery.Backend,
	selector *Selector,
	opts SenderOptions,
	logger *zap.Logger,
) *SenderService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &SenderService{
		vocabRepo: vocabRepo,
		stateRepo: stateRepo,
		backends:  backends,
		selector:  selector,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one send attempt. It returns the delivered message, or
// an empty string when the guard blocked the run. Delivery failures are
// reported per backend and never stop the other backends or the state
// save; the returned error covers the fatal cases only.
func (s *SenderService) Run() (string, error) {
	now := s.now().In(s.opts.Location)
	date := now.Format(domain.DateFormat)
	hour := now.Hour()

	state, err := s.stateRepo.Load()
	if err != nil {
		return "", fmt.Errorf("load state: %w", err)
	}

	targetHours := make(map[int]struct{}, len(s.opts.TargetHours))
	for _, h := range s.opts.TargetHours {
		targetHours[h] = struct{}{}
	}

	decision := EvaluateSend(hour, targetHours, state.HoursOn(date), s.opts.ForceSend)
	if decision != SendAllowed {
		s.logger.Info("send skipped",
			zap.String("reason", decision.String()),
			zap.String("date", date),
			zap.Int("hour", hour),
		)
		return "", nil
	}

	entries, err := s.vocabRepo.LoadEntries()
	if err != nil {
		return "", fmt.Errorf("load vocabulary: %w", err)
	}
	if len(entries) < s.opts.Words {
		return "", fmt.Errorf("%w: have %d, need %d", ErrVocabularyTooSmall, len(entries), s.opts.Words)
	}

	chosen, newUsed, err := s.selector.Pick(entries, state.UsedSet(), s.opts.Words)
	if err != nil {
		return "", err
	}

	text := FormatMessage(chosen, date)

	s.deliver(text)

	state.SetUsed(newUsed)
	state.MarkSent(date, hour)
	state.Prune(now, s.opts.RetentionDays)
	if err := s.stateRepo.Save(state); err != nil {
		return "", fmt.Errorf("save state: %w", err)
	}

	s.logger.Info("send completed",
		zap.String("date", date),
		zap.Int("hour", hour),
		zap.Int("words", len(chosen)),
	)
	return text, nil
}

// deliver attempts every configured backend, isolating failures
func (s *SenderService) deliver(text string) {
	for _, backend := range s.backends {
		if !backend.Configured() {
			s.logger.Info("delivery backend not configured, skipping",
				zap.String("backend", backend.Name()),
			)
			continue
		}
		if err := backend.Send(text); err != nil {
			s.logger.Error("delivery failed",
				zap.String("backend", backend.Name()),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("delivery succeeded", zap.String("backend", backend.Name()))
	}
}
