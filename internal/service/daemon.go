package service

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RunScheduled keeps the process resident and runs the send pipeline at
// the top of every hour until the context is cancelled. The guard still
// decides whether each tick actually sends. A vocabulary list that is
// too small stops the loop; other errors are logged and the next tick
// runs normally.
func (s *SenderService) RunScheduled(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := cron.New(cron.WithLocation(s.opts.Location))

	_, err := c.AddFunc("0 * * * *", func() {
		text, err := s.Run()
		if err != nil {
			s.logger.Error("scheduled run failed", zap.Error(err))
			if errors.Is(err, ErrVocabularyTooSmall) {
				cancel()
			}
			return
		}
		if text != "" {
			s.logger.Info("scheduled run sent a batch")
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	s.logger.Info("hourly scheduler started")

	<-runCtx.Done()

	<-c.Stop().Done()
	s.logger.Info("hourly scheduler stopped")

	if ctx.Err() == nil {
		return ErrVocabularyTooSmall
	}
	return nil
}
