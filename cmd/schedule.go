package cmd

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// schedule runs job on every tick of the cron expression 'expr' until ctx is done.
//
// A failing job is logged and does not stop the schedule.
func schedule(ctx context.Context, expr string, job func(context.Context) error) error {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger)))
	_, err := c.AddFunc(expr, func() {
		if err := job(ctx); err != nil {
			logger.WithError(err).WithField("schedule", expr).Error("scheduled run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	logger.WithField("schedule", expr).Info("scheduler started")
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	logger.WithField("schedule", expr).Info("scheduler stopped")
	return nil
}
