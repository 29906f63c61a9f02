// Package scheduler runs jobs on cron expressions.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/exp/slog"
)

type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler with the standard 5-field parser (min, hour, dom,
// month, dow). Panics in jobs are recovered and logged.
func New(logger *slog.Logger) *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	cl := cronLogger{logger: logger}
	c := cron.New(cron.WithParser(parser), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl)))

	return &Scheduler{cron: c}
}

// AddJob schedules task on expr. It returns an error if the expression is
// invalid.
func (s *Scheduler) AddJob(expr string, task func()) error {
	if _, err := s.cron.AddFunc(expr, task); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", expr, err)
	}

	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
