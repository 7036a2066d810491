package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/example/readlog/internal/config"
)

// Notifier sends review reminders
type Notifier interface {
	SendDueReminder(count int) error
}

// DueCounter reports how many words are due for review
type DueCounter interface {
	CountDue(now time.Time) (int, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	counter   DueCounter
	cfg       *config.Config
	logger    *logrus.Logger
}

// New creates a new scheduler instance
func New(notifier Notifier, counter DueCounter, cfg *config.Config, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		counter:   counter,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(func() {
		s.runCheck(time.Now())
	})
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// runCheck sends a reminder when words are due and the current hour is
// inside the configured notification window.
func (s *Scheduler) runCheck(now time.Time) {
	hour := now.Hour()
	if hour < s.cfg.NotificationStartHour || hour > s.cfg.NotificationEndHour {
		s.logger.WithField("hour", hour).Debug("outside notification hours, skipping reminder")
		return
	}

	count, err := s.counter.CountDue(now)
	if err != nil {
		s.logger.WithError(err).Error("failed to count due words")
		return
	}
	if count == 0 {
		return
	}

	if err := s.notifier.SendDueReminder(count); err != nil {
		s.logger.WithError(err).Error("failed to send reminder")
		return
	}
	s.logger.WithField("count", count).Info("sent review reminder")
}
