// Package jobs は定期的に動くバックグラウンド処理 (自動保存と復習リマインダー) をまとめます。
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go_4_vocab_review/internal/config"
	"go_4_vocab_review/internal/middleware"

	"github.com/go-co-op/gocron"
)

// Saver は ItemStore の全件保存
type Saver interface {
	Save(ctx context.Context) error
}

// DueCounter は asOf 時点の復習対象の件数を返します。
type DueCounter interface {
	CountDue(asOf time.Time) int
}

// Notifier は復習対象がたまったことを学習者に知らせます。
type Notifier interface {
	NotifyDue(ctx context.Context, count int) error
}

// LogNotifier はログに出すだけの Notifier
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyDue(ctx context.Context, count int) error {
	n.logger.InfoContext(ctx, "Review reminder", "due_count", count)
	return nil
}

// Runner は gocron のスケジューラで各ジョブを動かします。
type Runner struct {
	scheduler *gocron.Scheduler
	cfg       config.JobsConfig
	saver     Saver
	counter   DueCounter
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

func New(cfg config.JobsConfig, saver Saver, counter DueCounter, notifier Notifier, logger *slog.Logger) *Runner {
	return &Runner{
		scheduler: gocron.NewScheduler(time.UTC),
		cfg:       cfg,
		saver:     saver,
		counter:   counter,
		notifier:  notifier,
		logger:    logger.With("component", "jobs"),
		now:       time.Now,
	}
}

// Start はジョブを登録して非同期に開始します。間隔が 0 以下のジョブは登録しません。
func (r *Runner) Start() error {
	if r.cfg.AutosaveInterval > 0 && r.saver != nil {
		if _, err := r.scheduler.Every(r.cfg.AutosaveInterval).WaitForSchedule().SingletonMode().Do(r.Autosave); err != nil {
			return fmt.Errorf("jobs: schedule autosave: %w", err)
		}
		r.logger.Info("Autosave job scheduled", "interval", r.cfg.AutosaveInterval)
	}
	if r.cfg.ReminderInterval > 0 && r.counter != nil && r.notifier != nil {
		if _, err := r.scheduler.Every(r.cfg.ReminderInterval).WaitForSchedule().SingletonMode().Do(r.CheckReminders); err != nil {
			return fmt.Errorf("jobs: schedule reminder: %w", err)
		}
		r.logger.Info("Reminder job scheduled", "interval", r.cfg.ReminderInterval,
			"notify_start_hour", r.cfg.NotifyStartHour, "notify_end_hour", r.cfg.NotifyEndHour)
	}
	r.scheduler.StartAsync()
	return nil
}

// Stop は実行中のジョブの完了を待たずにスケジューラを止めます。
func (r *Runner) Stop() {
	r.scheduler.Stop()
}

func (r *Runner) jobContext() context.Context {
	return middleware.WithLogger(context.Background(), r.logger)
}

// Autosave はストアを保存します。失敗はログに残すだけで、次の回に再試行されます。
func (r *Runner) Autosave() {
	ctx := r.jobContext()
	start := r.now()
	if err := r.saver.Save(ctx); err != nil {
		r.logger.Error("Autosave failed", "error", err)
		return
	}
	r.logger.Debug("Autosave completed", "duration", r.now().Sub(start))
}

// CheckReminders は通知時間帯であれば復習対象の件数を数え、1件以上なら通知します。
func (r *Runner) CheckReminders() {
	ctx := r.jobContext()
	now := r.now()

	if !withinNotifyWindow(now.Hour(), r.cfg.NotifyStartHour, r.cfg.NotifyEndHour) {
		r.logger.Debug("Outside notification hours, skipping reminder",
			"hour", now.Hour(), "start", r.cfg.NotifyStartHour, "end", r.cfg.NotifyEndHour)
		return
	}

	count := r.counter.CountDue(now)
	if count == 0 {
		return
	}
	if err := r.notifier.NotifyDue(ctx, count); err != nil {
		r.logger.Error("Failed to send review reminder", "due_count", count, "error", err)
	}
}

// withinNotifyWindow は hour が [start, end) に入るかどうか。start > end は日付をまたぐ時間帯、
// start == end は制限なし。
func withinNotifyWindow(hour, start, end int) bool {
	switch {
	case start == end:
		return true
	case start < end:
		return hour >= start && hour < end
	default:
		return hour >= start || hour < end
	}
}
