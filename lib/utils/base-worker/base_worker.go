package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	schedule      cron.Schedule
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return NewScheduled(WorkerName, firstRunDelay, cron.Every(runInterval))
}

// NewScheduled - запуск по расписанию cron, первый запуск через firstRunDelay
func NewScheduled(WorkerName string, firstRunDelay time.Duration, schedule cron.Schedule) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		schedule:      schedule,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	period := i.firstRunDelay
	logger := i.GetLogger()
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-time.After(period):
			i.runJob(ctx, jobFunc)
		}
		now := time.Now()
		period = i.schedule.Next(now).Sub(now)
	}
}

func (i BaseImpl) runJob(ctx context.Context, jobFunc func(ctx context.Context)) {
	logger := i.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	logger.Info("job started")
	jobFunc(ctx)
	logger.Info("job finished")
}
