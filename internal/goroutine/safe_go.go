// Package goroutine запускает фоновые горутины так, чтобы panic в них
// не ронял процесс.
package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/upcycle-backend/internal/logger"
)

// Runner перехватывает panic и пишет её в лог вместе со стеком.
type Runner struct {
	log logrus.FieldLogger
}

func NewRunner(log logrus.FieldLogger) *Runner {
	return &Runner{log: log}
}

// Go запускает fn в отдельной горутине. Возвращаемый канал закрывается,
// когда fn завершилась, в том числе паникой.
func (r *Runner) Go(ctx context.Context, name string, fn func(context.Context)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer r.recover(name)
		fn(ctx)
	}()
	return done
}

func (r *Runner) recover(name string) {
	if rec := recover(); rec != nil {
		r.log.WithFields(logrus.Fields{
			"goroutine": name,
			"panic":     rec,
			"stack":     string(debug.Stack()),
		}).Error("panic в фоновой горутине")
	}
}

// Go запускает горутину с общим логгером приложения.
func Go(ctx context.Context, name string, fn func(context.Context)) <-chan struct{} {
	return NewRunner(logger.Log).Go(ctx, name, fn)
}
