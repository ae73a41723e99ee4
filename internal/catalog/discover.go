package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrNoSource is returned when every attach strategy failed.
var ErrNoSource = errors.New("no catalog source could be attached")

// Provider is one attach strategy.
type Provider[T any] struct {
	Name   string
	Attach func(ctx context.Context) (T, error)
}

// Discover tries providers in order and returns the first successful handle
// with the name of the provider that produced it.
func Discover[T any](ctx context.Context, log logrus.FieldLogger, providers ...Provider[T]) (T, string, error) {
	var zero T
	var failures []error

	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return zero, "", err
		}
		h, err := p.Attach(ctx)
		if err == nil {
			log.WithField("provider", p.Name).Debug("catalog source attached")
			return h, p.Name, nil
		}
		log.WithField("provider", p.Name).WithError(err).Warn("attach strategy failed")
		failures = append(failures, fmt.Errorf("%s: %w", p.Name, err))
	}

	if len(failures) == 0 {
		return zero, "", fmt.Errorf("%w: no strategies configured", ErrNoSource)
	}
	return zero, "", fmt.Errorf("%w: %w", ErrNoSource, errors.Join(failures...))
}
