// Package mongodb owns the document-store client: choosing how to reach the
// cluster at startup, holding the live client, and exposing it to adapters.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ErrNoReachableStore is returned when every descriptor has been tried and none answered a ping.
var ErrNoReachableStore = errors.New("no reachable store")

// Descriptor is one named way of reaching the store.
type Descriptor struct {
	Name string
	URI  string
}

// AttemptFunc opens and probes a connection for a single descriptor.
type AttemptFunc[T any] func(ctx context.Context, d Descriptor) (T, error)

// FirstReachable tries descriptors in order and returns the first successful result.
// Descriptors after the winner are never tried. When all fail, the error wraps
// ErrNoReachableStore together with each attempt's failure.
func FirstReachable[T any](ctx context.Context, descriptors []Descriptor, attempt AttemptFunc[T]) (T, Descriptor, error) {
	var zero T
	if len(descriptors) == 0 {
		slog.Error("no store connection descriptors configured")
		return zero, Descriptor{}, ErrNoReachableStore
	}

	errs := make([]error, 0, len(descriptors))
	for i, d := range descriptors {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		slog.Info("attempting store connection", "method", i+1, "descriptor", d.Name)
		v, err := attempt(ctx, d)
		if err == nil {
			slog.Info("store connection established", "method", i+1, "descriptor", d.Name)
			return v, d, nil
		}
		slog.Warn("store connection method failed", "method", i+1, "descriptor", d.Name, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", d.Name, err))
	}

	slog.Error("all store connection methods failed", "attempts", len(errs))
	return zero, Descriptor{}, fmt.Errorf("%w: %w", ErrNoReachableStore, errors.Join(errs...))
}

// Connect returns the first client that answers a ping, trying descriptors in order.
// Connect, server-selection and operation timeouts are all set to timeout.
func Connect(ctx context.Context, descriptors []Descriptor, timeout time.Duration) (*mongo.Client, Descriptor, error) {
	return FirstReachable(ctx, descriptors, func(ctx context.Context, d Descriptor) (*mongo.Client, error) {
		return dial(ctx, d, timeout)
	})
}

// dial opens a client for d and pings the primary. A client that fails the ping is disconnected.
func dial(ctx context.Context, d Descriptor, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(d.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetTimeout(timeout).
		SetAppName("projects-backend")

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		discCtx, discCancel := context.WithTimeout(context.Background(), timeout)
		defer discCancel()
		_ = client.Disconnect(discCtx)
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}
