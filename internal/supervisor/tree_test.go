// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tyremark/tyremark/internal/logging"
)

func TestDefaultTreeConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 {
		t.Errorf("expected failure threshold 5, got %v", cfg.FailureThreshold)
	}
	if cfg.FailureBackoff != 15*time.Second {
		t.Errorf("expected 15s backoff, got %s", cfg.FailureBackoff)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestNewTreeAppliesDefaults(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(logging.NewSlogLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("zero threshold must default to 5, got %v", tree.config.FailureThreshold)
	}
	if tree.Root() == nil {
		t.Fatal("expected non-nil root supervisor")
	}
}

// stubService runs until its context is canceled.
type stubService struct{ started chan struct{} }

func (s *stubService) Serve(ctx context.Context) error {
	select {
	case s.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubService) String() string { return "stub" }

func TestTreeServeBackgroundAndShutdown(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(logging.NewSlogLogger(), DefaultTreeConfig())
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}

	svc := &stubService{started: make(chan struct{}, 1)}
	tree.AddAPIService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	select {
	case <-svc.started:
	case <-time.After(2 * time.Second):
		t.Fatal("service did not start")
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop after cancellation")
	}
}

func TestTreeLayerTokens(t *testing.T) {
	t.Parallel()

	tree, err := NewTree(logging.NewSlogLogger(), DefaultTreeConfig())
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}

	storageToken := tree.AddStorageService(&stubService{started: make(chan struct{}, 1)})
	apiToken := tree.AddAPIService(&stubService{started: make(chan struct{}, 1)})

	if storageToken == apiToken {
		t.Error("expected distinct service tokens per layer")
	}
}
