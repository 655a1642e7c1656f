package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	stored := zap.New(core)

	ctx := ContextWithLogger(context.Background(), stored)
	FromContext(ctx, zap.NewNop()).Info("via context")

	if logs.Len() != 1 {
		t.Fatalf("expected the stored logger to receive the entry, got %d entries", logs.Len())
	}
}

func TestFromContext_FallsBack(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	fallback := zap.New(core)

	FromContext(context.Background(), fallback).Info("via fallback")

	if logs.Len() != 1 {
		t.Fatalf("expected the fallback logger to receive the entry, got %d entries", logs.Len())
	}

	// Nil fallback still yields a usable logger.
	FromContext(context.Background(), nil).Info("dropped")
}
