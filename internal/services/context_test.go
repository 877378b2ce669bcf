package services

import (
	"context"
	"testing"
)

func TestContextAnnotations(t *testing.T) {
	ctx := context.Background()

	if _, ok := ItemIndexFromContext(ctx); ok {
		t.Fatal("expected empty context to carry no item index")
	}

	ctx = WithItemIndex(ctx, 7)
	ctx = WithStage(ctx, "download")
	ctx = WithRunID(ctx, "run-123")

	if idx, ok := ItemIndexFromContext(ctx); !ok || idx != 7 {
		t.Fatalf("unexpected item index: %d %v", idx, ok)
	}
	if stage, ok := StageFromContext(ctx); !ok || stage != "download" {
		t.Fatalf("unexpected stage: %q %v", stage, ok)
	}
	if id, ok := RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %q %v", id, ok)
	}
}

func TestContextAnnotationsIgnoreEmptyValues(t *testing.T) {
	ctx := context.Background()
	if WithStage(ctx, "") != ctx {
		t.Fatal("empty stage should not allocate a new context")
	}
	if WithRunID(ctx, "") != ctx {
		t.Fatal("empty run id should not allocate a new context")
	}
}
