package pipeline

import (
	"fmt"
	"testing"

	"github.com/piperkit/piper/observability"
)

func TestWithLoggingPassesThrough(t *testing.T) {
	wrapped := WithLogging(Map(func(x any) any { return x.(int) + 1 }))
	root := mustInit(t, Container("main", Process("inc", wrapped)))

	root.Enqueue(1)
	got := dequeueInts(t, root, 1)
	if got[0] != 2 {
		t.Fatalf("middleware must not change results, got %d", got[0])
	}
}

func TestWithLoggingPropagatesError(t *testing.T) {
	boom := fmt.Errorf("boom")
	wrapped := WithLogging(Handler(func(in *Instance, batch []any, _ ...any) error {
		return boom
	}))
	root := mustInit(t, Container("main", Process("p", wrapped)))

	root.Enqueue(1)
	if _, err := root.Dequeue(1); err == nil {
		t.Fatal("expected wrapped error to surface")
	}
}

func TestWithMetricsPassesThrough(t *testing.T) {
	metrics, err := observability.NewMetrics(observability.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	wrapped := WithMetrics(Map(func(x any) any { return x.(int) * 3 }), metrics)
	root := mustInit(t, Container("main", Process("triple", wrapped)))

	root.Enqueue(2)
	got := dequeueInts(t, root, 1)
	if got[0] != 6 {
		t.Fatalf("expected 6, got %d", got[0])
	}
}

func TestWithTracingPassesThrough(t *testing.T) {
	wrapped := WithTracing(Map(func(x any) any { return x.(int) - 1 }), "test")
	root := mustInit(t, Container("main", Process("dec", wrapped)))

	root.Enqueue(5)
	got := dequeueInts(t, root, 1)
	if got[0] != 4 {
		t.Fatalf("expected 4, got %d", got[0])
	}
}

func TestMiddlewareComposes(t *testing.T) {
	metrics, err := observability.NewMetrics(observability.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}
	h := WithTracing(WithMetrics(WithLogging(identity()), metrics), "test")
	root := mustInit(t, Container("main", Process("id", h)))

	root.Enqueue(9)
	got := dequeueInts(t, root, 1)
	if got[0] != 9 {
		t.Fatalf("expected 9, got %d", got[0])
	}
}
