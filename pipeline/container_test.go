package pipeline

import (
	"reflect"
	"testing"

	"github.com/piperkit/piper/util"
)

// eject builds a handler that parks every item on the parent's drain, so
// scheduler tests can watch pending counts without sibling feedback.
func eject() Handler {
	return Handler(func(in *Instance, batch []any, _ ...any) error {
		in.Eject(batch...)
		return nil
	})
}

func TestSchedulerPicksOverflowingChildClosestToDrain(t *testing.T) {
	root := mustInit(t, Container("main",
		Process("first", Options{BatchSize: util.Ptr(2)}, eject()),
		Process("second", Options{BatchSize: util.Ptr(4)}, eject()),
	))
	first := root.Children()[0]
	second := root.Children()[1]

	first.Enqueue(1, 2, 3)
	second.Enqueue(10)

	if first.Pressure() != 150 || second.Pressure() != 25 {
		t.Fatalf("unexpected pressures: %d, %d", first.Pressure(), second.Pressure())
	}

	// first is the only overflowing child, so it runs despite second being
	// closer to the drain.
	if err := root.ProcessBatch(); err != nil {
		t.Fatal(err)
	}
	if first.Pending() != 1 || second.Pending() != 1 {
		t.Fatalf("expected first to process a batch, pending: %d, %d", first.Pending(), second.Pending())
	}

	// No overflow left; pressures are 50 vs 25, so first still wins.
	if err := root.ProcessBatch(); err != nil {
		t.Fatal(err)
	}
	if first.Pending() != 0 || second.Pending() != 1 {
		t.Fatalf("expected first to drain, pending: %d, %d", first.Pending(), second.Pending())
	}

	if err := root.ProcessBatch(); err != nil {
		t.Fatal(err)
	}
	if second.Pending() != 0 {
		t.Fatalf("expected second to drain, pending: %d", second.Pending())
	}
}

func TestSchedulerPicksLastOverflowingChild(t *testing.T) {
	root := mustInit(t, Container("main",
		Process("first", Options{BatchSize: util.Ptr(1)}, eject()),
		Process("second", Options{BatchSize: util.Ptr(1)}, eject()),
	))
	first := root.Children()[0]
	second := root.Children()[1]

	first.Enqueue(1)
	second.Enqueue(2)

	// Both overflow; the one closest to the drain goes first.
	if err := root.ProcessBatch(); err != nil {
		t.Fatal(err)
	}
	if second.Pending() != 0 || first.Pending() != 1 {
		t.Fatalf("expected second to run first, pending: %d, %d", first.Pending(), second.Pending())
	}
}

func TestSchedulerTieGoesToEarlierChild(t *testing.T) {
	root := mustInit(t, Container("main",
		Process("first", Options{BatchSize: util.Ptr(4)}, eject()),
		Process("second", Options{BatchSize: util.Ptr(4)}, eject()),
	))
	first := root.Children()[0]
	second := root.Children()[1]

	first.Enqueue(1)
	second.Enqueue(2)

	// Equal pressure (25 each): a later sibling wins only by exceeding.
	if err := root.ProcessBatch(); err != nil {
		t.Fatal(err)
	}
	if first.Pending() != 0 || second.Pending() != 1 {
		t.Fatalf("tie must go to the earlier child, pending: %d, %d", first.Pending(), second.Pending())
	}
}

func TestChildOutputEntersFollowerGate(t *testing.T) {
	// The follower's own gate runs when output moves forward: negate
	// rejects the odd results of add_one.
	root := mustInit(t, Container("main",
		Process("add_one", Map(func(x any) any { return x.(int) + 1 })),
		Process("negate", Options{Allow: even}, Map(func(x any) any { return -x.(int) })),
	))

	root.Enqueue(1, 2)

	// 1 → 2 → accepted → -2; 2 → 3 → rejected → drain unchanged.
	got := dequeueInts(t, root, 2)
	if !reflect.DeepEqual(got, []int{3, -2}) {
		t.Fatalf("expected [3 -2], got %v", got)
	}
}

func TestNestedContainerDrainMovesToParent(t *testing.T) {
	inner := Container("inner", Process("id", identity()))
	root := mustInit(t, Container("main",
		inner,
		Process("double", Map(func(x any) any { return x.(int) * 2 })),
	))

	root.Enqueue(3)

	got := dequeueInts(t, root, 1)
	if !reflect.DeepEqual(got, []int{6}) {
		t.Fatalf("inner output must flow through the next sibling, got %v", got)
	}
}

func TestContainerWithNothingPendingIsANoOp(t *testing.T) {
	root := mustInit(t, Container("main", Process("id", identity())))
	if err := root.ProcessBatch(); err != nil {
		t.Fatal(err)
	}
	if root.Ready() != 0 {
		t.Fatal("no work means no output")
	}
}
