package pipeline

import (
	"strings"
	"testing"

	"github.com/piperkit/piper/errors"
	"github.com/piperkit/piper/util"
)

func TestProcessRequiresHandler(t *testing.T) {
	_, err := Process("empty").InitWith(testEngine())
	if !errors.IsCode(err, errors.ErrCodeConfig) {
		t.Fatalf("expected CONFIG error, got %v", err)
	}
	if !strings.Contains(err.Error(), "handler") {
		t.Fatalf("expected handler in message, got: %v", err)
	}
}

func TestContainerRequiresChildren(t *testing.T) {
	_, err := Container("empty").InitWith(testEngine())
	if !errors.IsCode(err, errors.ErrCodeConfig) {
		t.Fatalf("expected CONFIG error, got %v", err)
	}
	if !strings.Contains(err.Error(), "child") {
		t.Fatalf("expected children in message, got: %v", err)
	}
}

func TestNonPositiveBatchSizeIsConfigError(t *testing.T) {
	_, err := Container("main",
		Process("p", Options{BatchSize: util.Ptr(-2)}, identity()),
	).InitWith(testEngine())
	if !errors.IsCode(err, errors.ErrCodeConfig) {
		t.Fatalf("expected CONFIG error, got %v", err)
	}
}

func TestUnusableArgumentIsTypeError(t *testing.T) {
	_, err := Container("main", 42).InitWith(testEngine())
	if !errors.IsCode(err, errors.ErrCodeType) {
		t.Fatalf("expected TYPE error, got %v", err)
	}
}

func TestBareFuncCoercions(t *testing.T) {
	root := mustInit(t, Container("main",
		func(x any) any { return x.(int) + 1 },
		func(x any) (any, error) { return x.(int) * 2, nil },
		func(in *Instance, batch []any, _ ...any) error {
			in.Emit(batch...)
			return nil
		},
	))

	if got := len(root.Children()); got != 3 {
		t.Fatalf("expected 3 coerced processors, got %d", got)
	}

	root.Enqueue(1)
	got := dequeueInts(t, root, 1)
	if got[0] != 4 {
		t.Fatalf("expected (1+1)*2 = 4, got %d", got[0])
	}
}

func TestOptionsWithHandlerBecomesChildProcessor(t *testing.T) {
	root := mustInit(t, Container("main",
		Options{Label: "inc", Handler: Map(func(x any) any { return x.(int) + 1 })},
	))

	child := root.Children()[0]
	if child.Kind() != KindProcessor || child.Label() != "inc" {
		t.Fatalf("expected processor child 'inc', got %v %q", child.Kind(), child.Label())
	}
}

func TestSecondAttributeRecordIsConfigError(t *testing.T) {
	_, err := Container("main",
		Options{BatchSize: util.Ptr(4)},
		Options{BatchSize: util.Ptr(8)},
		Process("p", identity()),
	).InitWith(testEngine())
	if !errors.IsCode(err, errors.ErrCodeConfig) {
		t.Fatalf("expected CONFIG error, got %v", err)
	}
}

func TestLabeledOverridesChildLabel(t *testing.T) {
	inc := Process("inc", Map(func(x any) any { return x.(int) + 1 }))
	root := mustInit(t, Container("main", Labeled("renamed", inc)))

	if got := root.Children()[0].Label(); got != "renamed" {
		t.Fatalf("expected label override, got %q", got)
	}
	// The original blueprint keeps its own label and stays reusable.
	if inc.Label() != "inc" {
		t.Fatalf("label override must not mutate the original, got %q", inc.Label())
	}
}

func TestInstanceArgumentIsUnwrapped(t *testing.T) {
	live := mustInit(t, Process("inc", Map(func(x any) any { return x.(int) + 1 })))

	root := mustInit(t, Container("main", live))
	child := root.Children()[0]
	if child.Label() != "inc" || child == live {
		t.Fatal("instance arguments must be unwrapped to a fresh instance of their blueprint")
	}

	root.Enqueue(1)
	got := dequeueInts(t, root, 1)
	if got[0] != 2 {
		t.Fatalf("expected 2, got %d", got[0])
	}
}

func TestGeneratedLabelsAreUnique(t *testing.T) {
	a := Process(identity())
	b := Process(identity())
	if a.Label() == "" || b.Label() == "" {
		t.Fatal("omitted labels must be generated")
	}
	if a.Label() == b.Label() {
		t.Fatalf("generated labels must be unique, both %q", a.Label())
	}
	if !strings.HasPrefix(a.Label(), "process-") {
		t.Fatalf("unexpected generated label: %q", a.Label())
	}

	c := Container(a)
	if !strings.HasPrefix(c.Label(), "container-") {
		t.Fatalf("unexpected generated label: %q", c.Label())
	}
}

func TestFilterAliasForAllow(t *testing.T) {
	root := mustInit(t, Container("main",
		Process("evens", Options{Filter: even}, identity()),
	))

	root.Enqueue(1, 2)
	if got := root.Children()[0].Pending(); got != 1 {
		t.Fatalf("filter alias must gate items, pending=%d", got)
	}
	if root.Ready() != 1 {
		t.Fatalf("rejected item must reach the drain, ready=%d", root.Ready())
	}
}

func TestBlueprintAccessors(t *testing.T) {
	p := Process("p", identity())
	c := Container("c", p)

	if p.Kind() != KindProcessor || c.Kind() != KindContainer {
		t.Fatal("unexpected kinds")
	}
	if c.Kind().String() != "container" || p.Kind().String() != "process" {
		t.Fatal("unexpected kind names")
	}
	kids := c.Children()
	if len(kids) != 1 || kids[0] != p {
		t.Fatalf("unexpected children: %v", kids)
	}
}
