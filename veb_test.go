package veb

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/abhinvv1/Van-Emde-Boas-tree/events"
	"github.com/abhinvv1/Van-Emde-Boas-tree/node"
)

func setupTest(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	t.Cleanup(teardown)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
}

func TestNewRejectsInvalidUniverse(t *testing.T) {
	setupTest(t)
	if _, err := New(3); !errors.Is(err, node.ErrInvalidUniverse) {
		t.Fatalf("New(3) error = %v, want ErrInvalidUniverse", err)
	}
}

func TestRoundUpUniverse(t *testing.T) {
	setupTest(t)
	cases := map[uint64]uint64{
		0:  1,
		1:  1,
		2:  2,
		3:  4,
		17: 32,
		32: 32,
	}
	for in, want := range cases {
		if got := RoundUpUniverse(in); got != want {
			t.Errorf("RoundUpUniverse(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestTreeBasicLifecycle(t *testing.T) {
	setupTest(t)
	tr, err := New(16)
	if err != nil {
		t.Fatalf("New(16): %v", err)
	}
	for _, k := range []uint64{2, 3, 4, 5, 7, 14, 15} {
		ok, err := tr.Insert(k)
		if err != nil || !ok {
			t.Fatalf("Insert(%d) = %v, %v", k, ok, err)
		}
	}
	if err := tr.Check(); err != nil {
		t.Fatalf("Check(): %v", err)
	}
	var viaRange []uint64
	for k := range tr.Range() {
		viaRange = append(viaRange, k)
	}
	seq := tr.ToSequence()
	if len(viaRange) != len(seq) {
		t.Fatalf("Range() yielded %v, ToSequence() = %v", viaRange, seq)
	}
	for i := range seq {
		if viaRange[i] != seq[i] {
			t.Fatalf("Range() yielded %v, ToSequence() = %v", viaRange, seq)
		}
	}
	tr.Clear()
	if !tr.Empty() {
		t.Fatal("tree should be empty after Clear")
	}
}

func TestTreeWithClusterPooling(t *testing.T) {
	setupTest(t)
	tr, err := New(1<<10, WithClusterPooling())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := uint64(0); i < 200; i++ {
		if _, err := tr.Insert(i * 3); err != nil {
			t.Fatalf("Insert(%d): %v", i*3, err)
		}
	}
	if err := tr.Check(); err != nil {
		t.Fatalf("Check(): %v", err)
	}
	for i := uint64(0); i < 200; i++ {
		tr.Remove(i * 3)
	}
	if !tr.Empty() {
		t.Fatal("tree should be empty")
	}
	if err := tr.Check(); err != nil {
		t.Fatalf("Check() after drain: %v", err)
	}
}

func TestTreeWithEventFeed(t *testing.T) {
	setupTest(t)
	feed := events.NewFeed()
	defer feed.Close()
	sub, err := feed.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Unsub()

	tr, err := New(16, WithEventFeed(feed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := tr.Insert(14); err != nil {
		t.Fatalf("Insert(14): %v", err)
	}

	select {
	case msg := <-sub.C:
		evt, ok := msg.(node.Event)
		if !ok {
			t.Fatalf("unexpected event payload type %T", msg)
		}
		if evt.Kind != node.EventClusterAllocated {
			t.Errorf("event kind = %v, want EventClusterAllocated", evt.Kind)
		}
	default:
		t.Fatal("expected a ClusterAllocated event to have been published")
	}
}

func TestTreeDotIncludesClusterStructure(t *testing.T) {
	setupTest(t)
	tr, _ := New(16)
	tr.Insert(14)
	var buf strings.Builder
	tr.Dot(&buf)
	out := buf.String()
	if !strings.Contains(out, "strict digraph") {
		t.Errorf("Dot output missing digraph header: %s", out)
	}
	if !strings.Contains(out, "summary") {
		t.Errorf("Dot output missing summary edge: %s", out)
	}
}
