package events_test

import (
	"testing"

	"github.com/abhinvv1/Van-Emde-Boas-tree/events"
	"github.com/abhinvv1/Van-Emde-Boas-tree/node"
)

func TestFeedBroadcastsToMultipleSubscribers(t *testing.T) {
	feed := events.NewFeed()
	defer feed.Close()

	subA, err := feed.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer subA.Unsub()
	subB, err := feed.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer subB.Unsub()

	feed.Report(node.Event{Kind: node.EventClusterAllocated, Universe: 16, Key: 3})

	select {
	case msg := <-subA.C:
		evt := msg.(node.Event)
		if evt.Key != 3 {
			t.Errorf("subA got key %d, want 3", evt.Key)
		}
	default:
		t.Fatal("subA did not receive the event")
	}
	select {
	case msg := <-subB.C:
		evt := msg.(node.Event)
		if evt.Key != 3 {
			t.Errorf("subB got key %d, want 3", evt.Key)
		}
	default:
		t.Fatal("subB did not receive the event")
	}
}

func TestFeedReportOnNilFeedIsNoOp(t *testing.T) {
	var feed *events.Feed
	feed.Report(node.Event{Kind: node.EventMinPromoted})
}
