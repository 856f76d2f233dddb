package events

import (
	"context"
	"errors"

	"github.com/guiguan/caster"

	"github.com/abhinvv1/Van-Emde-Boas-tree/node"
)

// subscriberCapacity buffers each subscriber's channel so Report (called
// synchronously inline with a mutation) never blocks waiting on a slow or
// momentarily-idle listener.
const subscriberCapacity = 8

// Feed is a node.Sink that broadcasts every structural event it receives to
// any number of subscribers via a caster.Caster.
type Feed struct {
	cast *caster.Caster
}

// NewFeed creates a Feed with no retained last event.
func NewFeed() *Feed {
	return &Feed{cast: caster.New(nil)}
}

// Report implements node.Sink.
func (f *Feed) Report(evt node.Event) {
	if f == nil || f.cast == nil {
		return
	}
	f.cast.Pub(evt)
}

// Subscription is a live listener on a Feed, obtained from Subscribe.
type Subscription struct {
	// C delivers every event published after the Subscription was created.
	C <-chan interface{}

	ch   chan interface{}
	cast *caster.Caster
}

// Unsub detaches the Subscription from its Feed. Callers must call Unsub
// when done listening.
func (s *Subscription) Unsub() {
	s.cast.Unsub(s.ch)
}

// Subscribe registers a new listener for subsequent events. Callers must
// call Unsub on the returned Subscription when done listening.
func (f *Feed) Subscribe() (*Subscription, error) {
	ch, _ := f.cast.Sub(context.Background(), subscriberCapacity)
	return &Subscription{C: ch, ch: ch, cast: f.cast}, nil
}

// Close shuts the feed down; no further events may be published or subscribed to.
func (f *Feed) Close() error {
	if ok := f.cast.Close(); !ok {
		return errors.New("events: feed already closed")
	}
	return nil
}
