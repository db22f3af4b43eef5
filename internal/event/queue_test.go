package event

import (
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(4)
	q.Send(Score{Text: "0"})
	q.Send(Lives{Text: "3"})
	q.Send(Submit{})

	expected := []Event{Score{Text: "0"}, Lives{Text: "3"}, Submit{}}
	for i, want := range expected {
		got := <-q.Events()
		if got != want {
			t.Errorf("event %d = %#v, expected %#v", i, got, want)
		}
	}
}

func TestQueueDropsOldest(t *testing.T) {
	q := NewQueue(2)
	q.Send(Score{Text: "1"})
	q.Send(Score{Text: "2"})
	q.Send(Score{Text: "3"})

	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", q.Dropped())
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", q.Len())
	}

	first := <-q.Events()
	second := <-q.Events()
	if first != (Score{Text: "2"}) || second != (Score{Text: "3"}) {
		t.Errorf("got %#v, %#v; expected scores 2 then 3", first, second)
	}
}

func TestQueueDropsReplaceableFirst(t *testing.T) {
	lose := Status{Viz: Visible, Buttons: Visible, Text: "Score: 90"}

	tests := []struct {
		name     string
		queued   []Event
		send     Event
		expected []Event
	}{
		{
			name:     "score before submit",
			queued:   []Event{Submit{}, lose, Score{Text: "90"}, Lives{Text: "0"}},
			send:     Score{Text: "100"},
			expected: []Event{Submit{}, lose, Lives{Text: "0"}, Score{Text: "100"}},
		},
		{
			name:     "lives before status",
			queued:   []Event{lose, Lives{Text: "1"}, Submit{}},
			send:     Status{Viz: Invisible, Buttons: Invisible},
			expected: []Event{lose, Submit{}, Status{Viz: Invisible, Buttons: Invisible}},
		},
		{
			name:     "oldest when nothing is replaceable",
			queued:   []Event{Submit{}, lose},
			send:     Submit{},
			expected: []Event{lose, Submit{}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := NewQueue(len(tc.queued))
			for _, e := range tc.queued {
				q.Send(e)
			}
			q.Send(tc.send)

			if q.Dropped() != 1 {
				t.Errorf("Dropped() = %d, expected 1", q.Dropped())
			}
			if q.Len() != len(tc.expected) {
				t.Fatalf("Len() = %d, expected %d", q.Len(), len(tc.expected))
			}
			for i, want := range tc.expected {
				if got := <-q.Events(); got != want {
					t.Errorf("event %d = %#v, expected %#v", i, got, want)
				}
			}
		})
	}
}

func TestReplaceable(t *testing.T) {
	tests := []struct {
		e        Event
		expected bool
	}{
		{Score{Text: "1"}, true},
		{Lives{Text: "2"}, true},
		{Submit{}, false},
		{Status{}, false},
	}
	for _, tc := range tests {
		if got := Replaceable(tc.e); got != tc.expected {
			t.Errorf("Replaceable(%#v) = %v, expected %v", tc.e, got, tc.expected)
		}
	}
}

func TestQueueDefaultSize(t *testing.T) {
	q := NewQueue(0)
	if cap(q.ch) != DefaultQueueSize {
		t.Errorf("capacity = %d, expected %d", cap(q.ch), DefaultQueueSize)
	}
}

func TestQueueConcurrentSendNeverBlocks(t *testing.T) {
	q := NewQueue(8)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				q.Send(Submit{})
			}
		}()
	}
	wg.Wait()

	if q.Len() != 8 {
		t.Errorf("Len() = %d, expected a full queue of 8", q.Len())
	}
	if q.Dropped() != 4000-8 {
		t.Errorf("Dropped() = %d, expected %d", q.Dropped(), 4000-8)
	}
}

func TestVisibilityString(t *testing.T) {
	if Visible.String() != "visible" || Invisible.String() != "invisible" {
		t.Errorf("unexpected strings %q, %q", Visible, Invisible)
	}
}
