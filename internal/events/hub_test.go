package events

import (
	"encoding/json"
	"testing"
)

func TestHubFanOutAndDrop(t *testing.T) {
	h := NewHub(4)
	a := h.Subscribe()
	b := h.Subscribe()
	if h.Subscribers() != 2 {
		t.Fatalf("subscribers = %d", h.Subscribers())
	}

	h.Emit("req-1", JobUpserted, map[string]string{"id": "7"})

	for _, s := range []*Subscription{a, b} {
		e := <-s.C
		if e.Seq != 1 || e.Type != JobUpserted || e.Version != Version || e.RequestID != "req-1" || string(e.Data) != `{"id":"7"}` {
			t.Fatalf("event = %+v", e)
		}
	}

	// a slow subscriber loses events past its buffer but never blocks
	for i := 0; i < 10; i++ {
		h.Emit("", JobDeleted, nil)
	}
	if len(a.C) != 4 || a.Dropped() != 6 {
		t.Fatalf("buffered = %d dropped = %d, want 4 and 6", len(a.C), a.Dropped())
	}
	if e := <-a.C; e.Seq != 2 {
		t.Errorf("first buffered seq = %d, want 2", e.Seq)
	}

	h.Unsubscribe(a)
	h.Unsubscribe(a)
	for range a.C {
	}
	if h.Subscribers() != 1 {
		t.Fatalf("subscribers = %d", h.Subscribers())
	}
}

func TestEmitDropsUnmarshalableData(t *testing.T) {
	h := NewHub()
	s := h.Subscribe()
	defer h.Unsubscribe(s)

	h.Emit("", ConfigSaved, make(chan int))
	if len(s.C) != 0 {
		t.Fatal("unmarshalable event was published")
	}
}

func TestEventJSON(t *testing.T) {
	e, err := New("r", JobsImported, map[string]int{"upserted": 2})
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]any
	if err := json.Unmarshal(e.JSON(), &back); err != nil {
		t.Fatal(err)
	}
	if back["type"] != JobsImported || back["v"] != float64(Version) {
		t.Errorf("envelope = %v", back)
	}
}
