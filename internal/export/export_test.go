package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/zulfikawr/chanscope/internal/registry"
)

func buildRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(clock.NewMock(), 10)
}

func TestCombined_SplitsChannelsAndStreams(t *testing.T) {
	r := buildRegistry(t)

	chID := r.Register(registry.RegisterOptions{
		Kind: registry.KindBounded, Capacity: 4, Source: "a.go:1", TypeName: "int", TypeSize: 8,
	})
	stID := r.Register(registry.RegisterOptions{
		Kind: registry.KindStream, Capacity: -1, Source: "a.go:2", TypeName: "string", TypeSize: 16,
	})

	doc := Combined(r.Snapshot(), r.ElapsedNS())
	if len(doc.Channels) != 1 || doc.Channels[0].ID != chID {
		t.Fatalf("Expected 1 channel with ID %d, got %+v", chID, doc.Channels)
	}
	if len(doc.Streams) != 1 || doc.Streams[0].ID != stID {
		t.Fatalf("Expected 1 stream with ID %d, got %+v", stID, doc.Streams)
	}
}

func TestChannel_JSONFieldNames(t *testing.T) {
	r := buildRegistry(t)
	id := r.Register(registry.RegisterOptions{
		Kind: registry.KindBounded, Capacity: 4, Source: "a.go:3", TypeName: "int", TypeSize: 8,
	})
	r.RecordSend(id, 8, "")

	doc := Channels(r.Snapshot(), r.ElapsedNS())
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	body := string(data)
	for _, field := range []string{
		`"runtime"`, `"id"`, `"label"`, `"kind":"bounded[4]"`, `"capacity":4`,
		`"state":"active"`, `"sent":1`, `"sent_bytes_estimate":8`,
		`"received":0`, `"received_bytes_estimate":0`, `"queued":1`,
		`"created_at"`, `"closed_at":null`, `"log":null`,
	} {
		if !strings.Contains(body, field) {
			t.Errorf("Expected %s in JSON, got %s", field, body)
		}
	}
}

func TestChannel_UnboundedNullFields(t *testing.T) {
	r := buildRegistry(t)
	r.Register(registry.RegisterOptions{
		Kind: registry.KindUnbounded, Capacity: -1, Source: "a.go:4", TypeName: "int", TypeSize: 8,
	})

	doc := Channels(r.Snapshot(), r.ElapsedNS())
	data, _ := json.Marshal(doc)

	body := string(data)
	if !strings.Contains(body, `"capacity":null`) {
		t.Errorf("Expected null capacity for unbounded, got %s", body)
	}
	if !strings.Contains(body, `"queued":null`) {
		t.Errorf("Expected null queued for unbounded, got %s", body)
	}
	if !strings.Contains(body, `"kind":"unbounded"`) {
		t.Errorf("Expected unbounded kind, got %s", body)
	}
}

func TestChannel_ClosedAtSet(t *testing.T) {
	mock := clock.NewMock()
	r := registry.New(mock, 10)
	id := r.Register(registry.RegisterOptions{
		Kind: registry.KindOneshot, Capacity: 1, Source: "a.go:5", TypeName: "int", TypeSize: 8,
	})

	mock.Add(42 * time.Nanosecond)
	r.Close(id)

	doc := Channels(r.Snapshot(), r.ElapsedNS())
	ch := doc.Channels[0]
	if ch.State != "closed" {
		t.Errorf("Expected closed state, got %s", ch.State)
	}
	if ch.ClosedAt == nil || *ch.ClosedAt != 42 {
		t.Errorf("Expected closed_at 42, got %v", ch.ClosedAt)
	}
}

func TestSorted_CustomLabelsFirst(t *testing.T) {
	r := buildRegistry(t)

	r.Register(registry.RegisterOptions{
		Kind: registry.KindBounded, Capacity: 1, Source: "z.go:1",
	})
	r.Register(registry.RegisterOptions{
		Kind: registry.KindBounded, Capacity: 1, Source: "m.go:1", Label: "zebra",
	})
	r.Register(registry.RegisterOptions{
		Kind: registry.KindBounded, Capacity: 1, Source: "a.go:1",
	})
	r.Register(registry.RegisterOptions{
		Kind: registry.KindBounded, Capacity: 1, Source: "q.go:1", Label: "alpha",
	})

	doc := Channels(r.Snapshot(), r.ElapsedNS())
	got := make([]string, len(doc.Channels))
	for i, c := range doc.Channels {
		got[i] = c.Label
	}

	want := []string{"alpha", "zebra", "a.go:1", "z.go:1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort order = %v, want %v", got, want)
		}
	}
}

func TestLogs_NewestFirst(t *testing.T) {
	r := buildRegistry(t)
	id := r.Register(registry.RegisterOptions{
		Kind: registry.KindBounded, Capacity: 4, Source: "a.go:6", LogEnabled: true,
	})
	r.RecordSend(id, 4, "first")
	r.RecordSend(id, 4, "second")
	r.RecordSend(id, 4, "third")

	v, _ := r.View(id)
	doc := Logs(v)

	if len(doc.Logs) != 3 {
		t.Fatalf("Expected 3 log entries, got %d", len(doc.Logs))
	}
	if doc.Logs[0].Message != "third" || doc.Logs[2].Message != "first" {
		t.Errorf("Expected newest first, got %+v", doc.Logs)
	}
	if doc.ID != id {
		t.Errorf("Expected ID %d, got %d", id, doc.ID)
	}
}

func TestStream_Document(t *testing.T) {
	r := buildRegistry(t)
	id := r.Register(registry.RegisterOptions{
		Kind: registry.KindStream, Capacity: -1, Source: "a.go:7", TypeName: "int", TypeSize: 8,
	})
	r.RecordYield(id, 8, "")
	r.RecordYield(id, 8, "")

	doc := Streams(r.Snapshot(), r.ElapsedNS())
	if len(doc.Streams) != 1 {
		t.Fatalf("Expected 1 stream, got %d", len(doc.Streams))
	}
	s := doc.Streams[0]
	if s.Yielded != 2 {
		t.Errorf("Expected 2 yielded, got %d", s.Yielded)
	}
	if s.Kind != "stream" {
		t.Errorf("Expected stream kind, got %s", s.Kind)
	}

	data, _ := json.Marshal(doc)
	if !strings.Contains(string(data), `"yielded":2`) {
		t.Errorf("Expected yielded field in JSON, got %s", data)
	}
}
