package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func newTestRegistry() (*Registry, *clock.Mock) {
	mock := clock.NewMock()
	return New(mock, 50), mock
}

func boundedOpts(source string) RegisterOptions {
	return RegisterOptions{
		Kind:     KindBounded,
		Capacity: 10,
		Source:   source,
		TypeName: "int",
		TypeSize: 8,
	}
}

func TestRegister_DistinctIDs(t *testing.T) {
	r, _ := newTestRegistry()

	// Same call site registered repeatedly must yield distinct IDs
	a := r.Register(boundedOpts("app/main.go:10"))
	b := r.Register(boundedOpts("app/main.go:10"))
	c := r.Register(boundedOpts("app/main.go:10"))

	if a == b || b == c || a == c {
		t.Errorf("Expected distinct IDs, got %d, %d, %d", a, b, c)
	}
	if r.Len() != 3 {
		t.Errorf("Expected 3 entities, got %d", r.Len())
	}
}

func TestRegister_AutoLabelIterSuffix(t *testing.T) {
	r, _ := newTestRegistry()

	a := r.Register(boundedOpts("app/worker.go:42"))
	b := r.Register(boundedOpts("app/worker.go:42"))
	c := r.Register(boundedOpts("app/other.go:7"))

	va, _ := r.View(a)
	vb, _ := r.View(b)
	vc, _ := r.View(c)

	if va.Label != "app/worker.go:42" {
		t.Errorf("Expected first label without suffix, got %q", va.Label)
	}
	if vb.Label != "app/worker.go:42-2" {
		t.Errorf("Expected -2 suffix for repeat call site, got %q", vb.Label)
	}
	if vc.Label != "app/other.go:7" {
		t.Errorf("Expected fresh call site without suffix, got %q", vc.Label)
	}
}

func TestRegister_CustomLabel(t *testing.T) {
	r, _ := newTestRegistry()

	opts := boundedOpts("app/main.go:10")
	opts.Label = "jobs"
	id := r.Register(opts)

	v, ok := r.View(id)
	if !ok {
		t.Fatal("View failed for registered entity")
	}
	if v.Label != "jobs" || !v.CustomLabel {
		t.Errorf("Expected custom label jobs, got %q (custom %v)", v.Label, v.CustomLabel)
	}
}

func TestRecordSendReceive_Counters(t *testing.T) {
	r, _ := newTestRegistry()
	id := r.Register(boundedOpts("t.go:1"))

	for i := 0; i < 7; i++ {
		r.RecordSend(id, 8, "")
	}
	for i := 0; i < 3; i++ {
		r.RecordReceive(id, 8)
	}

	v, _ := r.View(id)
	if v.Sent != 7 {
		t.Errorf("Expected sent 7, got %d", v.Sent)
	}
	if v.Received != 3 {
		t.Errorf("Expected received 3, got %d", v.Received)
	}
	if v.Queued() != 4 {
		t.Errorf("Expected queued 4, got %d", v.Queued())
	}
	if v.SentBytes != 56 {
		t.Errorf("Expected 56 sent bytes, got %d", v.SentBytes)
	}
	if v.QueuedBytes() != 32 {
		t.Errorf("Expected 32 queued bytes, got %d", v.QueuedBytes())
	}
}

func TestQueued_ClampsAtZero(t *testing.T) {
	r, _ := newTestRegistry()
	id := r.Register(boundedOpts("t.go:2"))

	// A view read between counter loads may observe more receives than
	// sends; Queued must clamp rather than underflow
	v, _ := r.View(id)
	v.Sent = 2
	v.Received = 5
	if v.Queued() != 0 {
		t.Errorf("Expected clamped queued 0, got %d", v.Queued())
	}
}

func TestClose_Idempotent(t *testing.T) {
	r, mock := newTestRegistry()
	id := r.Register(boundedOpts("t.go:3"))

	mock.Add(5 * time.Millisecond)
	r.Close(id)
	closedAt := func() uint64 {
		v, _ := r.View(id)
		return v.ClosedNS
	}()

	mock.Add(time.Hour)
	r.Close(id)

	v, _ := r.View(id)
	if v.State != StateClosed {
		t.Errorf("Expected closed state, got %s", v.State)
	}
	if v.ClosedNS != closedAt {
		t.Errorf("Second close moved the close time: %d -> %d", closedAt, v.ClosedNS)
	}
}

func TestUnknownID_NoOp(t *testing.T) {
	r, _ := newTestRegistry()

	// Records against IDs that were never issued must not panic and must
	// not create entities
	r.RecordSend(999, 8, "")
	r.RecordReceive(999, 8)
	r.RecordYield(999, 8, "")
	r.Close(999)

	if r.Len() != 0 {
		t.Errorf("Expected empty registry, got %d entities", r.Len())
	}
}

func TestLog_RingEviction(t *testing.T) {
	mock := clock.NewMock()
	r := New(mock, 3)

	opts := boundedOpts("t.go:4")
	opts.LogEnabled = true
	id := r.Register(opts)

	for i := 1; i <= 5; i++ {
		r.RecordSend(id, 4, fmt.Sprintf("msg-%d", i))
	}

	v, _ := r.View(id)
	if len(v.Log) != 3 {
		t.Fatalf("Expected 3 retained entries, got %d", len(v.Log))
	}
	// Most recent three, oldest first
	for i, want := range []string{"msg-3", "msg-4", "msg-5"} {
		if v.Log[i].Message != want {
			t.Errorf("Entry %d: expected %q, got %q", i, want, v.Log[i].Message)
		}
		if v.Log[i].Index != uint64(i+3) {
			t.Errorf("Entry %d: expected index %d, got %d", i, i+3, v.Log[i].Index)
		}
	}
}

func TestLog_DisabledByDefault(t *testing.T) {
	r, _ := newTestRegistry()
	id := r.Register(boundedOpts("t.go:5"))

	r.RecordSend(id, 4, "ignored")

	v, _ := r.View(id)
	if v.Log != nil {
		t.Errorf("Expected nil log when logging disabled, got %d entries", len(v.Log))
	}
}

func TestLog_Timestamps(t *testing.T) {
	mock := clock.NewMock()
	r := New(mock, 10)

	opts := boundedOpts("t.go:6")
	opts.LogEnabled = true
	id := r.Register(opts)

	mock.Add(100 * time.Nanosecond)
	r.RecordSend(id, 4, "a")
	mock.Add(250 * time.Nanosecond)
	r.RecordSend(id, 4, "b")

	v, _ := r.View(id)
	if v.Log[0].Timestamp != 100 {
		t.Errorf("Expected first timestamp 100ns, got %d", v.Log[0].Timestamp)
	}
	if v.Log[1].Timestamp != 350 {
		t.Errorf("Expected second timestamp 350ns, got %d", v.Log[1].Timestamp)
	}
}

func TestSnapshot_RegistrationOrder(t *testing.T) {
	r, _ := newTestRegistry()

	first := r.Register(boundedOpts("t.go:7"))
	second := r.Register(RegisterOptions{Kind: KindStream, Capacity: -1, Source: "t.go:8"})

	views := r.Snapshot()
	if len(views) != 2 {
		t.Fatalf("Expected 2 views, got %d", len(views))
	}
	if views[0].ID != first || views[1].ID != second {
		t.Errorf("Snapshot out of registration order: %d, %d", views[0].ID, views[1].ID)
	}
	if !views[1].IsStream() {
		t.Error("Expected second view to be a stream")
	}
}

func TestElapsedNS_MockClock(t *testing.T) {
	r, mock := newTestRegistry()

	if r.ElapsedNS() != 0 {
		t.Errorf("Expected 0 elapsed at start, got %d", r.ElapsedNS())
	}
	mock.Add(3 * time.Second)
	if r.ElapsedNS() != 3_000_000_000 {
		t.Errorf("Expected 3s elapsed, got %d", r.ElapsedNS())
	}
}

func TestKindRender(t *testing.T) {
	cases := []struct {
		kind     Kind
		capacity int
		want     string
	}{
		{KindBounded, 10, "bounded[10]"},
		{KindUnbounded, -1, "unbounded"},
		{KindOneshot, 1, "oneshot"},
		{KindStream, -1, "stream"},
	}
	for _, c := range cases {
		if got := c.kind.Render(c.capacity); got != c.want {
			t.Errorf("Render(%v, %d) = %q, want %q", c.kind, c.capacity, got, c.want)
		}
	}
}
