package registry

// EntityView is a point-in-time copy of one entity. Counters for an
// entity are read individually, so a view taken under traffic can lag a
// little, but it never goes backwards and derived values are clamped.
type EntityView struct {
	ID          uint64
	Kind        Kind
	Capacity    int
	Label       string
	CustomLabel bool
	Source      string
	Iter        int
	TypeName    string
	TypeSize    int
	State       string
	Sent        uint64
	Received    uint64
	Yielded     uint64
	SentBytes   uint64
	RecvBytes   uint64
	CreatedNS   uint64
	ClosedNS    uint64
	Log         []LogEntry
}

// IsStream reports whether the view describes a stream entity.
func (v EntityView) IsStream() bool {
	return v.Kind == KindStream
}

// HasQueue reports whether queue depth is defined for this entity. The
// unbounded kind has no capacity to queue against and streams do not
// buffer at all.
func (v EntityView) HasQueue() bool {
	return v.Kind == KindBounded || v.Kind == KindOneshot
}

// Queued returns the in-flight message count, clamped so a racing
// receive can never produce an underflow.
func (v EntityView) Queued() uint64 {
	if v.Sent < v.Received {
		return 0
	}
	return v.Sent - v.Received
}

// QueuedBytes estimates the memory held by queued messages.
func (v EntityView) QueuedBytes() uint64 {
	return v.Queued() * uint64(v.TypeSize)
}

// Snapshot copies every entity in registration order. The copy is
// weakly consistent: entities registered or updated while the snapshot
// is being taken may be partially reflected, but each individual view
// is well formed.
func (r *Registry) Snapshot() []EntityView {
	r.mu.RLock()
	ids := make([]uint64, len(r.order))
	copy(ids, r.order)
	views := make([]EntityView, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.entities[id]; ok {
			views = append(views, r.view(e))
		}
	}
	r.mu.RUnlock()
	return views
}

// View returns a single entity's snapshot, if it exists.
func (r *Registry) View(id uint64) (EntityView, bool) {
	r.mu.RLock()
	e, ok := r.entities[id]
	r.mu.RUnlock()
	if !ok {
		return EntityView{}, false
	}
	return r.view(e), true
}

func (r *Registry) view(e *entity) EntityView {
	v := EntityView{
		ID:          e.id,
		Kind:        e.kind,
		Capacity:    e.capacity,
		Label:       e.label,
		CustomLabel: e.customLabel,
		Source:      e.source,
		Iter:        e.iter,
		TypeName:    e.typeName,
		TypeSize:    e.typeSize,
		CreatedNS:   e.createdNS,
		// Read received before sent so the difference cannot dip negative
		// from a receive that lands between the two loads.
		Received: e.received.Load(),
		Sent:     e.sent.Load(),
		Yielded:  e.yielded.Load(),
	}
	v.SentBytes = e.sentBytes.Load()
	v.RecvBytes = e.recvBytes.Load()

	e.mu.Lock()
	if e.closed {
		v.State = StateClosed
		v.ClosedNS = e.closedNS
	} else {
		v.State = StateActive
	}
	if e.log != nil {
		v.Log = e.log.inOrder()
	}
	e.mu.Unlock()
	return v
}
