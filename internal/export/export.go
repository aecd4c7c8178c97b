// Package export turns registry snapshots into the JSON documents served
// by the snapshot server and rendered by the guard. Field names here are
// the wire format; changing one breaks external consumers.
package export

import (
	"sort"
	"time"

	"github.com/zulfikawr/chanscope/internal/metrics"
	"github.com/zulfikawr/chanscope/internal/registry"
)

// Channel describes one instrumented channel entity. Capacity and Queued
// are pointers so kinds without them serialize as null rather than zero.
type Channel struct {
	ID          uint64              `json:"id"`
	Label       string              `json:"label"`
	Source      string              `json:"source"`
	Kind        string              `json:"kind"`
	Capacity    *int                `json:"capacity"`
	State       string              `json:"state"`
	Sent        uint64              `json:"sent"`
	SentBytes   uint64              `json:"sent_bytes_estimate"`
	Received    uint64              `json:"received"`
	RecvBytes   uint64              `json:"received_bytes_estimate"`
	Queued      *uint64             `json:"queued"`
	QueuedBytes *uint64             `json:"queued_bytes"`
	TypeName    string              `json:"type_name"`
	TypeSize    int                 `json:"type_size"`
	CreatedAt   uint64              `json:"created_at"`
	ClosedAt    *uint64             `json:"closed_at"`
	Log         []registry.LogEntry `json:"log"`
}

// Stream describes one instrumented stream entity.
type Stream struct {
	ID        uint64              `json:"id"`
	Label     string              `json:"label"`
	Source    string              `json:"source"`
	Kind      string              `json:"kind"`
	State     string              `json:"state"`
	Yielded   uint64              `json:"yielded"`
	SentBytes uint64              `json:"yielded_bytes_estimate"`
	TypeName  string              `json:"type_name"`
	TypeSize  int                 `json:"type_size"`
	CreatedAt uint64              `json:"created_at"`
	ClosedAt  *uint64             `json:"closed_at"`
	Log       []registry.LogEntry `json:"log"`
}

// ChannelsDocument is the /channels response body.
type ChannelsDocument struct {
	Runtime  uint64    `json:"runtime"`
	Channels []Channel `json:"channels"`
}

// StreamsDocument is the /streams response body.
type StreamsDocument struct {
	Runtime uint64   `json:"runtime"`
	Streams []Stream `json:"streams"`
}

// CombinedDocument is the /export response body.
type CombinedDocument struct {
	Runtime  uint64    `json:"runtime"`
	Channels []Channel `json:"channels"`
	Streams  []Stream  `json:"streams"`
}

// LogsDocument is the per-entity logs response body, newest entry first.
type LogsDocument struct {
	ID   uint64              `json:"id"`
	Logs []registry.LogEntry `json:"logs"`
}

// Channels builds the channels-only document from a snapshot.
func Channels(views []registry.EntityView, runtime uint64) ChannelsDocument {
	defer observeBuild(time.Now())
	return ChannelsDocument{Runtime: runtime, Channels: buildChannels(views)}
}

// Streams builds the streams-only document from a snapshot.
func Streams(views []registry.EntityView, runtime uint64) StreamsDocument {
	defer observeBuild(time.Now())
	return StreamsDocument{Runtime: runtime, Streams: buildStreams(views)}
}

// Combined builds the full document from a snapshot.
func Combined(views []registry.EntityView, runtime uint64) CombinedDocument {
	defer observeBuild(time.Now())
	return CombinedDocument{
		Runtime:  runtime,
		Channels: buildChannels(views),
		Streams:  buildStreams(views),
	}
}

// Logs builds the per-entity log document. Entries come back newest
// first, which is what polling viewers want to show.
func Logs(v registry.EntityView) LogsDocument {
	logs := make([]registry.LogEntry, len(v.Log))
	for i, e := range v.Log {
		logs[len(v.Log)-1-i] = e
	}
	return LogsDocument{ID: v.ID, Logs: logs}
}

func observeBuild(start time.Time) {
	metrics.ExportBuildDuration.Observe(time.Since(start).Seconds())
}

func buildChannels(views []registry.EntityView) []Channel {
	channels := make([]Channel, 0, len(views))
	for _, v := range sorted(views) {
		if v.IsStream() {
			continue
		}
		c := Channel{
			ID:        v.ID,
			Label:     v.Label,
			Source:    v.Source,
			Kind:      v.Kind.Render(v.Capacity),
			State:     v.State,
			Sent:      v.Sent,
			SentBytes: v.SentBytes,
			Received:  v.Received,
			RecvBytes: v.RecvBytes,
			TypeName:  v.TypeName,
			TypeSize:  v.TypeSize,
			CreatedAt: v.CreatedNS,
			ClosedAt:  closedAt(v),
			Log:       v.Log,
		}
		if v.Capacity >= 0 {
			capacity := v.Capacity
			c.Capacity = &capacity
		}
		if v.HasQueue() {
			queued := v.Queued()
			queuedBytes := v.QueuedBytes()
			c.Queued = &queued
			c.QueuedBytes = &queuedBytes
		}
		channels = append(channels, c)
	}
	return channels
}

func buildStreams(views []registry.EntityView) []Stream {
	streams := make([]Stream, 0, len(views))
	for _, v := range sorted(views) {
		if !v.IsStream() {
			continue
		}
		streams = append(streams, Stream{
			ID:        v.ID,
			Label:     v.Label,
			Source:    v.Source,
			Kind:      v.Kind.String(),
			State:     v.State,
			Yielded:   v.Yielded,
			SentBytes: v.SentBytes,
			TypeName:  v.TypeName,
			TypeSize:  v.TypeSize,
			CreatedAt: v.CreatedNS,
			ClosedAt:  closedAt(v),
			Log:       v.Log,
		})
	}
	return streams
}

func closedAt(v registry.EntityView) *uint64 {
	if v.State != registry.StateClosed {
		return nil
	}
	ns := v.ClosedNS
	return &ns
}

// sorted orders views for display: custom-labeled entities first,
// alphabetically, then auto-labeled ones by call site and registration
// iteration.
func sorted(views []registry.EntityView) []registry.EntityView {
	out := make([]registry.EntityView, len(views))
	copy(out, views)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CustomLabel != b.CustomLabel {
			return a.CustomLabel
		}
		if a.CustomLabel {
			if a.Label != b.Label {
				return a.Label < b.Label
			}
			return a.Iter < b.Iter
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Iter < b.Iter
	})
	return out
}
