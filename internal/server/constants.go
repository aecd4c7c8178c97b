package server

import "time"

// WebSocket configuration
const (
	WebSocketReadBuffer  = 1024
	WebSocketWriteBuffer = 1024
)

// Timeouts. Responses are small JSON documents, so these are tight; the
// WebSocket endpoint hijacks its connection and is not bound by them.
const (
	ReadHeaderTimeout = 5 * time.Second
	WriteTimeout      = 10 * time.Second
	IdleTimeout       = 60 * time.Second
	ShutdownTimeout   = 5 * time.Second
)

// Request limits
const (
	MaxHeaderBytes = 1 << 20 // 1MB
)
