// Package chanscope instruments message-passing channels and pull-based
// streams with low-overhead runtime statistics.
//
// Wrapping a channel returns Sender and Receiver handles that count
// every send and receive while preserving the channel's blocking
// behavior:
//
//	tx, rx := chanscope.Chan(make(chan int, 8), chanscope.WithLabel("jobs"))
//	_ = tx.Send(ctx, 42)
//	v, _ := rx.Recv(ctx)
//
// Streams wrap an iterator and count yields:
//
//	for v := range chanscope.Stream(source, chanscope.WithLabel("events")) {
//		process(v)
//	}
//
// The first wrapped entity starts a snapshot server on 127.0.0.1:6770
// serving JSON statistics under /channels, /streams and /export, plus a
// /ws endpoint that pushes snapshots over WebSocket. A Guard prints a
// final report when the program exits:
//
//	g := chanscope.NewGuard()
//	defer g.Close()
//
// Configuration comes from CHANSCOPE_* environment variables or a
// chanscope.yaml file: CHANSCOPE_PORT moves the server,
// CHANSCOPE_DISABLED=true skips starting it, CHANSCOPE_LOG_LIMIT sizes
// the per-entity log rings. Building with the chanscope_off tag
// replaces all instrumentation with passthroughs and links none of the
// runtime machinery.
package chanscope
