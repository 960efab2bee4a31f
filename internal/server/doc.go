// Package server streams decoded annotations over WebSocket.
//
// The server doubles as a decoder sink: annotations fed to it are kept
// in an in-memory transcript and broadcast as JSON to every connected
// client. A client that connects after the decode finished receives the
// whole transcript as a replay; a client that connects mid-decode gets
// the history so far followed by the live feed, stitched together by
// sequence number so nothing is duplicated or lost.
//
// # Endpoints
//
//	GET /        service description (JSON)
//	GET /stream  WebSocket annotation stream
//
// Each stream message is one render.Event object, matching the
// `decode --output jsonl` line format.
//
// # Slow clients
//
// Every client has a bounded send queue. When a client cannot keep up
// its live events are dropped (and counted); the transcript itself is
// never trimmed, so reconnecting recovers the full stream.
package server
