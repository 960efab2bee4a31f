package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/muurk/rffetap/internal/render"
	"github.com/muurk/rffetap/internal/rffe"
)

func testAnnotation(start, end uint64, kind rffe.Kind) rffe.Annotation {
	return rffe.Annotation{Start: start, End: end, Kind: kind}
}

func TestHubHistory(t *testing.T) {
	h := newHub()

	h.publish(render.Event{Start: 0, End: 4, Kind: "SSC"})
	h.publish(render.Event{Start: 4, End: 12, Kind: "SA"})

	if h.buffered() != 2 {
		t.Fatalf("buffered = %d, want 2", h.buffered())
	}

	snap := h.snapshot()
	if len(snap) != 2 || snap[0].Kind != "SSC" || snap[1].Kind != "SA" {
		t.Errorf("snapshot = %+v", snap)
	}

	// The snapshot is a copy; mutating it must not touch history.
	snap[0].Kind = "mutated"
	if h.snapshot()[0].Kind != "SSC" {
		t.Error("snapshot aliases hub history")
	}
}

func TestHubPublishNeverBlocks(t *testing.T) {
	h := newHub()
	// No run loop: the broadcast channel fills and publish must still
	// return, retaining everything in history.
	for i := 0; i < 1000; i++ {
		h.publish(render.Event{Start: uint64(i)})
	}
	if h.buffered() != 1000 {
		t.Errorf("buffered = %d, want 1000", h.buffered())
	}
}

func TestServerAnnotateAttachesWallClock(t *testing.T) {
	s := New(&Config{SampleRate: 1_000_000})
	s.Annotate(testAnnotation(1_000_000, 2_000_000, rffe.KindSSC))

	snap := s.hub.snapshot()
	if len(snap) != 1 {
		t.Fatalf("history = %d events, want 1", len(snap))
	}
	if snap[0].StartTime == nil || *snap[0].StartTime != 1.0 {
		t.Errorf("start time = %v, want 1.0s", snap[0].StartTime)
	}
}

// dialStream spins up the handler stack and opens one stream client.
func dialStream(t *testing.T, s *Server, ctx context.Context) *websocket.Conn {
	t.Helper()

	go s.hub.run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/stream", s.handleStream)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStreamReplaysTranscript(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(&Config{Listen: ":0", Source: "bench.csv"})
	s.Annotate(testAnnotation(0, 6, rffe.KindSSC))
	s.Annotate(testAnnotation(7, 22, rffe.KindSlaveAddress))

	conn := dialStream(t, s, ctx)

	var got []render.Event
	for i := 0; i < 2; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var e render.Event
		if err := conn.ReadJSON(&e); err != nil {
			t.Fatalf("read event %d: %v", i, err)
		}
		got = append(got, e)
	}

	if got[0].Kind != "SSC" || got[1].Kind != "SA" {
		t.Errorf("replayed kinds = %q, %q, want SSC, SA", got[0].Kind, got[1].Kind)
	}
	if got[1].Start != 7 || got[1].End != 22 {
		t.Errorf("replayed interval = %d..%d, want 7..22", got[1].Start, got[1].End)
	}
}

func TestStreamDeliversLiveEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(&Config{Listen: ":0"})
	conn := dialStream(t, s, ctx)

	// Published after the dial: the event reaches the client either in
	// its replay or on the live feed, but exactly once.
	s.Annotate(testAnnotation(0, 6, rffe.KindSSC))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var e render.Event
	if err := conn.ReadJSON(&e); err != nil {
		t.Fatalf("read live event: %v", err)
	}
	if e.Kind != "SSC" {
		t.Errorf("live kind = %q, want SSC", e.Kind)
	}
}

func TestInfoEndpoint(t *testing.T) {
	s := New(&Config{Listen: ":0", Source: "bench.csv", SampleRate: 24_000_000})
	s.Annotate(testAnnotation(0, 6, rffe.KindSSC))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var doc info
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("info body: %v", err)
	}
	if doc.Service != "rffetap" || doc.Source != "bench.csv" {
		t.Errorf("info = %+v", doc)
	}
	if doc.Buffered != 1 || doc.StreamPath != "/stream" {
		t.Errorf("info = %+v", doc)
	}

	rec = httptest.NewRecorder()
	s.handleInfo(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}
