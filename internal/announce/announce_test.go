package announce

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestParseEntry(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		HostName: "bench.local.",
		Port:     8190,
		Text:     []string{"path=/stream", "source=bus.csv"},
		AddrIPv4: []net.IP{net.ParseIP("192.168.1.40")},
	}
	entry.Instance = "rffetap-bench"

	s := parseEntry(entry)
	if s.Instance != "rffetap-bench" {
		t.Errorf("instance = %q", s.Instance)
	}
	if s.Source != "bus.csv" {
		t.Errorf("source = %q, want bus.csv", s.Source)
	}
	if len(s.Addrs) != 1 || s.Addrs[0] != "192.168.1.40" {
		t.Errorf("addrs = %v", s.Addrs)
	}
	if got := s.URL(); got != "ws://192.168.1.40:8190/stream" {
		t.Errorf("URL() = %q", got)
	}
}

func TestStreamURLFallsBackToHost(t *testing.T) {
	s := Stream{Host: "bench.local.", Port: 9000}
	if got := s.URL(); got != "ws://bench.local:9000/stream" {
		t.Errorf("URL() = %q", got)
	}
}
