package announce

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/rffetap/internal/logging"
)

const (
	// ServiceType is the mDNS service type for rffetap annotation streams
	ServiceType = "_rffetap._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultBrowseTimeout is the default timeout for stream discovery
	DefaultBrowseTimeout = 5 * time.Second
)

// Announcer keeps one registered mDNS service alive until Shutdown.
type Announcer struct {
	server *zeroconf.Server
}

// Register publishes an annotation stream on the local network. instance
// falls back to the hostname; source is carried in the TXT record so
// viewers can show what capture the stream decodes.
func Register(instance string, port int, source string) (*Announcer, error) {
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			instance = "rffetap"
		} else {
			instance = "rffetap-" + strings.Split(hostname, ".")[0]
		}
	}

	txt := []string{"path=/stream"}
	if source != "" {
		txt = append(txt, "source="+source)
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Stream announced over mDNS",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)

	return &Announcer{server: server}, nil
}

// Shutdown withdraws the mDNS registration.
func (a *Announcer) Shutdown() {
	if a.server != nil {
		a.server.Shutdown()
	}
}

// Stream is one discovered annotation stream.
type Stream struct {
	Instance string
	Host     string
	Port     int
	Addrs    []string
	Source   string
}

// URL returns the stream's WebSocket endpoint, preferring a resolved
// IPv4 address over the mDNS hostname.
func (s Stream) URL() string {
	host := strings.TrimSuffix(s.Host, ".")
	if len(s.Addrs) > 0 {
		host = s.Addrs[0]
	}
	return fmt.Sprintf("ws://%s:%d/stream", host, s.Port)
}

// Browse discovers annotation streams on the local network, collecting
// answers until the timeout elapses.
func Browse(ctx context.Context, timeout time.Duration) ([]Stream, error) {
	if timeout <= 0 {
		timeout = DefaultBrowseTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	streams := make([]Stream, 0)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for entry := range entries {
			streams = append(streams, parseEntry(entry))
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done

	return streams, nil
}

func parseEntry(entry *zeroconf.ServiceEntry) Stream {
	s := Stream{
		Instance: entry.Instance,
		Host:     entry.HostName,
		Port:     entry.Port,
	}
	for _, ip := range entry.AddrIPv4 {
		s.Addrs = append(s.Addrs, ip.String())
	}
	for _, txt := range entry.Text {
		if v, ok := strings.CutPrefix(txt, "source="); ok {
			s.Source = v
		}
	}
	return s
}
