package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/rffetap/internal/announce"
	"github.com/muurk/rffetap/internal/capture"
	"github.com/muurk/rffetap/internal/config"
	"github.com/muurk/rffetap/internal/logging"
	"github.com/muurk/rffetap/internal/render"
	"github.com/muurk/rffetap/internal/rffe"
	"github.com/muurk/rffetap/internal/server"
	"github.com/muurk/rffetap/internal/ui"
)

// Decode and serve command flags
var (
	captureFormat string
	outputFormat  string
	addressFormat string
	clockBit      uint
	dataBit       uint
	sampleRate    uint64

	listenAddr    string
	noAnnounce    bool
	instanceName  string
	browseTimeout int
)

func init() {
	for _, cmd := range []*cobra.Command{decodeCmd, serveCmd, viewCmd} {
		cmd.Flags().StringVar(&captureFormat, "capture-format", "", "Capture layout: auto, csv, raw")
		cmd.Flags().StringVar(&addressFormat, "address-format", "", "Slave address display: shifted, unshifted")
		cmd.Flags().UintVar(&clockBit, "clock-bit", 0, "Clock channel bit position in raw captures")
		cmd.Flags().UintVar(&dataBit, "data-bit", 1, "Data channel bit position in raw captures")
		cmd.Flags().Uint64Var(&sampleRate, "samplerate", 0, "Capture sampling rate in Hz (adds wall-clock columns)")
	}
	decodeCmd.Flags().StringVar(&outputFormat, "output", "", "Output format: text, jsonl, pretty")

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address for the annotation stream")
	serveCmd.Flags().BoolVar(&noAnnounce, "no-announce", false, "Skip the mDNS announcement")
	serveCmd.Flags().StringVar(&instanceName, "instance", "", "mDNS instance name (default: hostname)")

	discoverCmd.Flags().IntVar(&browseTimeout, "timeout", 5, "Discovery timeout in seconds")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(discoverCmd)
}

// decodeSettings are the effective options after merging the config
// file with explicit flags; flags win.
type decodeSettings struct {
	captureOpts capture.Options
	decodeOpts  rffe.Options
	output      string
	listen      string
	announce    bool
	instance    string
}

func resolveSettings(cmd *cobra.Command) (decodeSettings, error) {
	cfg, err := config.Load()
	if err != nil {
		return decodeSettings{}, fmt.Errorf("load config: %w", err)
	}

	s := decodeSettings{
		captureOpts: capture.Options{
			ClockBit: cfg.ProbeBit("sclk", cfg.Decode.ClockBit),
			DataBit:  cfg.ProbeBit("sdata", cfg.Decode.DataBit),
		},
		decodeOpts: rffe.Options{
			AddressFormat: rffe.ParseAddressFormat(cfg.Decode.AddressFormat),
			SampleRate:    cfg.Decode.SampleRate,
		},
		output:   cfg.Decode.Output,
		listen:   cfg.Serve.Listen,
		announce: cfg.Serve.Announce,
		instance: cfg.Serve.Instance,
	}

	format := cfg.Decode.CaptureFormat
	if cmd.Flags().Changed("capture-format") {
		format = captureFormat
	}
	if s.captureOpts.Format, err = capture.ParseFormat(format); err != nil {
		return decodeSettings{}, err
	}

	if cmd.Flags().Changed("address-format") {
		s.decodeOpts.AddressFormat = rffe.ParseAddressFormat(addressFormat)
	}
	if cmd.Flags().Changed("clock-bit") {
		s.captureOpts.ClockBit = clockBit
	}
	if cmd.Flags().Changed("data-bit") {
		s.captureOpts.DataBit = dataBit
	}
	if cmd.Flags().Changed("samplerate") {
		s.decodeOpts.SampleRate = sampleRate
	}
	if cmd.Flags().Changed("output") {
		s.output = outputFormat
	}
	if cmd.Flags().Changed("listen") {
		s.listen = listenAddr
	}
	if noAnnounce {
		s.announce = false
	}
	if cmd.Flags().Changed("instance") {
		s.instance = instanceName
	}

	return s, nil
}

// runCapture decodes one capture file into the given sink and logs the
// session outcome.
func runCapture(path string, s decodeSettings, sink rffe.Sink) error {
	src, err := capture.Load(path, s.captureOpts)
	if err != nil {
		return err
	}

	annotations, warnings := 0, 0
	counting := rffe.SinkFunc(func(a rffe.Annotation) {
		annotations++
		if a.Kind.Row() == rffe.RowWarnings {
			warnings++
		}
		sink.Annotate(a)
	})

	dec, err := rffe.New(src, counting, s.decodeOpts)
	if err != nil {
		return err
	}

	start := time.Now()
	dec.Run()
	logging.LogDecodeSession(path, src.Len(), annotations, warnings, time.Since(start))
	return nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode <capture>",
	Short: "Decode a capture file to stdout",
	Long: `Decode a logic capture and print one annotation per line.

The capture layout is detected from the file extension (.csv for textual
captures, anything else for raw packed bytes) unless --capture-format
forces one. Output defaults to the plain text transcript; use
--output jsonl for machine consumption or --output pretty for a styled
terminal transcript.`,
	Example: `  # Decode a CSV capture
  rffetap decode bus.csv

  # Raw dump with the clock on bit 2 and data on bit 5
  rffetap decode bus.bin --clock-bit 2 --data-bit 5

  # JSON lines with wall-clock columns
  rffetap decode bus.csv --output jsonl --samplerate 24000000`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	renderer, err := render.New(s.output, os.Stdout, s.decodeOpts.SampleRate)
	if err != nil {
		return err
	}

	sink := &render.Sink{R: renderer}
	if err := runCapture(args[0], s, sink); err != nil {
		return err
	}
	if sink.Err != nil {
		return fmt.Errorf("write output: %w", sink.Err)
	}
	return nil
}

var viewCmd = &cobra.Command{
	Use:   "view <capture>",
	Short: "Browse a decoded capture interactively",
	Long: `Decode a capture and open the scrollable transcript viewer.

The viewer color-codes command frames, bus parks, and warnings, and can
filter the transcript down to the warning row.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	var collector rffe.Collector
	if err := runCapture(args[0], s, &collector); err != nil {
		return err
	}

	return ui.Run(collector.Annotations, s.decodeOpts.SampleRate, args[0])
}

var serveCmd = &cobra.Command{
	Use:   "serve <capture>",
	Short: "Stream decoded annotations over WebSocket",
	Long: `Decode a capture and serve the annotations to WebSocket clients.

Clients that connect at any point receive the full transcript: the
decoded history is replayed first, then live events follow. Unless
--no-announce is given the stream is published over mDNS as a
_rffetap._tcp service so viewers on the local network can find it.`,
	Example: `  # Serve on the configured address (default :8190)
  rffetap serve bus.csv

  # Explicit port, no mDNS
  rffetap serve bus.csv --listen :9000 --no-announce`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	srv := server.New(&server.Config{
		Listen:     s.listen,
		SampleRate: s.decodeOpts.SampleRate,
		Source:     args[0],
	})
	if err := srv.Listen(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.announce {
		ann, err := announce.Register(s.instance, srv.Port(), args[0])
		if err != nil {
			logging.Warn("mDNS announcement failed", zap.Error(err))
		} else {
			defer ann.Shutdown()
		}
	}

	decodeErr := make(chan error, 1)
	go func() {
		decodeErr <- runCapture(args[0], s, srv)
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Streaming annotations on %s (ctrl-c to stop)\n", srv.Addr())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ctx)
	}()

	if err := <-decodeErr; err != nil {
		stop()
		<-serveErr
		return err
	}
	return <-serveErr
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find annotation streams on the local network",
	Long:  `Browse for _rffetap._tcp services and list their stream endpoints.`,
	RunE:  runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	fmt.Fprintf(cmd.OutOrStdout(), "Browsing for annotation streams (timeout: %ds)...\n\n", browseTimeout)

	streams, err := announce.Browse(cmd.Context(), time.Duration(browseTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(streams) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No streams found.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Found %d stream(s):\n\n", len(streams))
	for i, st := range streams {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, st.Instance)
		fmt.Fprintf(cmd.OutOrStdout(), "   Endpoint: %s\n", st.URL())
		if st.Source != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   Source:   %s\n", st.Source)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
