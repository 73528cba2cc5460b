package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockigd/pkg/config"
	"github.com/getmockd/mockigd/pkg/engine"
	"github.com/getmockd/mockigd/pkg/logging"
	"github.com/getmockd/mockigd/pkg/requestlog"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 10 * time.Second

// serveFlags holds the values bound to the serve command's flags.
type serveFlags struct {
	configFile   string
	host         string
	port         int
	ssdp         bool
	ssdpPort     int
	noMulticast  bool
	logLevel     string
	logFormat    string
	externalIP   string
	noDefaults   bool
	stream       bool
	streamFormat string

	// ready is called once the server is listening. Tests use it to drive
	// the server and then cancel.
	ready func(*engine.Server)
}

func newServeCmd() *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the mock gateway (foreground)",
		Long: `Start the mock gateway and serve until interrupted.

Every supported action is answered with a plausible default unless
--no-defaults is given. The request log is available at /__mockigd/requests
and Prometheus metrics at /metrics.`,
		Example: `  # Start on a random port with defaults
  mockigd serve

  # Fixed port, answer discovery, report a specific external address
  mockigd serve --port 5000 --ssdp --external-ip 203.0.113.1

  # Print every request as it is handled
  mockigd serve --stream --stream-format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.configuration(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	bindServeFlags(cmd, f)
	return cmd
}

func bindServeFlags(cmd *cobra.Command, f *serveFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.configFile, "config", "c", "", "Path to a YAML or JSON configuration file")
	flags.StringVar(&f.host, "host", config.DefaultHost, "Address to bind the HTTP server to")
	flags.IntVarP(&f.port, "port", "p", 0, "HTTP port (0 = random)")
	flags.BoolVar(&f.ssdp, "ssdp", false, "Answer SSDP discovery searches")
	flags.IntVar(&f.ssdpPort, "ssdp-port", config.DefaultSSDPPort, "SSDP UDP port")
	flags.BoolVar(&f.noMulticast, "no-multicast", false, "Do not join the SSDP multicast group")
	flags.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
	flags.StringVar(&f.externalIP, "external-ip", "", "Address reported by GetExternalIPAddress")
	flags.BoolVar(&f.noDefaults, "no-defaults", false, "Do not register the default mocks")
	flags.BoolVar(&f.stream, "stream", false, "Print request log entries as they happen")
	flags.StringVar(&f.streamFormat, "stream-format", formatJSON, "Stream output format (json, yaml)")
}

// configuration loads the file and environment, then applies the flags the
// user set explicitly.
func (f *serveFlags) configuration(cmd *cobra.Command) (*config.ServerConfiguration, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("host") {
		cfg.Host = f.host
	}
	if changed("port") {
		cfg.HTTPPort = f.port
	}
	if changed("ssdp") {
		cfg.SSDPEnabled = f.ssdp
	}
	if changed("ssdp-port") {
		cfg.SSDPPort = f.ssdpPort
	}
	if changed("no-multicast") {
		cfg.SSDPMulticast = !f.noMulticast
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if err := validateFormat(f.streamFormat); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, cfg *config.ServerConfiguration, f *serveFlags, out, errOut io.Writer) error {
	logCfg := cfg.Logging()
	logCfg.Output = errOut
	log := logging.New(logCfg)

	srv, err := engine.NewServer(cfg, engine.WithLogger(log))
	if err != nil {
		return err
	}

	if !f.noDefaults {
		if _, err := srv.MockDefaults(f.externalIP); err != nil {
			return err
		}
	}

	if err := srv.Start(ctx); err != nil {
		return err
	}

	printBanner(out, srv)

	var streamDone chan struct{}
	if f.stream {
		sub, unsubscribe, err := srv.Subscribe()
		if err != nil {
			log.Warn("request streaming unavailable", "error", err)
		} else {
			defer unsubscribe()
			streamDone = make(chan struct{})
			go func() {
				defer close(streamDone)
				streamEntries(ctx, sub, out, f.streamFormat, log)
			}()
		}
	}

	if f.ready != nil {
		f.ready(srv)
	}

	<-ctx.Done()
	fmt.Fprintln(out, "\nShutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = srv.Stop(shutdownCtx)
	if streamDone != nil {
		<-streamDone
	}
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func printBanner(w io.Writer, srv *engine.Server) {
	fmt.Fprintf(w, "mockigd %s listening on %s\n", Version, srv.URL())
	fmt.Fprintf(w, "  description: %s\n", srv.DescriptionURL())
	fmt.Fprintf(w, "  control:     %s\n", srv.ControlURL())
	fmt.Fprintf(w, "  requests:    %s%s\n", srv.URL(), engine.PathAdminRequests)
	fmt.Fprintf(w, "  metrics:     %s%s\n", srv.URL(), engine.PathMetrics)
	if addr := srv.SSDPAddr(); addr != nil {
		fmt.Fprintf(w, "  discovery:   udp://%s\n", addr)
	}
	fmt.Fprintf(w, "  udn:         %s\n", srv.UDN())
}

// streamEntries writes entries from sub until ctx is done.
func streamEntries(ctx context.Context, sub requestlog.Subscriber, w io.Writer, format string, log *slog.Logger) {
	enc := newEncoder(w, format)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sub:
			if !ok {
				return
			}
			if err := enc.Encode(e); err != nil && !errors.Is(err, io.ErrClosedPipe) {
				log.Warn("failed to write request entry", "error", err)
			}
		}
	}
}
