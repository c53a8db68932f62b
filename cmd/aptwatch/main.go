package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/aptwatch/internal/app"
)

const usage = `usage: aptwatch [global flags] <command> [args]

commands:
  list    [-n N] [-json] [-pdf file]   list floor plans, optionally by bedroom count
  alert   NAME [NAME ...]              notify when any named floor plan is available
  serve   [-addr :8080]                expose the snapshot over HTTP
  version                              print build information

global flags:
`

// errUsage marks command-line mistakes; they exit with status 2.
var errUsage = errors.New("usage")

type invocation struct {
	cfg        app.Config
	configPath string
	envFiles   string

	command  string
	bedrooms []int
	jsonOut  bool
	pdfPath  string
	plans    []string
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := realMain(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// realMain returns the process exit code: 0 on success, 1 when the run
// failed, 2 for usage errors.
func realMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	inv, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := resolveConfig(&inv); err != nil {
		log.Error().Err(err).Msg("configuration")
		return 2
	}
	if inv.cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.With().Str("run_id", uuid.NewString()).Logger()

	if err := run(ctx, inv, stdout); err != nil {
		log.Error().Err(err).Str("command", inv.command).Msg("run failed")
		return 1
	}
	return 0
}

func run(ctx context.Context, inv invocation, stdout io.Writer) error {
	if inv.command == "version" {
		_, err := fmt.Fprintf(stdout, "aptwatch %s (commit %s, built %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return err
	}
	a, err := app.New(inv.cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	switch inv.command {
	case "list":
		return a.List(ctx, stdout, app.ListOptions{Bedrooms: inv.bedrooms, JSON: inv.jsonOut, PDFPath: inv.pdfPath})
	case "alert":
		_, err := a.Alert(ctx, stdout, inv.plans)
		return err
	case "serve":
		return a.Serve(ctx)
	}
	return fmt.Errorf("unknown command %q", inv.command)
}

// resolveConfig layers flags over env (after dotenv files) over the config
// file over built-in defaults.
func resolveConfig(inv *invocation) error {
	var files []string
	for _, p := range strings.Split(inv.envFiles, ",") {
		if s := strings.TrimSpace(p); s != "" {
			files = append(files, s)
		}
	}
	if err := app.LoadEnvFiles(files...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	app.ApplyEnvToConfig(&inv.cfg)
	if strings.TrimSpace(inv.configPath) != "" {
		fc, err := app.LoadConfigFile(inv.configPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", inv.configPath, err)
		}
		app.ApplyFileConfig(&inv.cfg, fc)
	}
	app.ApplyDefaults(&inv.cfg)
	return app.ValidateConfig(inv.cfg)
}

func parseArgs(args []string, stderr io.Writer) (invocation, error) {
	var inv invocation
	global := flag.NewFlagSet("aptwatch", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() {
		fmt.Fprint(stderr, usage)
		global.PrintDefaults()
	}
	global.StringVar(&inv.configPath, "config", os.Getenv("APTWATCH_CONFIG"), "Path to YAML or JSON config file")
	global.StringVar(&inv.envFiles, "env", ".env", "Comma-separated dotenv files to load; missing files are ignored")
	global.StringVar(&inv.cfg.PageURL, "url", "", "Floor plan page URL (env APTWATCH_URL)")
	global.StringVar(&inv.cfg.WebhookURL, "webhook", "", "Webhook URL for alerts (env DISCORD_WEBHOOK)")
	global.StringVar(&inv.cfg.UserAgent, "ua", "", "User-Agent for the page fetch")
	global.DurationVar(&inv.cfg.Timeout, "timeout", 0, "Per-request timeout (default 30s)")
	global.StringVar(&inv.cfg.CacheDir, "cache.dir", "", "Directory for the revalidating page cache; empty disables")
	global.DurationVar(&inv.cfg.CacheMaxAge, "cache.maxAge", 0, "Purge cached pages older than this; 0 disables")
	global.BoolVar(&inv.cfg.CacheClear, "cache.clear", false, "Clear the cache directory before the run")
	global.BoolVar(&inv.cfg.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	global.BoolVar(&inv.cfg.Verbose, "v", false, "Verbose logging")
	if err := global.Parse(args); err != nil {
		return inv, err
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return inv, fmt.Errorf("%w: missing command", errUsage)
	}
	inv.command, rest = rest[0], rest[1:]

	switch inv.command {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(stderr)
		fs.Var((*bedroomList)(&inv.bedrooms), "n", "Limit to number of bedrooms (0-2); repeat or comma-separate")
		fs.BoolVar(&inv.jsonOut, "json", false, "Print the snapshot as JSON")
		fs.StringVar(&inv.pdfPath, "pdf", "", "Also render the listing to this PDF file")
		// "-n 1 2 -json": bare counts may follow -n, with flags after them
		for args := rest; ; {
			if err := fs.Parse(args); err != nil {
				return inv, err
			}
			args = fs.Args()
			if len(args) == 0 {
				break
			}
			if err := (*bedroomList)(&inv.bedrooms).Set(args[0]); err != nil {
				return inv, err
			}
			args = args[1:]
		}
	case "alert":
		fs := flag.NewFlagSet("alert", flag.ContinueOnError)
		fs.SetOutput(stderr)
		if err := fs.Parse(rest); err != nil {
			return inv, err
		}
		for _, a := range fs.Args() {
			if s := strings.TrimSpace(a); s != "" {
				inv.plans = append(inv.plans, s)
			}
		}
		if len(inv.plans) == 0 {
			return inv, fmt.Errorf("%w: alert needs at least one floor plan name", errUsage)
		}
	case "serve":
		fs := flag.NewFlagSet("serve", flag.ContinueOnError)
		fs.SetOutput(stderr)
		fs.StringVar(&inv.cfg.ListenAddr, "addr", "", "Listen address (default :8080)")
		if err := fs.Parse(rest); err != nil {
			return inv, err
		}
	case "version":
	default:
		global.Usage()
		return inv, fmt.Errorf("%w: unknown command %q", errUsage, inv.command)
	}
	return inv, nil
}

// bedroomList is a repeatable -n flag accepting "1", "1,2".
type bedroomList []int

func (b *bedroomList) String() string {
	if b == nil {
		return ""
	}
	parts := make([]string, 0, len(*b))
	for _, n := range *b {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}

func (b *bedroomList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 2 {
			return fmt.Errorf("%w: invalid bedroom count %q (choose from 0, 1, 2)", errUsage, p)
		}
		*b = append(*b, n)
	}
	return nil
}
