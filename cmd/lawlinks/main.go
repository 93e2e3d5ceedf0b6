// Command lawlinks extracts the links of a converted reference PDF,
// resolves them against a transcript, or runs the full pipeline for one
// queue event.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/iurcrowd/lawlinks"
	"github.com/iurcrowd/lawlinks/internal/config"
	"github.com/iurcrowd/lawlinks/internal/convert"
	"github.com/iurcrowd/lawlinks/internal/logging"
	"github.com/iurcrowd/lawlinks/internal/pipeline"
	"github.com/iurcrowd/lawlinks/internal/store"
)

const usageText = `Usage: lawlinks <command> [flags] <args>

Commands:
  extract  <pdf>                               print the links of a pdf as JSON
  resolve  -transcript <file> <pdf>            locate the links of a pdf in a transcript
  handle   -config <yaml> -arn <arn> <event>   run the pipeline for one queue event

Run "lawlinks <command> -h" for the flags of a command.
`

// usageError marks errors caused by invalid invocation
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return 2
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "extract":
		err = runExtract(ctx, rest, stdout, stderr)
	case "resolve":
		err = runResolve(ctx, rest, stdout, stderr)
	case "handle":
		err = runHandle(ctx, rest, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usageText)
		return 0
	default:
		fmt.Fprintf(stderr, "lawlinks: unknown command %q\n\n%s", cmd, usageText)
		return 2
	}

	var ue usageError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "lawlinks %s: %v\n", cmd, err)
		return 2
	default:
		fmt.Fprintf(stderr, "lawlinks %s: %v\n", cmd, err)
		return 1
	}
}

// commonFlags are shared by extract and resolve
type commonFlags struct {
	concurrency      int
	normalizeTargets bool
	logLevel         string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&c.concurrency, "concurrency", 1, "Pages decoded in parallel")
	fs.BoolVar(&c.normalizeTargets, "normalize-targets", false, "Convert link target hosts to ASCII")
	fs.StringVar(&c.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

func (c *commonFlags) extractor(path string, stderr io.Writer) (*lawlinks.Extractor, error) {
	logger, err := logging.NewWithWriter(logging.Config{Level: c.logLevel}, stderr)
	if err != nil {
		return nil, usageError{err}
	}
	ext := lawlinks.Open(path).Concurrency(c.concurrency).Logger(logger)
	if c.normalizeTargets {
		ext = ext.NormalizeTargets()
	}
	return ext, nil
}

func newFlagSet(name, args string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: lawlinks %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses args and requires exactly one positional argument
func parse(fs *flag.FlagSet, args []string, what string) (string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", err
		}
		return "", usageError{err}
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return "", usageError{fmt.Errorf("missing %s", what)}
	}
	return fs.Arg(0), nil
}

func runExtract(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	fs := newFlagSet("extract", "<pdf>", stderr)
	common.register(fs)

	path, err := parse(fs, args, "pdf path")
	if err != nil {
		return err
	}

	ext, err := common.extractor(path, stderr)
	if err != nil {
		return err
	}
	links, err := ext.Links(ctx)
	if err != nil {
		return err
	}
	return emitJSON(stdout, links)
}

func runResolve(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		common          commonFlags
		transcriptPath  string
		asJSON          bool
		caseInsensitive bool
	)
	fs := newFlagSet("resolve", "-transcript <file> <pdf>", stderr)
	common.register(fs)
	fs.StringVar(&transcriptPath, "transcript", "", "Transcript to resolve the links against (required)")
	fs.BoolVar(&asJSON, "json", false, "Print the resolved records as JSON")
	fs.BoolVar(&caseInsensitive, "case-insensitive", false, "Ignore case when matching anchor text")

	path, err := parse(fs, args, "pdf path")
	if err != nil {
		return err
	}
	if transcriptPath == "" {
		fs.Usage()
		return usageError{errors.New("-transcript is required")}
	}

	transcript, err := os.ReadFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	ext, err := common.extractor(path, stderr)
	if err != nil {
		return err
	}
	if caseInsensitive {
		ext = ext.CaseInsensitive()
	}

	resolved, stats, err := ext.Resolve(ctx, string(transcript))
	if err != nil {
		return err
	}
	if asJSON {
		return emitJSON(stdout, resolved)
	}
	printSummary(stdout, resolved, stats)
	return nil
}

func runHandle(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var configPath, arn string
	fs := newFlagSet("handle", "-config <yaml> -arn <arn> <event.json|->", stderr)
	fs.StringVar(&configPath, "config", "", "Stage configuration file; built-in defaults when empty")
	fs.StringVar(&arn, "arn", "", "Invoked function ARN, selects the stage (required)")

	eventPath, err := parse(fs, args, "event file")
	if err != nil {
		return err
	}
	if arn == "" {
		fs.Usage()
		return usageError{errors.New("-arn is required")}
	}

	stage := pipeline.StageForARN(arn)
	cfg, err := loadConfig(configPath, stage)
	if err != nil {
		return err
	}

	logger, err := logging.NewWithWriter(cfg.Log, stderr)
	if err != nil {
		return err
	}

	event, err := readEvent(eventPath)
	if err != nil {
		return err
	}

	stores, err := store.FromConfig(cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	p := pipeline.New(stage, cfg, stores, convert.NewClient(cfg.Converter, convert.WithLogger(logger)), logger)
	resp, err := p.Handle(ctx, event, arn)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "handled event", "status", resp.StatusCode)
	return emitJSON(stdout, resp)
}

func loadConfig(path string, stage config.Stage) (*config.Config, error) {
	var cfg *config.Config
	if path == "" {
		defaults := config.Defaults(stage)
		cfg = &defaults
	} else {
		var err error
		if cfg, err = config.Load(path, stage); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", stage, err)
	}
	return cfg, nil
}

func readEvent(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event: %w", err)
	}
	return data, nil
}

func emitJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
