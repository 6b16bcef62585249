package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/lintrunner/internal/application"
	"github.com/eugenenazirov/lintrunner/internal/config"
	"github.com/eugenenazirov/lintrunner/internal/lint"
	"github.com/eugenenazirov/lintrunner/internal/logging"
	"github.com/eugenenazirov/lintrunner/internal/output"
	"github.com/eugenenazirov/lintrunner/internal/runner"
)

const appName = "lintrunner"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var exitFunc = os.Exit

type streams struct {
	out    *output.Stream
	errOut io.Writer
}

func main() {
	s := streams{out: output.New(os.Stdout), errOut: os.Stderr}
	exitFunc(run(os.Args[1:], s, exitFunc))
}

type cliFlags struct {
	app *kingpin.Application

	configFile     *string
	json           *bool
	terse          *bool
	version        *bool
	glob           *bool
	excludeMarkers *[]string
	exclude        *[]string
	drainTimeout   flagValue[time.Duration]
	loadRate       flagValue[float64]
	loadBurst      flagValue[int]
	logLevel       flagValue[string]
	indent         flagValue[int]
	maxErr         flagValue[int]
	maxLen         flagValue[int]
	predef         *[]string
	edition        flagValue[string]
	lintFlags      map[string]flagValue[bool]
	patterns       *[]string

	jsonSet, terseSet, globSet bool

	// helpStatus is set when kingpin finished a help request.
	helpStatus *int
}

// flagValue pairs a parsed flag with whether the user supplied it.
type flagValue[T any] struct {
	value *T
	set   *bool
}

func (f flagValue[T]) ptr() *T {
	if f.set == nil || !*f.set {
		return nil
	}
	return f.value
}

func newFlag[T any](clause *kingpin.FlagClause, parse func(*kingpin.FlagClause) *T) flagValue[T] {
	set := new(bool)
	clause.IsSetByUser(set)
	return flagValue[T]{value: parse(clause), set: set}
}

func newCLI(errOut io.Writer) *cliFlags {
	app := kingpin.New(appName, "Batch lint runner - expands file patterns, lints every file concurrently and exits non-zero if any file fails")
	app.UsageWriter(errOut)
	app.ErrorWriter(io.Discard)

	f := &cliFlags{app: app, lintFlags: make(map[string]flagValue[bool])}
	app.Terminate(func(status int) {
		f.helpStatus = &status
	})

	f.configFile = app.Flag("config", "Path to YAML configuration file (defaults to the nearest "+config.DefaultFileName+")").String()
	f.json = app.Flag("json", "Print one JSON line per file").IsSetByUser(&f.jsonSet).Bool()
	f.terse = app.Flag("terse", "Print one line per problem").IsSetByUser(&f.terseSet).Bool()
	f.version = app.Flag("version", "Print version information and exit").Bool()
	f.glob = app.Flag("glob", "Expand glob patterns (use --no-glob to take patterns literally)").Default("true").IsSetByUser(&f.globSet).Bool()
	f.excludeMarkers = app.Flag("exclude-marker", "Skip paths containing this string (repeatable)").Strings()
	f.exclude = app.Flag("exclude", "Skip paths matching this glob (repeatable)").Strings()
	f.drainTimeout = newFlag(app.Flag("drain-timeout", "Upper bound on waiting for buffered output before exit (0 waits forever)"), (*kingpin.FlagClause).Duration)
	f.loadRate = newFlag(app.Flag("load-rate", "Maximum file loads started per second (0 disables throttling)"), (*kingpin.FlagClause).Float64)
	f.loadBurst = newFlag(app.Flag("load-burst", "Burst capacity for load throttling"), (*kingpin.FlagClause).Int)
	f.logLevel = newFlag(app.Flag("log-level", "Log level: debug, info, warn or error"), (*kingpin.FlagClause).String)
	f.indent = newFlag(app.Flag("indent", "Expected indentation width"), (*kingpin.FlagClause).Int)
	f.maxErr = newFlag(app.Flag("maxerr", "Maximum problems reported per file"), (*kingpin.FlagClause).Int)
	f.maxLen = newFlag(app.Flag("maxlen", "Maximum line length"), (*kingpin.FlagClause).Int)
	f.predef = app.Flag("predef", "Predefined global (repeatable)").Strings()
	f.edition = newFlag(app.Flag("edition", "Lint rule edition"), (*kingpin.FlagClause).String)

	for _, name := range lint.KnownFlags() {
		f.lintFlags[name] = newFlag(app.Flag(name, "Lint option "+name), (*kingpin.FlagClause).Bool)
	}
	for _, name := range lint.DeprecatedFlags() {
		app.Flag(name, "Deprecated lint option, ignored").Hidden().Bool()
	}

	f.patterns = app.Arg("pattern", "Files or glob patterns to lint").Strings()
	return f
}

func (f *cliFlags) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile:     *f.configFile,
		ExcludeMarkers: *f.excludeMarkers,
		Exclude:        *f.exclude,
		DrainTimeout:   f.drainTimeout.ptr(),
		LoadRate:       f.loadRate.ptr(),
		LoadBurst:      f.loadBurst.ptr(),
		LogLevel:       f.logLevel.ptr(),
		Indent:         f.indent.ptr(),
		MaxErr:         f.maxErr.ptr(),
		MaxLen:         f.maxLen.ptr(),
		Predef:         *f.predef,
		Edition:        f.edition.ptr(),
		LintFlags:      make(map[string]bool),
	}

	if f.jsonSet {
		overrides.JSON = f.json
	}
	if f.terseSet {
		overrides.Terse = f.terse
	}
	if f.globSet {
		overrides.Glob = f.glob
	}

	for name, flag := range f.lintFlags {
		if v := flag.ptr(); v != nil {
			overrides.LintFlags[name] = *v
		}
	}

	return overrides
}

// usage lists every flag, sorted, the way the runner documents itself on misuse.
func (f *cliFlags) usage() string {
	var names []string
	for _, flag := range f.app.Model().Flags {
		if flag.Hidden || flag.Name == "help" {
			continue
		}
		names = append(names, flag.Name)
	}
	sort.Strings(names)
	return fmt.Sprintf("Usage: %s [--%s] [--] <pattern>...", appName, strings.Join(names, "] [--"))
}

func die(w io.Writer, cli *cliFlags, why string) int {
	fmt.Fprintln(w, why)
	fmt.Fprintln(w, cli.usage())
	return runner.ExitFailure
}

// run parses args and lints the requested files. exit is called by the runner
// once all files completed; the returned status covers the paths where the
// runner never started.
func run(args []string, s streams, exit runner.ExitFunc) int {
	cli := newCLI(s.errOut)
	_, err := cli.app.Parse(args)
	if cli.helpStatus != nil {
		return *cli.helpStatus
	}
	if err != nil {
		return die(s.errOut, cli, err.Error())
	}

	if !*cli.version && len(*cli.patterns) == 0 {
		return die(s.errOut, cli, "No files specified.")
	}

	overrides := cli.overrides()
	if overrides.ConfigFile == "" {
		if path, err := config.Discover(".", config.DefaultFileName); err == nil {
			overrides.ConfigFile = path
		}
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(s.errOut, "failed to load configuration: %v\n", err)
		return runner.ExitFailure
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(s.errOut, "failed to initialize logger: %v\n", err)
		return runner.ExitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger,
		application.WithStreams(s.out, s.errOut),
		application.WithExitFunc(exit),
	)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return runner.ExitFailure
	}

	ctx := context.Background()

	if *cli.version {
		fmt.Fprintln(s.out, app.Version(version))
		if err := s.out.Drain(ctx); err != nil {
			logger.Warn("output drain failed", zap.Error(err))
		}
		return runner.ExitSuccess
	}

	status, err := app.Run(ctx, *cli.patterns)
	if err != nil {
		return die(s.errOut, cli, err.Error())
	}
	return status
}
