// Budgetoptimizer loads the budget optimizer agent's configuration, builds
// its model handle and reports on it. The handle points at a local Ollama
// server by default; nothing is sent to it unless "ping" is requested.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/germanamz/budgetoptimizer/pkg/engine"
	"github.com/germanamz/budgetoptimizer/pkg/envfile"
)

const defaultConfigPath = "budgetoptimizer.yaml"

// cliArgs is the parsed command line.
type cliArgs struct {
	cmd        string
	configPath string
	envFile    string
	verbose    bool
	force      bool
}

func main() {
	args, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fail(err)
	}

	if args.cmd == "init" {
		if err := runInit(args.configPath, args.force); err != nil {
			fail(err)
		}

		return
	}

	log := newLogger(os.Stderr, args.verbose)

	if err := run(args.cmd, args.configPath, args.envFile, args.verbose, log); err != nil {
		fail(err)
	}
}

// parseArgs reads the global flags, the command and, for init, its own
// flags. Global flags come before the command; init's -config defaults to the
// global one.
func parseArgs(argv []string, stderr io.Writer) (cliArgs, error) {
	fs := flag.NewFlagSet("budgetoptimizer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: budgetoptimizer [flags] [show|ping]\n       budgetoptimizer [flags] init [-config path] [-force]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nCommands:\n  show    Print the resolved model handle (default)\n  ping    Contact the inference server and list its models\n  init    Create a configuration file interactively\n")
	}

	configPath := fs.String("config", defaultConfigPath, "path to configuration file (built-in defaults if missing)")
	envFile := fs.String("env", envfile.DefaultPath, "path to .env file (ignored if missing)")
	verbose := fs.Bool("verbose", false, "debug logging; also forces the handle's verbose flag on")
	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}

	args := cliArgs{cmd: "show", configPath: *configPath, envFile: *envFile, verbose: *verbose}
	if fs.NArg() > 0 {
		args.cmd = fs.Arg(0)
	}
	if args.cmd != "init" {
		return args, nil
	}

	initCmd := flag.NewFlagSet("init", flag.ContinueOnError)
	initCmd.SetOutput(stderr)
	initCmd.Usage = func() {
		fmt.Fprintf(stderr, "Usage: budgetoptimizer init [flags]\n\nCreate or update a configuration file interactively.\n\nFlags:\n")
		initCmd.PrintDefaults()
	}
	initCmd.StringVar(&args.configPath, "config", args.configPath, "path to configuration file")
	initCmd.BoolVar(&args.force, "force", false, "overwrite an existing file without confirmation")
	if err := initCmd.Parse(fs.Args()[1:]); err != nil {
		return cliArgs{}, err
	}

	return args, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
	os.Exit(1)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run resolves the configuration and dispatches cmd.
func run(cmd, configPath, envFile string, verbose bool, log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env, err := envfile.Read(envFile)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(configPath, env)
	if err != nil {
		return err
	}
	if verbose {
		cfg.LLM.Verbose = true
	}

	eng, err := engine.New(cfg, engine.WithLogger(log), engine.WithEnv(env))
	if err != nil {
		return err
	}

	switch cmd {
	case "show":
		fmt.Println(renderMarkdown(summaryMarkdown(eng)))
		return nil
	case "ping":
		return runPing(ctx, os.Stdout, eng)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// resolveConfig loads path, or returns the built-in defaults when it does
// not exist.
func resolveConfig(path string, env envfile.Env) (engine.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return engine.DefaultConfig(), nil
	}

	return engine.LoadConfig(path, env)
}

func runPing(ctx context.Context, w io.Writer, eng *engine.Engine) error {
	models, err := eng.Ping(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, okStyle.Render("✓ "+eng.LLM().BaseURL()+" is reachable"))
	for _, m := range models {
		fmt.Fprintln(w, "  "+m)
	}

	if !engine.HasModel(models, eng.LLM().Model()) {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("! model %q is not available on the server", eng.LLM().Model())))
	}

	return nil
}
