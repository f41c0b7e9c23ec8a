package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssb/config"
	"cssb/jsonutil"
	"cssb/misc"
	"cssb/render"
	"cssb/selector"
	"cssb/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnesessary. I will return regular errors from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt.
	// NOTE: normally in cli tool this is not necessary, but just in case we
	// may decide to do some heavy async processing later let's follow the
	// rules
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "construction toolkit for CSS selector chains and stylesheets",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "build",
				Usage:        "Builds a single selector chain from flags",
				OnUsageError: usageErrorHandler,
				Action:       buildSelector,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "element", Aliases: []string{"e"}, Usage: "tag `NAME` fragment, at most one"},
					&cli.StringFlag{Name: "id", Usage: "id `NAME` fragment, at most one"},
					&cli.StringSliceFlag{Name: "class", Aliases: []string{"cl"}, Usage: "class `NAME` fragment, repeatable"},
					&cli.StringSliceFlag{Name: "class-from", Usage: "class fragment with name derived from free `TEXT`, repeatable"},
					&cli.StringSliceFlag{Name: "attr", Aliases: []string{"a"}, Usage: "attribute `CONDITION` fragment, repeatable"},
					&cli.StringSliceFlag{Name: "pseudo-class", Aliases: []string{"pc"}, Usage: "pseudo class `NAME` fragment, repeatable"},
					&cli.StringFlag{Name: "pseudo-element", Aliases: []string{"pe"}, Usage: "pseudo element `NAME` fragment, at most one"},
					&cli.StringFlag{Name: "name", Usage: "selector `NAME` for json output"},
					&cli.BoolFlag{Name: "json", Usage: "output json object instead of plain selector text"},
				},
				CustomHelpTemplate: fmt.Sprintf(`%s
Fragments are always assembled in selector chain order: element, id, classes,
attributes, pseudo classes, pseudo element. Any combination of flags produces
a properly ordered chain.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "render",
				Usage:        "Renders selector recipe (YAML) to specified format",
				OnUsageError: usageErrorHandler,
				Action:       render.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", DefaultText: "",
						Usage: "output `TYPE` overriding configuration (supported types: " + strings.Join(config.OutputFmtNames(), ", ") + ")"},
					&cli.StringFlag{Name: "order", DefaultText: "",
						Usage: "selector `ORDER` overriding configuration (supported orders: " + strings.Join(config.SortOrderNames(), ", ") + ")"},
					&cli.StringFlag{Name: "template", Aliases: []string{"t"},
						Usage: "line `TEMPLATE` for list output (fields: .Index, .Name, .CSS, .Declarations)"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exits, overwrite files"},
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to recipe file (YAML) to process, use "-" to read recipe from STDIN

DESTINATION:
    path to output file, or to an existing directory - then file name is
    derived from SOURCE and output format
    if absent - STDOUT
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func buildSelector(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 0 {
		env.Log.Warn("Malformed command line, arguments are not expected", zap.Strings("ignoring", cmd.Args().Slice()))
	}

	var (
		b   selector.Builder
		err error
	)

	// fragments go in chain order, flags cannot produce an unordered sequence
	if v := cmd.String("element"); len(v) > 0 {
		if b, err = b.Element(v); err != nil {
			return err
		}
	}
	if v := cmd.String("id"); len(v) > 0 {
		if b, err = b.ID(v); err != nil {
			return err
		}
	}
	for _, v := range cmd.StringSlice("class") {
		if b, err = b.Class(v); err != nil {
			return err
		}
	}
	for _, v := range cmd.StringSlice("class-from") {
		if b, err = b.ClassFrom(v); err != nil {
			return err
		}
	}
	for _, v := range cmd.StringSlice("attr") {
		if b, err = b.Attr(v); err != nil {
			return err
		}
	}
	for _, v := range cmd.StringSlice("pseudo-class") {
		if b, err = b.PseudoClass(v); err != nil {
			return err
		}
	}
	if v := cmd.String("pseudo-element"); len(v) > 0 {
		if b, err = b.PseudoElement(v); err != nil {
			return err
		}
	}

	if b.Len() == 0 {
		return errors.New("no selector parts have been specified")
	}

	out := b.String()
	env.Log.Debug("Selector built", zap.String("css", out), zap.Int("fragments", b.Len()))

	if cmd.Bool("json") {
		rule := struct {
			Name string `json:"name,omitempty"`
			CSS  string `json:"css"`
		}{Name: cmd.String("name"), CSS: out}
		if out, err = jsonutil.ToText(rule); err != nil {
			return fmt.Errorf("unable to serialize selector: %w", err)
		}
	}

	fmt.Fprintln(os.Stdout, out)
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
