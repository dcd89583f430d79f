package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/stencil/cli/cmd"
	"github.com/ardnew/stencil/pkg"
)

// CLI is the top-level command-line interface for stencil.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Path    []string         `help:"Directory searched for input files before those in ${pathEnv} (repeatable)" placeholder:"DIR" sep:"none"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Markup cmd.Markup `cmd:"" default:"withargs" help:"Parse markup and print the tree"`
	Eval   cmd.Eval   `cmd:""                    help:"Evaluate an expression against data files"`
	Get    cmd.Get    `cmd:""                    help:"Read the value at a path"`
	Set    cmd.Set    `cmd:""                    help:"Write a value at a path"`
	Repl   cmd.Repl   `cmd:""                    help:"Start an interactive expression evaluator"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the stencil CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(baseConfig + ".yaml"),
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Version,
		"pathEnv":            pkg.PathEnv,
	}.
		CloneWith(cmd.Vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports anything, wherever they
	// appear on the command line.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(loadYAML, configPath(baseConfig+".yaml")),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSearchPath(ctx, cli.Path)

	// TimeLayout and Caller are only known once parsing completes.
	cli.Log.start(ctx)

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
