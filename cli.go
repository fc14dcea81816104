package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"softlist/config"
	"softlist/log"
)

type (
	CLI struct {
		Infos   Infos   `cmd:"" help:"Show software list infos."`
		Find    Find    `cmd:"" help:"Find software by shortname, * and ? wildcards allowed."`
		Matches Matches `cmd:"" help:"Show software approximately matching a name."`
		Verify  Verify  `cmd:"" help:"Check software lists for errors."`
		Ident   Ident   `cmd:"" help:"Identify ROM dumps."`
		Version Version `cmd:"" help:"Show swlist version."`

		Config   string     `name:"config" help:"${config_help}" type:"path" placeholder:"FILE"`
		HashPath []string   `name:"hash-path" help:"${hashpath_help}" placeholder:"DIR,..."`
		Log      logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		JSON     bool       `name:"json" help:"Output JSON."`
	}

	Infos struct {
		List string `arg:"" name:"list" help:"Software list name."`
	}

	Find struct {
		List    string `arg:"" name:"list" help:"Software list name."`
		Pattern string `arg:"" name:"pattern" help:"Shortname, * and ? wildcards allowed."`
	}

	Matches struct {
		List      string `arg:"" name:"list" help:"Software list name."`
		Name      string `arg:"" name:"name" help:"Approximate shortname or description."`
		Interface string `name:"interface" help:"Only consider parts matching these comma-separated interfaces."`
		Limit     int    `name:"limit" help:"Maximum number of matches." default:"10"`
	}

	Verify struct {
		Lists []string `arg:"" name:"list" help:"Software list names."`
	}

	Ident struct {
		Files []string `arg:"" name:"file" help:"ROM dumps to identify."`
		Lists []string `name:"list" help:"Software lists to look into." required:"" placeholder:"LIST,..."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"config_help":   "Configuration file (defaults to config.toml in the user configuration directory).",
	"hashpath_help": "Directories containing software lists, overrides the configuration.",
	"log_help":      "Enable logging for specified modules.",
}

// env is what commands run with.
type env struct {
	cfg  config.Config
	out  io.Writer
	json bool
}

func run(args []string, out io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("swlist"),
		kong.Description("Software list catalog tool."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		kong.Writers(out, os.Stderr),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse command line: %w", err)
	}

	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}

	return ctx.Run(&env{cfg: cfg, out: out, json: cli.JSON})
}

func (cli *CLI) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if cli.Config != "" {
		var err error
		if cfg, err = config.Load(cli.Config); err != nil {
			return cfg, fmt.Errorf("failed to load configuration: %w", err)
		}
	} else {
		cfg = config.LoadOrDefault()
	}

	if len(cli.HashPath) != 0 {
		cfg.General.HashPath = cli.HashPath
	}
	if err := cfg.EnableLogs(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}

	fmt.Fprintf(ctx.Stdout, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	var value string
	if err := ctx.Scan.PopValueInto("log", &value); err != nil {
		return err
	}

	nolog := false
	var names []string
	for _, v := range strings.Split(value, ",") {
		if v == "no" {
			nolog = true
			continue
		}
		names = append(names, v)
	}

	mask, err := log.ParseModules(strings.Join(names, ","))
	if err != nil {
		return err
	}

	if nolog {
		if mask == log.ModuleMaskAll {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	*lm = logModMask(mask)
	log.EnableDebugModules(mask)
	return nil
}
