package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/fincalc/internal/config"
)

// globalOptions holds the persistent flags and the config they resolve to.
type globalOptions struct {
	jsonOut    bool
	configPath string
	logLevel   string

	cfg config.Config
}

var globals globalOptions

// subcommands is filled by each command file's init.
var subcommands []func() *cobra.Command

func register(newCmd func() *cobra.Command) {
	subcommands = append(subcommands, newCmd)
}

func newRootCmd() *cobra.Command {
	globals = globalOptions{cfg: config.DefaultConfig()}

	root := &cobra.Command{
		Use:   "fincalc",
		Short: "Personal finance calculators",
		Long: "Rent vs buy, mortgage payments, the cost of a drinking habit and federal job risk,\n" +
			"from the command line or an interactive dashboard.",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = zap.L().Sync()
		},
		RunE: runTUI,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&globals.jsonOut, "json", false, "Print the result as JSON")
	pf.StringVar(&globals.configPath, "config", config.Path(), "Config file")
	pf.StringVar(&globals.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	for _, newCmd := range subcommands {
		root.AddCommand(newCmd())
	}
	return root
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFrom(globals.configPath)
	if err != nil {
		return err
	}
	if globals.logLevel != "" {
		cfg.Log.Level = globals.logLevel
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return err
	}
	globals.cfg = cfg

	zap.L().Debug("config loaded",
		zap.String("path", globals.configPath),
		zap.Bool("exists", config.Exists(globals.configPath)),
	)
	return nil
}

// emit writes v as JSON when --json is set, and the rendered text otherwise.
func emit(w io.Writer, v any, render func() string) error {
	if globals.jsonOut {
		return printJSON(w, v)
	}
	if _, err := io.WriteString(w, render()); err != nil {
		return eris.Wrap(err, "write output")
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode json")
	}
	return nil
}
