// Package cmd implements the jsonpane command line interface.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jsonpane/internal/flatten"
	"github.com/oakwood-commons/jsonpane/internal/retain"
	"github.com/oakwood-commons/jsonpane/internal/ui"
	"github.com/oakwood-commons/jsonpane/internal/widget"
	"github.com/oakwood-commons/jsonpane/pkg/logger"
	"github.com/oakwood-commons/jsonpane/pkg/settings"
)

var (
	params     = settings.NewCliParams()
	configFile string
	debug      bool

	rootCtx = context.Background()
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "interactive viewer for large, still-arriving JSON",
	Long: settings.CliBinaryName + ` renders a JSON document or stream as a collapsible tree.
Input may still be arriving while you navigate: complete top-level values
appear as they close, malformed fragments are skipped with a warning, and
the view never blocks on the producer.`,
	Example: "\n  jsonpane events.json\n  curl -s https://api.example.com/feed | jsonpane\n  tail -f audit.log | jsonpane --max-values 1000\n",
	Args:    cobra.MaximumNArgs(1),
	Version: settings.VersionInformation.BuildVersion,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if path := resolveConfigPath(configFile); path != "" {
			cfg, err := loadConfigFile(path)
			if err != nil {
				return err
			}
			applyConfigDefaults(cfg, cmd.Flags())
		}

		if !ui.IsValidTheme(params.Theme) {
			return fmt.Errorf("invalid --theme %q (available: dark, light, mono)", params.Theme)
		}
		if !ui.IsValidKeyMode(params.KeyMode) {
			return fmt.Errorf("invalid --keymap %q (expected vim, emacs, or function)", params.KeyMode)
		}
		if params.MaxValues < 0 {
			return fmt.Errorf("invalid --max-values %d (must be >= 0)", params.MaxValues)
		}

		source, closeSource, err := openSource(args)
		if err != nil {
			return err
		}
		defer closeSource()

		if err := ui.SetThemeByName(params.Theme); err != nil {
			return err
		}

		log := logger.FromContext(rootCtx)
		model := ui.NewModel(ui.ModelOptions{
			Widget: widget.Options{
				Flatten: flatten.Options{
					Workers:           params.Workers,
					ParallelThreshold: params.ParallelThreshold,
				},
				Retain: retain.Policy{MaxValues: params.MaxValues},
				Indent: params.Indent,
			},
			Source:  source,
			KeyMode: ui.KeyMode(params.KeyMode),
			NoColor: params.NoColor,
			Log:     *log,
		})

		return ui.RunModel(model, params.Width, params.Height)
	},
}

// openSource picks the input: the file argument when given, stdin otherwise.
// Running with neither a file nor piped stdin is an error rather than a
// blocked terminal.
func openSource(args []string) (io.Reader, func(), error) {
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}

	info, err := os.Stdin.Stat()
	if err == nil && (info.Mode()&os.ModeCharDevice) != 0 {
		return nil, nil, fmt.Errorf("no input: pass a file or pipe JSON to stdin")
	}
	return os.Stdin, func() {}, nil
}

func init() {
	rootCmd.SetVersionTemplate(strings.Join([]string{
		"{{.Name}} {{.Version}}",
		"commit: " + settings.VersionInformation.Commit,
		"built:  " + settings.VersionInformation.BuildTime,
		"",
	}, "\n"))

	rootCmd.Flags().StringVar(&params.Theme, "theme", params.Theme, "theme name: dark, light, or mono")
	rootCmd.Flags().StringVar(&params.KeyMode, "keymap", params.KeyMode, "keybinding mode: vim (default), emacs, or function")
	rootCmd.Flags().BoolVar(&params.NoColor, "no-color", false, "disable color output")
	rootCmd.Flags().IntVar(&params.Indent, "indent", params.Indent, "spaces per tree depth")
	rootCmd.Flags().IntVar(&params.Workers, "workers", 0, "flatten worker count (0 = number of CPUs)")
	rootCmd.Flags().IntVar(&params.ParallelThreshold, "parallel-threshold", 0, "minimum container size for parallel flattening (0 = default)")
	rootCmd.Flags().IntVar(&params.MaxValues, "max-values", 0, "retain at most N newest top-level values (0 = unlimited)")
	rootCmd.Flags().IntVar(&params.Width, "width", 0, "TUI width in columns (0 = auto-detect)")
	rootCmd.Flags().IntVar(&params.Height, "height", 0, "TUI height in rows (0 = auto-detect)")
	rootCmd.Flags().StringVar(&configFile, "config-file", "", "path to a YAML config file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
