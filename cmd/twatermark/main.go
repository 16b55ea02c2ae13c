package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	watermark "github.com/gcslaoli/text-watermark-go"
	"github.com/gcslaoli/text-watermark-go/internal/config"
	"github.com/gcslaoli/text-watermark-go/internal/session"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "twatermark",
	Short: "Stamp a semi-transparent text watermark into an image corner",
	Long: `twatermark overlays white text at 70/255 opacity, 10 pixels from the
chosen corner of a JPEG, PNG or BMP image, and saves the result.

Run without a subcommand to start the interactive session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		// The interactive session owns the terminal.
		if !cmd.HasParent() || cmd.Name() == "interactive" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// watermarkFlags registers the parameter flags shared by subcommands.
func watermarkFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Watermark text (default from config)")
	cmd.Flags().Int("size", 0, "Font size 10-200 (default from config)")
	cmd.Flags().String("corner", "", "top-left, top-right, bottom-left or bottom-right (default from config)")
}

// paramsFromFlags starts from the config and applies any flags that were set.
func paramsFromFlags(cmd *cobra.Command) (watermark.Params, error) {
	p := cfg.Params()

	if cmd.Flags().Changed("text") {
		p.Text, _ = cmd.Flags().GetString("text")
	}
	if cmd.Flags().Changed("size") {
		p.FontSize, _ = cmd.Flags().GetInt("size")
	}
	if cmd.Flags().Changed("corner") {
		name, _ := cmd.Flags().GetString("corner")
		corner, err := watermark.ParseCorner(name)
		if err != nil {
			return watermark.Params{}, err
		}
		p.Corner = corner
	}

	return p, p.Validate()
}

func newSession(p watermark.Params, log *zap.Logger) *session.Session {
	eng := watermark.NewEngine(watermark.WithLogger(log))
	return session.New(eng,
		session.WithLogger(log),
		session.WithParams(p),
		session.WithJPEGQuality(cfg.Output.JPEGQuality),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
