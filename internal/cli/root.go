package cli

import (
	"fmt"

	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/rules"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time via -ldflags
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
	cfg    *model.Config
	tables *rules.Tables
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clarity",
	Short: "Clarity - sentence-level grammar, voice and ambiguity analysis",
	Long: `Clarity analyzes English prose one sentence at a time:

- Grammar and spelling issues, from a LanguageTool server with a local
  rule table as fallback
- Active/passive voice classification with template rewrites
- Homophones, vague pronouns and vague words, with a clarity score

Scores are deterministic and every signal carries its formula.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		cfg, err = loadConfig(cfgFile)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Output.Verbose = true
		}

		tables, err = rules.Load(cfg.Rules.File)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "clarity %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.clarity/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}
