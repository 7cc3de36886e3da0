package cli

import (
	"github.com/rhyanvargas/interactive-transcript/internal/config"
	"github.com/rhyanvargas/interactive-transcript/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Parse, generate and convert WebVTT transcripts",
	Long: `transcript parses WebVTT documents into structured cues, turns plain
prose into time-coded cues, and serializes cues back to WebVTT.

Output can also be exported as SRT, ASS or JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debugw("Loaded configuration",
			"segment_duration", cfg.Transform.SegmentDuration,
			"speaker_detection", cfg.Transform.SpeakerDetection,
			"output_format", cfg.Output.Format,
		)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ~/.interactive-transcript/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("format", "f", "", "Output format (vtt, srt, ass, json); defaults to the output extension or config")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code written to the output (e.g., en, es, fr)")
}
