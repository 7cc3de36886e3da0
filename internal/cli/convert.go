package cli

import (
	"fmt"

	"github.com/rhyanvargas/interactive-transcript/internal/subtitle"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input_file]",
	Short: "Convert a WebVTT, SubRip or text file to another transcript format",
	Long: `Open a .vtt or .srt file (parsed) or a .txt/.md file (segmented into cues) and
write it in the requested format. Converting a WebVTT file to WebVTT
normalizes it: cues are sorted, timestamps use the long form and cue
settings are dropped.

Examples:
  transcript convert talk.vtt -o talk.srt
  transcript convert notes.md --format vtt -d 4
  transcript convert messy.vtt -o clean.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addTransformFlags(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	opts := transformOptions(cmd)

	logger.Infow("Opening transcript", "input", inputPath)
	transcript, err := subtitle.Open(inputPath, &opts)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inputPath, err)
	}
	reportDiagnostics(inputPath, transcript)

	absOutput, err := writeTranscript(cmd, transcript, inputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Transcript converted successfully: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Cues: %d\n", len(transcript.Cues))
	return nil
}
