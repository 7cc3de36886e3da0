package cli

import (
	"fmt"
	"os"

	"github.com/rhyanvargas/interactive-transcript/internal/subtitle"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform [text_file]",
	Short: "Turn plain text into time-coded cues",
	Long: `Split plain prose into paragraphs and sentences and pack them into
cues of a fixed duration, assuming a speaking rate of 150 words per minute.

Speaker prefixes such as "Alice: ...", "[Alice] ..." or "HOST: ..." are
detected unless --speaker-detection=false is given.

Examples:
  transcript transform notes.txt
  transcript transform notes.txt -d 3 -o notes.vtt
  transcript transform notes.txt --format json --speaker-detection=false`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)
	addTransformFlags(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	textPath := args[0]

	data, err := os.ReadFile(textPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", textPath, err)
	}

	opts := transformOptions(cmd)
	logger.Infow("Transforming text",
		"input", textPath,
		"segment_duration", opts.SegmentDuration,
		"speaker_detection", opts.SpeakerDetection,
	)

	transcript, err := subtitle.TransformText(string(data), &opts)
	if err != nil {
		return fmt.Errorf("failed to transform %s: %w", textPath, err)
	}

	absOutput, err := writeTranscript(cmd, transcript, textPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Transcript generated successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Cues: %d\n", len(transcript.Cues))
	fmt.Fprintf(out, "  Duration: %s\n", subtitle.FormatTimestamp(transcript.Duration))
	if transcript.Language != "" {
		fmt.Fprintf(out, "  Language: %s\n", transcript.Language)
	}
	return nil
}
