package cli

import (
	"fmt"
	"os"

	"github.com/rhyanvargas/interactive-transcript/internal/subtitle"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// one entry of an alignment file
type alignedSegment struct {
	Text  string  `yaml:"text"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

var alignCmd = &cobra.Command{
	Use:   "align [segments_file]",
	Short: "Build cues from text segments with known timings",
	Long: `Build one cue per segment from a YAML or JSON list of segments that
already carry their start and end times (in seconds), bypassing automatic
segmentation.

Example segments file:
  - text: "Alice: Welcome back."
    start: 0
    end: 2.5
  - text: "Thanks for having me."
    start: 2.5
    end: 4.2

Examples:
  transcript align segments.yaml -o talk.vtt
  transcript align segments.json --format srt`,
	Args: cobra.ExactArgs(1),
	RunE: runAlign,
}

func init() {
	rootCmd.AddCommand(alignCmd)
	addTransformFlags(alignCmd)
}

func runAlign(cmd *cobra.Command, args []string) error {
	segmentsPath := args[0]

	segments, timings, err := loadAlignedSegments(segmentsPath)
	if err != nil {
		return err
	}

	opts := transformOptions(cmd)
	logger.Infow("Aligning segments",
		"input", segmentsPath,
		"segments", len(segments),
	)

	cues, err := subtitle.TransformTextWithTimings(segments, timings, &opts)
	if err != nil {
		return fmt.Errorf("failed to align %s: %w", segmentsPath, err)
	}

	transcript := subtitle.NewTranscript(cues, "")
	reportDiagnostics(segmentsPath, transcript)

	absOutput, err := writeTranscript(cmd, transcript, segmentsPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Transcript aligned successfully: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Cues: %d\n", len(cues))
	return nil
}

// YAML is a superset of JSON, so both file kinds decode here
func loadAlignedSegments(path string) ([]string, []subtitle.Timing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []alignedSegment
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, nil, fmt.Errorf("failed to decode segments file: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("segments file %s contains no segments", path)
	}

	segments := make([]string, len(entries))
	timings := make([]subtitle.Timing, len(entries))
	for i, e := range entries {
		segments[i] = e.Text
		timings[i] = subtitle.Timing{Start: e.Start, End: e.End}
	}
	return segments, timings, nil
}
