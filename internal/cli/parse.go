package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rhyanvargas/interactive-transcript/internal/subtitle"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [vtt_file]",
	Short: "Parse a WebVTT file into structured cues",
	Long: `Parse a WebVTT document and print its cues, language, duration and
warnings as JSON.

Structural problems (missing WEBVTT header, malformed timing lines, cues
that end before they start) abort with the offending line number. Empty
cue bodies are reported as warnings and still produce a cue.

Examples:
  transcript parse talk.vtt
  transcript parse talk.vtt -o talk.json
  transcript parse talk.vtt -o talk.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	vttPath := args[0]

	data, err := os.ReadFile(vttPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", vttPath, err)
	}

	logger.Infow("Parsing WebVTT file", "input", vttPath)

	transcript, err := subtitle.Parse(string(data))
	if err != nil {
		var parseErr *subtitle.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("%s: %w", vttPath, err)
		}
		return fmt.Errorf("failed to parse %s: %w", vttPath, err)
	}

	reportDiagnostics(vttPath, transcript)
	logger.Infow("Parsed WebVTT file",
		"cues", len(transcript.Cues),
		"language", transcript.Language,
		"duration", transcript.Duration,
		"warnings", len(transcript.Warnings),
	)

	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		absOutput, err := writeTranscript(cmd, transcript, vttPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Transcript written: %s\n", absOutput)
		return nil
	}

	out, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
