package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rhyanvargas/interactive-transcript/internal/subtitle"
	"github.com/spf13/cobra"
)

// picks the output format from --format, then the output extension, then config
func resolveFormat(cmd *cobra.Command, outputPath string) (subtitle.Format, error) {
	formatStr, _ := cmd.Flags().GetString("format")
	if formatStr != "" {
		return subtitle.ParseFormat(formatStr)
	}
	if outputPath != "" && filepath.Ext(outputPath) != "" {
		return subtitle.GetFormatFromExtension(outputPath), nil
	}
	return subtitle.ParseFormat(cfg.Output.Format)
}

// output path next to the input when --output is not set
func defaultOutputPath(inputPath string, format subtitle.Format) string {
	baseName := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	out := baseName + subtitle.GetExtensionForFormat(format)
	if out == inputPath {
		out = baseName + ".out" + subtitle.GetExtensionForFormat(format)
	}
	return out
}

// applies --language and writes the transcript, returning the absolute path
func writeTranscript(
	cmd *cobra.Command,
	t *subtitle.Transcript,
	inputPath string,
) (string, error) {
	outputPath, _ := cmd.Flags().GetString("output")
	if lang, _ := cmd.Flags().GetString("language"); lang != "" {
		t.Language = lang
	}

	format, err := resolveFormat(cmd, outputPath)
	if err != nil {
		return "", err
	}
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, format)
	}

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return "", fmt.Errorf("failed to create writer: %w", err)
	}

	logger.Infow("Writing output file",
		"output", outputPath,
		"format", format,
		"cues", len(t.Cues),
	)
	if err := writer.Write(t, outputPath); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	return absOutput, nil
}

// logs parse warnings and non-unique cue ids
func reportDiagnostics(source string, t *subtitle.Transcript) {
	logger.Warnings(source, t.Warnings)
	if dups := subtitle.DuplicateIDs(t.Cues); len(dups) > 0 {
		logger.Warnw("Duplicate cue identifiers",
			"source", source,
			"ids", dups,
		)
	}
}

// transform options from config, overridden by flags that were set
func transformOptions(cmd *cobra.Command) subtitle.TransformOptions {
	opts := cfg.TransformOptions()
	flags := cmd.Flags()
	if flags.Changed("segment-duration") {
		opts.SegmentDuration, _ = flags.GetFloat64("segment-duration")
	}
	if flags.Changed("speaker-detection") {
		opts.SpeakerDetection, _ = flags.GetBool("speaker-detection")
	}
	if flags.Changed("timestamp-format") {
		tf, _ := flags.GetString("timestamp-format")
		opts.TimestampFormat = subtitle.TimestampFormat(tf)
	}
	return opts
}

func addTransformFlags(cmd *cobra.Command) {
	cmd.Flags().
		Float64P("segment-duration", "d", subtitle.DefaultSegmentDuration, "Seconds per generated cue")
	cmd.Flags().
		Bool("speaker-detection", true, "Detect speaker prefixes such as \"Name:\" or \"[Name]\"")
	cmd.Flags().
		String("timestamp-format", string(subtitle.TimestampSeconds), "Timestamp format (seconds, timecode)")
}
