package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Open reads a transcript from disk. WebVTT and SubRip files are parsed;
// plain text files are segmented with opts.
func Open(path string, opts *TransformOptions) (*Transcript, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtt", ".srt", ".txt", ".md":
	default:
		return nil, fmt.Errorf("unsupported transcript format: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch ext {
	case ".vtt":
		return Parse(string(data))
	case ".srt":
		return ParseSRT(string(data))
	default:
		return TransformText(string(data), opts)
	}
}
