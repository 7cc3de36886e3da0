package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxTimestamp is the latest time that formats to two hour digits
// (99:59:59.999) and therefore parses back.
const MaxTimestamp = 359999.999

// hours are optional; minutes and seconds are two digits, millis three
var timestampRegex = regexp.MustCompile(`^(?:(\d{1,2}):)?(\d{2}):(\d{2})\.(\d{3})$`)

// converts a WebVTT timestamp (HH:MM:SS.mmm or MM:SS.mmm) to seconds
func ParseTimestamp(text string) (float64, error) {
	value := strings.TrimSpace(text)
	matches := timestampRegex.FindStringSubmatch(value)
	if matches == nil {
		return 0, &TimestampFormatError{
			Value:  text,
			Reason: "expected HH:MM:SS.mmm or MM:SS.mmm",
		}
	}

	var hours int64
	if matches[1] != "" {
		hours, _ = strconv.ParseInt(matches[1], 10, 64)
	}
	minutes, _ := strconv.ParseInt(matches[2], 10, 64)
	seconds, _ := strconv.ParseInt(matches[3], 10, 64)
	millis, _ := strconv.ParseInt(matches[4], 10, 64)

	if minutes >= 60 {
		return 0, &TimestampFormatError{
			Value:  text,
			Reason: fmt.Sprintf("minutes out of range: %d", minutes),
		}
	}
	if seconds >= 60 {
		return 0, &TimestampFormatError{
			Value:  text,
			Reason: fmt.Sprintf("seconds out of range: %d", seconds),
		}
	}

	total := decimal.NewFromInt(hours*3600 + minutes*60 + seconds).
		Add(decimal.New(millis, -3))
	f, _ := total.Float64()
	return f, nil
}

// formats seconds as HH:MM:SS.mmm, flooring every component.
// Negative and non-finite values are clamped. Values past MaxTimestamp get a
// third hour digit, which ParseTimestamp rejects.
func FormatTimestamp(seconds float64) string {
	hours, minutes, secs, millis := timestampParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

// splits seconds into floored clock components using exact decimal
// arithmetic, so 1.001 yields 1 and 1 rather than 1 and 0
func timestampParts(seconds float64) (hours, minutes, secs, millis int64) {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	if math.IsInf(seconds, 1) {
		seconds = math.MaxInt32
	}

	totalMillis := decimal.NewFromFloat(seconds).Shift(3).Floor().IntPart()

	hours = totalMillis / 3_600_000
	minutes = (totalMillis / 60_000) % 60
	secs = (totalMillis / 1000) % 60
	millis = totalMillis % 1000
	return hours, minutes, secs, millis
}
