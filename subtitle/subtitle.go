// Package subtitle renders lecture transcripts as SubRip files.
package subtitle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cue is a single caption of a transcript.
type Cue struct {
	StartMs int64  `json:"startMs"`
	EndMs   int64  `json:"endMs"`
	Content string `json:"content"`
}

// Transcript is the transcript document served for a lecture's media.
type Transcript struct {
	ContentJSON struct {
		Cues []Cue `json:"cues"`
	} `json:"contentJSON"`
}

// Cues returns the captions of the transcript.
func (t Transcript) Cues() []Cue {
	return t.ContentJSON.Cues
}

// Parse decodes a transcript document.
func Parse(data []byte) (Transcript, error) {
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return Transcript{}, fmt.Errorf("decode transcript: %w", err)
	}
	return t, nil
}

// FormatTimestamp renders ms as HH:MM:SS,mmm. Negative values are clamped to zero.
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	seconds := ms / 1000
	ms %= 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

// Format renders cues as SubRip blocks numbered from 1.
func Format(cues []Cue) string {
	var b strings.Builder

	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatTimestamp(cue.StartMs),
			FormatTimestamp(cue.EndMs),
			cue.Content,
		)
	}

	return b.String()
}
