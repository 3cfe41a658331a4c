package constant

// File extensions of harvested artifacts.
const (
	VideoExt    = ".mp4"
	SubtitleExt = ".srt"
	JSONExt     = ".json"
)
