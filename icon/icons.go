package icon

// Icon identifies a symbol of the registry.
type Icon int

const (
	Progress Icon = iota
	Success
	Fail
	Skip
	Warn
	Arrow
	Course
	Lecture
	Video
	Subtitle
	Cookie
)

var icons = map[Icon]*iconDef{
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・ヾ",
		squares: "▫",
	},
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "▣",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "✗",
		kaomoji: "(╯°□°)╯",
		squares: "▨",
	},
	Skip: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   "-",
		kaomoji: "(¬‿¬)",
		squares: "□",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "!",
		kaomoji: "(・・;)",
		squares: "▧",
	},
	Arrow: {
		emoji:   "👉",
		nerd:    "",
		plain:   ">",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "▶",
	},
	Course: {
		emoji:   "📚",
		nerd:    "",
		plain:   "#",
		kaomoji: "φ(..)",
		squares: "■",
	},
	Lecture: {
		emoji:   "🎓",
		nerd:    "",
		plain:   "*",
		kaomoji: "(ㆆ_ㆆ)",
		squares: "▪",
	},
	Video: {
		emoji:   "🎞️",
		nerd:    "",
		plain:   "[v]",
		kaomoji: "(°o°)",
		squares: "▤",
	},
	Subtitle: {
		emoji:   "💬",
		nerd:    "",
		plain:   "[s]",
		kaomoji: "(￣▽￣)ノ",
		squares: "▥",
	},
	Cookie: {
		emoji:   "🍪",
		nerd:    "",
		plain:   "[c]",
		kaomoji: "(っ˘ڡ˘ς)",
		squares: "▦",
	},
}
