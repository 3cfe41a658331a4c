package media

// SegmentReference is the absolute URL of the single downloadable segment of a track.
type SegmentReference struct {
	Track TrackType
	URL   string
}

// Plan describes how a lecture's video is obtained. It is either Split or
// CombinedFallback, built once per lecture and consumed once by the remux
// pipeline.
type Plan interface {
	// Kind names the plan for logs and the history ledger.
	Kind() string
	plan()
}

// Split downloads both elementary streams and remuxes them locally.
type Split struct {
	Audio SegmentReference
	Video SegmentReference
}

// CombinedFallback lets the multiplexer read the combined source directly.
type CombinedFallback struct {
	URI string
}

func (Split) Kind() string            { return "split" }
func (CombinedFallback) Kind() string { return "combined" }

func (Split) plan()            {}
func (CombinedFallback) plan() {}
