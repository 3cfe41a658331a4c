package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/style"
	"github.com/echodl/echodl/util"
	"github.com/muesli/reflow/truncate"
)

// progressLine renders a single erasable download bar.
type progressLine struct {
	mu       sync.Mutex
	bar      progress.Model
	label    string
	width    int
	barWidth int
	drawn    int
	lastDraw time.Time
}

// redrawEvery throttles terminal writes during a download.
const redrawEvery = 100 * time.Millisecond

var activeProgress = newProgressLine()

func newProgressLine() *progressLine {
	width := util.TerminalWidth(80)
	barWidth := util.Max(10, width/4)

	return &progressLine{
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
		width:    width,
		barWidth: barWidth,
	}
}

// SetLabel names what is being downloaded.
func (p *progressLine) SetLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.label = label
}

// Update is a network.ProgressFunc.
func (p *progressLine) Update(url string, written, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.lastDraw) < redrawEvery && written != total {
		return
	}
	p.lastDraw = time.Now()

	size := humanize.Bytes(uint64(written))
	bar := ""
	if total > 0 {
		bar = p.bar.ViewAs(float64(written) / float64(total))
		size += "/" + humanize.Bytes(uint64(total))
	}

	name := p.label
	if segment := path.Base(strings.SplitN(url, "?", 2)[0]); segment != "" {
		name += " " + style.Faint(segment)
	}

	room := p.width - len(size) - p.barWidth - 6
	line := fmt.Sprintf("%s %s %s %s",
		icon.Get(icon.Progress),
		truncate.StringWithTail(name, uint(util.Max(room, 10)), "…"),
		bar,
		size,
	)

	p.clear()
	_, _ = fmt.Fprint(os.Stdout, "\r"+line)
	p.drawn = lipgloss.Width(line)
}

// Erase removes the bar so that a regular line can be printed.
func (p *progressLine) Erase() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clear()
}

func (p *progressLine) clear() {
	if p.drawn == 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", p.drawn))
	p.drawn = 0
}

func eraseProgress() {
	activeProgress.Erase()
}
