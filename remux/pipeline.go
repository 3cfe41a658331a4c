package remux

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/log"
	"github.com/echodl/echodl/media"
	"github.com/google/uuid"
)

// Downloader saves a remote resource to a local path.
type Downloader interface {
	Download(ctx context.Context, url, path string) error
}

// Outcome tells what Run did for a lecture.
type Outcome int

const (
	// Published means a new file now exists at the output path.
	Published Outcome = iota + 1
	// Skipped means the output already existed and nothing was done.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Published:
		return "published"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// partSuffix marks a file that is still being written.
const partSuffix = ".part"

// Pipeline turns a download plan into a playable file.
type Pipeline struct {
	Muxer      Muxer
	Downloader Downloader
	// Headers are sent by the muxer when it reads a remote source.
	Headers http.Header
	// Scratch is the directory under which every run gets a private workspace.
	Scratch string
}

// Run executes plan and publishes the result at out. A file already present
// at out is left untouched. Nothing is ever left at out on failure.
func (p *Pipeline) Run(ctx context.Context, plan media.Plan, out string) (Outcome, error) {
	if filesystem.Exists(out) {
		return Skipped, nil
	}

	if err := filesystem.API().MkdirAll(filepath.Dir(out), os.ModePerm); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	part := out + partSuffix
	defer func() {
		// a no-op after a successful publish
		_ = filesystem.API().Remove(part)
	}()

	var err error
	switch plan := plan.(type) {
	case media.Split:
		err = p.split(ctx, plan, part)
	case media.CombinedFallback:
		log.Infof("muxing combined source %s", plan.URI)
		err = p.Muxer.MuxRemote(ctx, plan.URI, p.Headers, part)
	default:
		err = fmt.Errorf("unsupported plan %T", plan)
	}

	if err != nil {
		return 0, err
	}

	if err := filesystem.Publish(part, out); err != nil {
		return 0, fmt.Errorf("publish %s: %w", out, err)
	}

	return Published, nil
}

// split downloads both segments into a private workspace, one after the
// other, and muxes them. The workspace is removed on every exit path.
func (p *Pipeline) split(ctx context.Context, plan media.Split, part string) error {
	workspace := filepath.Join(p.Scratch, uuid.NewString())
	if err := filesystem.API().MkdirAll(workspace, os.ModePerm); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if err := filesystem.API().RemoveAll(workspace); err != nil {
			log.Warnf("remove workspace %s: %v", workspace, err)
		}
	}()

	var (
		video = filepath.Join(workspace, segmentName(plan.Video))
		audio = filepath.Join(workspace, segmentName(plan.Audio))
	)

	if err := p.Downloader.Download(ctx, plan.Video.URL, video); err != nil {
		return fmt.Errorf("download video segment: %w", err)
	}

	if err := p.Downloader.Download(ctx, plan.Audio.URL, audio); err != nil {
		return fmt.Errorf("download audio segment: %w", err)
	}

	return p.Muxer.MuxFiles(ctx, video, audio, part)
}

// segmentName names the local copy of a segment after its track, keeping the
// remote extension so the muxer can probe the container.
func segmentName(ref media.SegmentReference) string {
	ext := ".m4s"
	if u, err := url.Parse(ref.URL); err == nil && path.Ext(u.Path) != "" {
		ext = path.Ext(u.Path)
	}
	return string(ref.Track) + ext
}
