// Package remux combines elementary streams into a single container without
// re-encoding and publishes the result atomically.
package remux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/echodl/echodl/log"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Muxer is the external multiplexer.
type Muxer interface {
	// MuxFiles copies the streams of two local inputs into out.
	MuxFiles(ctx context.Context, video, audio, out string) error

	// MuxRemote lets the muxer fetch a remote input itself, sending headers
	// with every request, and copies its streams into out.
	MuxRemote(ctx context.Context, url string, headers http.Header, out string) error
}

// MuxError reports a muxer that exited unsuccessfully.
type MuxError struct {
	ExitCode int
	Stderr   string
}

func (e *MuxError) Error() string {
	msg := fmt.Sprintf("muxer exited with code %d", e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// maxStderr bounds the diagnostic output kept from a failed run.
const maxStderr = 2048

// FFmpeg runs ffmpeg with stream copy.
type FFmpeg struct {
	// Path of the executable.
	Path string
	// LogLevel passed as -loglevel.
	LogLevel string
	// Timeout bounds a single invocation. Zero means no limit.
	Timeout time.Duration
}

func (f *FFmpeg) MuxFiles(ctx context.Context, video, audio, out string) error {
	return f.run(ctx, SplitArgs(f.LogLevel, video, audio, out))
}

func (f *FFmpeg) MuxRemote(ctx context.Context, url string, headers http.Header, out string) error {
	return f.run(ctx, RemoteArgs(f.LogLevel, url, headers, out))
}

func (f *FFmpeg) run(ctx context.Context, args []string) error {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.Path, args...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Cancel = func() error { return killProcess(cmd) }
	cmd.WaitDelay = 5 * time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = nil
	cmd.Stdin = nil

	log.Debugf("running %s %s", f.Path, strings.Join(redact(args), " "))

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return fmt.Errorf("muxer interrupted: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &MuxError{
			ExitCode: exitErr.ExitCode(),
			Stderr:   tail(strings.TrimSpace(stderr.String()), maxStderr),
		}
	}

	return fmt.Errorf("start %s: %w", f.Path, err)
}

// SplitArgs builds the arguments that copy the video stream of one file and
// the audio stream of another into out.
func SplitArgs(logLevel, video, audio, out string) []string {
	return []string{
		"-y",
		"-loglevel", logLevel,
		"-i", video,
		"-i", audio,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c", "copy",
		"-f", "mp4",
		out,
	}
}

// RemoteArgs builds the arguments that read a remote input with the given
// request headers and copy its streams into out.
func RemoteArgs(logLevel, url string, headers http.Header, out string) []string {
	args := []string{
		"-y",
		"-loglevel", logLevel,
	}

	if len(headers) > 0 {
		args = append(args, "-headers", HeaderBlock(headers))
	}

	return append(args,
		"-i", url,
		"-c", "copy",
		"-f", "mp4",
		out,
	)
}

// HeaderBlock renders headers the way ffmpeg's -headers option expects them:
// one "Name: value" line per header, each terminated by CRLF, names sorted.
func HeaderBlock(headers http.Header) string {
	names := lo.Keys(headers)
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		for _, value := range headers[name] {
			fmt.Fprintf(&b, "%s: %s\r\n", name, value)
		}
	}
	return b.String()
}

// redact hides the header block, it carries the session cookie.
func redact(args []string) []string {
	redacted := slices.Clone(args)
	for i := 0; i < len(redacted)-1; i++ {
		if redacted[i] == "-headers" {
			redacted[i+1] = "<redacted>"
		}
	}
	return redacted
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "…" + s[len(s)-n:]
}
