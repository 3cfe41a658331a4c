// Package validate checks that published videos can actually be read back.
package validate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/echodl/echodl/constant"
	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/log"
	"github.com/spf13/afero"
)

// Checker decides whether a single video file is readable.
type Checker interface {
	Check(ctx context.Context, path string) error
}

// InvalidError reports a file the checker rejected.
type InvalidError struct {
	ExitCode int
	Stderr   string
}

func (e *InvalidError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("check exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("check exited with code %d: %s", e.ExitCode, e.Stderr)
}

// FFmpeg checks files with ffprobe or a full ffmpeg decode.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
	// MetadataOnly reads the container duration instead of decoding every frame.
	MetadataOnly bool
	// HWAccel lets ffmpeg pick a hardware decoder. Ignored with MetadataOnly.
	HWAccel bool
}

// ProbeArgs reads only the container duration.
func ProbeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}

// DecodeArgs decodes the whole file and discards the frames.
func DecodeArgs(path string, hwaccel bool) []string {
	args := []string{"-v", "error"}
	if hwaccel {
		args = append(args, "-hwaccel", "auto")
	}
	return append(args, "-i", path, "-f", "null", "-")
}

func (f *FFmpeg) Check(ctx context.Context, path string) error {
	if f.MetadataOnly {
		return run(ctx, f.FFprobePath, ProbeArgs(path))
	}
	return run(ctx, f.FFmpegPath, DecodeArgs(path, f.HWAccel))
}

func run(ctx context.Context, name string, args []string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	log.Debugf("running %s %s", name, strings.Join(args, " "))

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &InvalidError{
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}

	return fmt.Errorf("start %s: %w", name, err)
}

// File is a video found under the validated directory.
type File struct {
	Path string
	Size int64
	// Err is set once the file has been rejected.
	Err error
}

// Files lists every video under root, in lexical order.
func Files(root string) ([]File, error) {
	var files []File

	err := afero.Walk(filesystem.API(), root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), constant.VideoExt) {
			return nil
		}

		files = append(files, File{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// Validator checks every video under a directory.
type Validator struct {
	Checker Checker
	// OnFile, if set, is called before a file is checked.
	OnFile func(File)
}

// Validate returns the files under root the checker rejected. A file that
// fails does not stop the walk; only cancelling ctx does.
func (v *Validator) Validate(ctx context.Context, root string) ([]File, error) {
	files, err := Files(root)
	if err != nil {
		return nil, err
	}

	var invalid []File
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return invalid, err
		}

		if v.OnFile != nil {
			v.OnFile(file)
		}

		if err := v.Checker.Check(ctx, file.Path); err != nil {
			file.Err = err
			log.ErrorWith(log.Fields{"path": file.Path, "size": file.Size}, "invalid video", err)
			invalid = append(invalid, file)
		}
	}

	return invalid, nil
}
