// Package fs reads run logs from a mounted directory tree, typically a NAS
// share laid out as {date}/{feed}/{kind}/{region}/{file}
package fs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	perr "slotwatch/internal/platform/errors"
	"slotwatch/internal/platform/logger"

	"slotwatch/internal/core/runblock"
)

// Options configures the source
type Options struct {
	// Root is the directory the pack's dir templates are resolved against
	Root string
	// LinkBase overrides the root when building hyperlinks, e.g. a UNC path
	// or file:// prefix shown in rendered reports. Empty means use Root
	LinkBase string
}

// Source reads log files relative to a root directory
type Source struct {
	root     string
	linkBase string
}

// New builds a Source. Root must be non-empty; it is not required to exist
// yet since shares may mount late
func New(opt Options) (*Source, error) {
	root := strings.TrimSpace(opt.Root)
	if root == "" {
		return nil, perr.Configf("logsource: root directory is required")
	}
	lb := strings.TrimSpace(opt.LinkBase)
	if lb == "" {
		lb = root
	}
	return &Source{root: root, linkBase: lb}, nil
}

// ReadLines returns the file's lines with one-based positions. A missing or
// unreadable file is not an error: the run simply has not produced a usable
// log yet, so the caller sees zero lines and the slot keeps waiting
func (s *Source) ReadLines(ctx context.Context, rel string) ([]runblock.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.root, filepath.FromSlash(rel))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.C(ctx).Debug().Str("path", path).Msg("log not present yet")
			return nil, nil
		}
		logger.C(ctx).Warn().Err(err).Str("path", path).Msg("log unreadable, treating as absent")
		return nil, nil
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.C(ctx).Error().Err(cerr).Str("path", path).Msg("close log file")
		}
	}()

	var lines []runblock.Line
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	pos := 0
	for sc.Scan() {
		pos++
		lines = append(lines, runblock.Line{Pos: pos, Text: strings.TrimRight(sc.Text(), "\r")})
	}
	if err := sc.Err(); err != nil {
		logger.C(ctx).Warn().Err(err).Str("path", path).Msg("log unreadable, treating as absent")
		return nil, nil
	}
	return lines, nil
}

// Link builds the display path for a log file, suitable for report hyperlinks
func (s *Source) Link(rel string) string {
	if strings.Contains(s.linkBase, "\\") {
		// UNC style base keeps backslashes throughout
		return s.linkBase + "\\" + strings.ReplaceAll(rel, "/", "\\")
	}
	return filepath.ToSlash(filepath.Join(s.linkBase, filepath.FromSlash(rel)))
}
