// Package scan lists the chunk types found in PNG files.
//
// Each file is walked with internal/png, so only chunk framing is read and
// every chunk type passes through chunktype.FromBytes. Files are independent:
// a corrupt or missing file is reported in its entry and the run continues
// with the next one.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/jpl-au/pngchunk/chunktype"
	"github.com/jpl-au/pngchunk/internal/check"
	"github.com/jpl-au/pngchunk/internal/format"
	"github.com/jpl-au/pngchunk/internal/glob"
	"github.com/jpl-au/pngchunk/internal/png"
	"github.com/jpl-au/pngchunk/internal/progress"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrFailed is returned when at least one file could not be scanned.
	ErrFailed = errors.New("scan failed")
	// ErrNoMatch is recorded for a glob pattern that matched no files.
	ErrNoMatch = errors.New("no files match pattern")
)

// Options controls a scan.
type Options struct {
	// Ignore lists chunk types to leave out of the output.
	Ignore []chunktype.ChunkType
	// MaxChunks stops listing a file after this many chunks (0 = no limit).
	MaxChunks int
	// RequireValid fails a file containing a chunk type whose reserved bit
	// is not set. Ignored types are skipped before this check.
	RequireValid bool
	// Workers caps how many files are read at once (0 = one per CPU).
	Workers int
}

// Chunk is one listed chunk.
type Chunk struct {
	png.Header
	Flags chunktype.Flags `json:"flags"`
}

// File is the outcome for one file.
type File struct {
	Path      string  `json:"path"`
	Chunks    []Chunk `json:"chunks"`
	Ignored   int     `json:"ignored,omitempty"`
	Truncated bool    `json:"truncated,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// Result contains the outcome of a scan.
type Result struct {
	Files  []File `json:"files"`
	Failed int    `json:"failed"`
}

// Run scans every file matched by patterns, writing a table per file to w.
// Files are read concurrently (up to Options.Workers at a time) but reported
// in argument order, with a pattern that fails to expand reported in its
// place among the files.
// Returns ErrFailed (wrapped with the count) if any file failed, or the
// context error if ctx is cancelled.
func Run(ctx context.Context, w io.Writer, patterns []string, opts Options) (Result, error) {
	var result Result

	// One slot per matched path or per failed pattern. slotOf maps each
	// entry of paths to its slot.
	var (
		slots  []File
		failed []bool
		paths  []string
		slotOf []int
	)
	for _, p := range patterns {
		matches, err := expand(p)
		if err == nil && len(matches) == 0 {
			err = ErrNoMatch
		}
		if err != nil {
			slots = append(slots, File{Path: p, Error: err.Error()})
			failed = append(failed, true)
			continue
		}
		for _, m := range matches {
			slotOf = append(slotOf, len(slots))
			slots = append(slots, File{Path: m})
			failed = append(failed, false)
			paths = append(paths, m)
		}
	}

	files, err := scanAll(ctx, paths, opts)
	if err != nil {
		return result, err
	}
	for i, f := range files {
		slots[slotOf[i]] = f
	}

	for i, f := range slots {
		result.Files = append(result.Files, f)
		if f.Error != "" {
			result.Failed++
		}

		if failed[i] {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s: error: %s\n", f.Path, f.Error)
			continue
		}

		if len(patterns) > 1 || len(paths) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			format.Heading(w, f.Path)
		}
		headers := make([]png.Header, len(f.Chunks))
		for j, c := range f.Chunks {
			headers[j] = c.Header
		}
		format.Chunks(w, headers)
		if f.Ignored > 0 {
			fmt.Fprintf(w, "(%d ignored)\n", f.Ignored)
		}
		if f.Truncated {
			fmt.Fprintf(w, "(stopped after %d chunks)\n", opts.MaxChunks)
		}
		if f.Error != "" {
			fmt.Fprintf(w, "%s: error: %s\n", f.Path, f.Error)
		}
	}

	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d files", ErrFailed, result.Failed, len(result.Files))
	}
	return result, nil
}

// scanAll scans paths on a bounded errgroup. A per-file failure is recorded
// in that File; only cancellation stops the group.
func scanAll(ctx context.Context, paths []string, opts Options) ([]File, error) {
	files := make([]File, len(paths))

	prog := progress.New("Scanning", len(paths))
	defer prog.Done()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := One(gctx, p, opts)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			files[i] = f
			prog.Increment(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// One scans a single file. The returned File holds every chunk read
// before any error, and its Error field mirrors the returned error.
func One(ctx context.Context, p string, opts Options) (File, error) {
	file := File{Path: p, Chunks: []Chunk{}}

	err := scanFile(ctx, &file, p, opts)
	if err != nil {
		file.Error = err.Error()
	}
	return file, err
}

func scanFile(ctx context.Context, file *File, p string, opts Options) error {
	fh, err := os.Open(filepath.FromSlash(p))
	if err != nil {
		return err
	}
	defer fh.Close()

	r, err := png.NewReader(fh)
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		h, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if slices.Contains(opts.Ignore, h.Type) {
			file.Ignored++
			continue
		}
		if opts.RequireValid && !h.Type.IsValid() {
			return fmt.Errorf("chunk at offset %d: %s: %w", h.Offset, h.Type, check.ErrReservedBit)
		}
		if opts.MaxChunks > 0 && len(file.Chunks) >= opts.MaxChunks {
			file.Truncated = true
			return nil
		}
		file.Chunks = append(file.Chunks, Chunk{Header: h, Flags: h.Type.Flags()})
	}
}

// expand resolves a pattern to file paths. Literal paths are returned
// unchanged; glob patterns are expanded relative to their leading static
// directory so absolute patterns work too.
func expand(pattern string) ([]string, error) {
	if !glob.HasMeta(pattern) {
		return []string{pattern}, nil
	}

	dir, rest := splitStatic(filepath.ToSlash(pattern))
	matches, err := glob.Expand(os.DirFS(filepath.FromSlash(dir)), rest)
	if err != nil {
		return nil, err
	}
	if dir == "." {
		return matches, nil
	}
	for i, m := range matches {
		matches[i] = path.Join(dir, m)
	}
	return matches, nil
}

// splitStatic splits a slash pattern at its first segment containing a
// metacharacter: "/img/**/*.png" -> "/img", "**/*.png".
func splitStatic(pattern string) (dir, rest string) {
	segments := strings.Split(pattern, "/")
	i := 0
	for i < len(segments)-1 && !glob.HasMeta(segments[i]) {
		i++
	}
	dir = strings.Join(segments[:i], "/")
	switch {
	case dir == "" && strings.HasPrefix(pattern, "/"):
		dir = "/"
	case dir == "":
		dir = "."
	}
	return dir, strings.Join(segments[i:], "/")
}
