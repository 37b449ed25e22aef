// Package generate renders every icon an asset catalog needs and writes the
// manifest that maps them to slots.
package generate

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/iconset/internal/icon"
	"github.com/Mavwarf/iconset/internal/manifest"
	"github.com/Mavwarf/iconset/internal/paths"
)

// File describes one written icon.
type File struct {
	Name   string
	Path   string
	Size   int // edge length in pixels
	Bytes  int
	SHA256 string
}

// Options controls a run. Zero Style and empty Contents mean the defaults.
type Options struct {
	OutputDir string
	Style     icon.Style
	Contents  manifest.Contents

	// Progress is called after each icon is written.
	Progress func(f File, done, total int)
}

// Result summarises a run. On failure it holds the files written before
// the error.
type Result struct {
	OutputDir string
	Manifest  string
	Files     []File
	Started   time.Time
	Elapsed   time.Duration
}

// Run renders one PNG per distinct pixel size the manifest needs, in
// ascending order, then writes the manifest. The first error stops the run;
// files already written stay. The manifest is written last and atomically,
// so it is either absent, the previous version, or complete.
func Run(opts Options) (*Result, error) {
	if opts.Style == (icon.Style{}) {
		opts.Style = icon.DefaultStyle()
	}
	if len(opts.Contents.Images) == 0 {
		opts.Contents = manifest.Default()
	}

	res := &Result{OutputDir: opts.OutputDir, Started: time.Now()}
	defer func() { res.Elapsed = time.Since(res.Started) }()

	sizes, err := manifest.Sizes(opts.Contents)
	if err != nil {
		return res, err
	}
	names := make([]string, len(sizes))
	for i, px := range sizes {
		names[i] = manifest.Filename(px)
	}
	if err := manifest.Validate(opts.Contents, names); err != nil {
		return res, err
	}

	if err := os.MkdirAll(opts.OutputDir, paths.DirPerm); err != nil {
		return res, &paths.NotWritableError{Dir: opts.OutputDir, Err: err}
	}
	if err := paths.CheckWritable(opts.OutputDir); err != nil {
		return res, err
	}

	for i, px := range sizes {
		f, err := writeIcon(opts.OutputDir, px, opts.Style)
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, f)
		if opts.Progress != nil {
			opts.Progress(f, i+1, len(sizes))
		}
	}

	p, err := manifest.Write(opts.OutputDir, opts.Contents)
	if err != nil {
		return res, err
	}
	res.Manifest = p
	return res, nil
}

// Encode renders a px×px icon and returns it PNG-encoded.
func Encode(px int, st icon.Style) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, icon.DrawStyle(px, st)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeIcon(dir string, px int, st icon.Style) (File, error) {
	name := manifest.Filename(px)
	p := filepath.Join(dir, name)

	data, err := Encode(px, st)
	if err != nil {
		return File{}, fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := paths.AtomicWrite(p, data); err != nil {
		return File{}, fmt.Errorf("writing %s: %w", p, err)
	}

	sum := sha256.Sum256(data)
	return File{
		Name:   name,
		Path:   p,
		Size:   px,
		Bytes:  len(data),
		SHA256: hex.EncodeToString(sum[:]),
	}, nil
}
