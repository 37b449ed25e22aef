package generate

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/Mavwarf/iconset/internal/manifest"
	"github.com/Mavwarf/iconset/internal/paths"
)

// Report is the outcome of Verify.
type Report struct {
	Dir      string
	Entries  int
	Files    int // distinct files referenced
	Problems []string
}

// OK reports whether no problems were found.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

// Verify checks an existing icon set: the manifest parses, every entry
// names a file that exists, decodes as PNG, and has the edge length its
// slot requires. An unreadable manifest is an error; everything else is
// collected in the report.
func Verify(dir string) (*Report, error) {
	c, err := manifest.Read(filepath.Join(dir, paths.ManifestFileName))
	if err != nil {
		return nil, err
	}

	r := &Report{Dir: dir, Entries: len(c.Images)}
	if c.Info.Version != manifest.Version {
		r.Problems = append(r.Problems, fmt.Sprintf("info.version is %d, want %d", c.Info.Version, manifest.Version))
	}

	seen := map[string]bool{}
	for _, e := range c.Images {
		slot := describe(e)
		if e.Filename == "" {
			r.Problems = append(r.Problems, fmt.Sprintf("%s: no filename", slot))
			continue
		}
		if !seen[e.Filename] {
			seen[e.Filename] = true
			r.Files++
		}
		px, err := e.Pixels()
		if err != nil {
			r.Problems = append(r.Problems, err.Error())
			continue
		}
		w, h, err := pngSize(filepath.Join(dir, e.Filename))
		if err != nil {
			r.Problems = append(r.Problems, fmt.Sprintf("%s: %v", slot, err))
			continue
		}
		if w != px || h != px {
			r.Problems = append(r.Problems,
				fmt.Sprintf("%s: %s is %dx%d, want %dx%d", slot, e.Filename, w, h, px, px))
		}
	}
	return r, nil
}

func describe(e manifest.Entry) string {
	if e.Scale == "" {
		return e.Idiom + " " + e.Size
	}
	return e.Idiom + " " + e.Size + "@" + e.Scale
}

func pngSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg.Width, cfg.Height, nil
}
