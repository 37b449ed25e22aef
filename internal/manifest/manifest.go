// Package manifest describes the iOS AppIcon slots and reads and writes the
// asset catalog's Contents.json. The slot table is the single source of
// truth: the set of sizes to render is derived from it.
package manifest

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Mavwarf/iconset/internal/paths"
)

const (
	Author   = "xcode"
	Version  = 1
	Platform = "ios"
)

// Idioms used by the slot table.
const (
	IdiomUniversal = "universal"
	IdiomIPhone    = "iphone"
	IdiomIPad      = "ipad"
)

// Entry is one image reference in Contents.json. Field order is the
// serialised key order.
type Entry struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Platform string `json:"platform,omitempty"`
	Scale    string `json:"scale,omitempty"`
	Size     string `json:"size"`
}

// Info is the metadata block Xcode expects.
type Info struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

// Contents is the whole Contents.json document.
type Contents struct {
	Images []Entry `json:"images"`
	Info   Info    `json:"info"`
}

// Slot is one icon slot: an idiom, a size in points and a display scale.
// Scale 0 marks the single-size universal slot, which is given in pixels.
type Slot struct {
	Idiom  string
	Points float64
	Scale  int
}

// Pixels returns the edge length of the image that fills the slot.
func (s Slot) Pixels() int {
	if s.Scale == 0 {
		return int(math.Round(s.Points))
	}
	return int(math.Round(s.Points * float64(s.Scale)))
}

// Entry returns the Contents.json entry for the slot.
func (s Slot) Entry() Entry {
	e := Entry{
		Filename: Filename(s.Pixels()),
		Idiom:    s.Idiom,
		Platform: Platform,
		Size:     sizeString(s.Points),
	}
	if s.Scale != 0 {
		e.Scale = fmt.Sprintf("%dx", s.Scale)
	}
	return e
}

func (s Slot) String() string {
	if s.Scale == 0 {
		return fmt.Sprintf("%s %s", s.Idiom, sizeString(s.Points))
	}
	return fmt.Sprintf("%s %s@%dx", s.Idiom, strconv.FormatFloat(s.Points, 'g', -1, 64), s.Scale)
}

func sizeString(points float64) string {
	p := strconv.FormatFloat(points, 'g', -1, 64)
	return p + "x" + p
}

// slots is the iOS app icon slot table.
var slots = []Slot{
	{IdiomUniversal, 1024, 0},

	{IdiomIPhone, 20, 2},
	{IdiomIPhone, 20, 3},
	{IdiomIPhone, 29, 1},
	{IdiomIPhone, 29, 2},
	{IdiomIPhone, 29, 3},
	{IdiomIPhone, 40, 1},
	{IdiomIPhone, 40, 2},
	{IdiomIPhone, 40, 3},
	{IdiomIPhone, 60, 2},
	{IdiomIPhone, 60, 3},

	{IdiomIPad, 20, 1},
	{IdiomIPad, 20, 2},
	{IdiomIPad, 29, 1},
	{IdiomIPad, 29, 2},
	{IdiomIPad, 40, 1},
	{IdiomIPad, 40, 2},
	{IdiomIPad, 76, 2},
	{IdiomIPad, 83.5, 2},
}

// Slots returns a copy of the slot table in manifest order.
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// Filename returns the conventional file name for a px×px icon.
func Filename(px int) string {
	return fmt.Sprintf("icon_%dx%d.png", px, px)
}

// Default returns the manifest for the full slot table.
func Default() Contents {
	c := Contents{
		Images: make([]Entry, 0, len(slots)),
		Info:   Info{Author: Author, Version: Version},
	}
	for _, s := range slots {
		c.Images = append(c.Images, s.Entry())
	}
	return c
}

// Pixels parses the entry's size and scale and returns the required edge
// length in pixels. A missing scale counts as 1x.
func (e Entry) Pixels() (int, error) {
	w, h, ok := strings.Cut(e.Size, "x")
	if !ok {
		return 0, fmt.Errorf("manifest: %s: invalid size %q", e.Filename, e.Size)
	}
	wv, err1 := strconv.ParseFloat(w, 64)
	hv, err2 := strconv.ParseFloat(h, 64)
	if err1 != nil || err2 != nil || wv <= 0 || wv != hv {
		return 0, fmt.Errorf("manifest: %s: invalid size %q", e.Filename, e.Size)
	}
	scale := 1
	if e.Scale != "" {
		n, err := strconv.Atoi(strings.TrimSuffix(e.Scale, "x"))
		if err != nil || n < 1 || !strings.HasSuffix(e.Scale, "x") {
			return 0, fmt.Errorf("manifest: %s: invalid scale %q", e.Filename, e.Scale)
		}
		scale = n
	}
	return int(math.Round(wv * float64(scale))), nil
}

// Sizes returns the distinct pixel sizes the manifest needs, ascending.
func Sizes(c Contents) ([]int, error) {
	seen := map[int]bool{}
	var out []int
	for _, e := range c.Images {
		px, err := e.Pixels()
		if err != nil {
			return nil, err
		}
		if !seen[px] {
			seen[px] = true
			out = append(out, px)
		}
	}
	sort.Ints(out)
	return out, nil
}

// Marshal encodes c as indented JSON with a trailing newline.
func Marshal(c Contents) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("manifest: marshal: %w", err)
	}
	return append(data, '\n'), nil
}

// Write replaces dir/Contents.json with c and returns the file path. The
// write goes through a temporary file so readers never see a partial
// document.
func Write(dir string, c Contents) (string, error) {
	data, err := Marshal(c)
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, paths.ManifestFileName)
	if err := paths.AtomicWrite(p, data); err != nil {
		return "", fmt.Errorf("manifest: writing %s: %w", p, err)
	}
	return p, nil
}

// Read parses the manifest at path.
func Read(path string) (Contents, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Contents{}, fmt.Errorf("manifest: %w", err)
	}
	var c Contents
	if err := json.Unmarshal(data, &c); err != nil {
		return Contents{}, fmt.Errorf("manifest: parsing %s: %w", path, err)
	}
	return c, nil
}

// MissingFilesError lists manifest filenames with no produced file.
type MissingFilesError struct {
	Files []string
}

func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("manifest references files that are not produced: %s", strings.Join(e.Files, ", "))
}

// Validate checks that every filename in c is among produced.
func Validate(c Contents, produced []string) error {
	have := make(map[string]bool, len(produced))
	for _, p := range produced {
		have[p] = true
	}
	var missing []string
	reported := map[string]bool{}
	for _, e := range c.Images {
		if e.Filename == "" || have[e.Filename] || reported[e.Filename] {
			continue
		}
		reported[e.Filename] = true
		missing = append(missing, e.Filename)
	}
	if len(missing) > 0 {
		return &MissingFilesError{Files: missing}
	}
	return nil
}
