package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Mavwarf/iconset/internal/paths"
)

// FileStore implements Store using a flat log file. Each run is a summary
// line followed by one indented line per file, with a blank line between
// runs:
//
//	2026-10-18T09:12:01Z  dir="AppIcon.appiconset"  files=12  elapsed=840ms  status=ok
//	2026-10-18T09:12:01Z    file[1] icon_20x20.png  size=20  bytes=611  sha256=1f0c…
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Log(r Run) error {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
	if err != nil {
		return err
	}

	var b strings.Builder
	ts := r.Time.Format(time.RFC3339)
	fmt.Fprintf(&b, "%s  dir=%q  files=%d  elapsed=%s  status=%s",
		ts, r.OutputDir, len(r.Files), r.Elapsed, r.Status())
	if !r.OK() {
		fmt.Fprintf(&b, "  error=%q", r.Err)
	}
	b.WriteByte('\n')
	for i, fr := range r.Files {
		fmt.Fprintf(&b, "%s    file[%d] %s  size=%d  bytes=%d  sha256=%s\n",
			ts, i+1, fr.Name, fr.Size, fr.Bytes, fr.SHA256)
	}
	b.WriteByte('\n')

	// One write per run keeps concurrent appenders from interleaving lines.
	_, err = file.WriteString(b.String())
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

func (f *FileStore) Runs(limit int) ([]Run, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	runs := ParseRuns(string(data))
	// Oldest first on disk.
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Close() error { return nil }

// ParseRuns reads log content back into runs, oldest first. Blocks whose
// summary line is malformed are skipped, as are unparseable file lines.
func ParseRuns(content string) []Run {
	content = strings.TrimRight(content, "\n\r ")
	if content == "" {
		return nil
	}

	var runs []Run
	for _, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		r, ok := parseSummary(lines[0])
		if !ok {
			continue
		}
		for _, line := range lines[1:] {
			if fr, ok := parseFile(line); ok {
				r.Files = append(r.Files, fr)
			}
		}
		runs = append(runs, r)
	}
	return runs
}

func parseSummary(line string) (Run, bool) {
	ts, rest, ok := strings.Cut(line, "  ")
	if !ok {
		return Run{}, false
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return Run{}, false
	}
	kv := fields(rest)
	status, ok := kv["status"]
	if !ok {
		return Run{}, false
	}
	r := Run{Time: t, OutputDir: kv["dir"], Err: kv["error"]}
	if d, err := time.ParseDuration(kv["elapsed"]); err == nil {
		r.Elapsed = d
	}
	if status != "ok" && r.Err == "" {
		r.Err = "unknown error"
	}
	return r, true
}

func parseFile(line string) (FileRecord, bool) {
	_, rest, ok := strings.Cut(line, "    file[")
	if !ok {
		return FileRecord{}, false
	}
	_, rest, ok = strings.Cut(rest, "] ")
	if !ok {
		return FileRecord{}, false
	}
	name, rest, ok := strings.Cut(rest, "  ")
	if !ok {
		return FileRecord{}, false
	}
	kv := fields(rest)
	size, err1 := strconv.Atoi(kv["size"])
	n, err2 := strconv.Atoi(kv["bytes"])
	if err1 != nil || err2 != nil {
		return FileRecord{}, false
	}
	return FileRecord{Name: name, Size: size, Bytes: n, SHA256: kv["sha256"]}, true
}

// fields splits "k=v  k2=\"quoted v\"" into a map. Quoted values are Go
// string literals.
func fields(s string) map[string]string {
	kv := map[string]string{}
	for s = strings.TrimLeft(s, " "); s != ""; s = strings.TrimLeft(s, " ") {
		key, rest, ok := strings.Cut(s, "=")
		if !ok {
			break
		}
		var val string
		if strings.HasPrefix(rest, `"`) {
			q, err := strconv.QuotedPrefix(rest)
			if err != nil {
				break
			}
			val, _ = strconv.Unquote(q)
			rest = rest[len(q):]
		} else {
			end := strings.IndexByte(rest, ' ')
			if end < 0 {
				end = len(rest)
			}
			val, rest = rest[:end], rest[end:]
		}
		kv[key] = val
		s = rest
	}
	return kv
}
