package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppDirName       = "iconset"
	ConfigFileName   = "iconset-config.json"
	ManifestFileName = "Contents.json"
	HistoryDBName    = "history.db"
	HistoryLogName   = "history.log"
	DefaultOutputDir = "AppIcon.appiconset"
	DirPerm          = 0755
	FilePerm         = 0644
)

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// NotWritableError reports an output directory that cannot receive files.
type NotWritableError struct {
	Dir string
	Err error
}

func (e *NotWritableError) Error() string {
	return fmt.Sprintf("directory %s is not writable: %v", e.Dir, e.Err)
}

func (e *NotWritableError) Unwrap() error { return e.Err }

// CheckWritable returns a *NotWritableError if dir is missing, is not a
// directory, or the current user cannot create files in it.
func CheckWritable(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return &NotWritableError{Dir: dir, Err: err}
	}
	if !fi.IsDir() {
		return &NotWritableError{Dir: dir, Err: fmt.Errorf("not a directory")}
	}
	if err := canWrite(dir); err != nil {
		return &NotWritableError{Dir: dir, Err: err}
	}
	return nil
}

// DataDir returns the platform-specific data directory for iconset:
//   - Windows: %APPDATA%\iconset
//   - Unix:    ~/.config/iconset
//
// Falls back to os.TempDir()/iconset if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
