package paths

import (
	"os"

	"golang.org/x/sys/windows"
)

// canWrite rejects a directory carrying the read-only attribute, then
// probes it by creating and removing a temporary file. ACLs, not the
// attribute, usually decide whether the probe succeeds.
func canWrite(dir string) error {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	if attrs&windows.FILE_ATTRIBUTE_READONLY != 0 {
		return windows.ERROR_ACCESS_DENIED
	}
	f, err := os.CreateTemp(dir, ".iconset-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
