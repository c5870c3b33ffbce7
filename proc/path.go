package proc

import (
	"os"
	"path/filepath"
)

// PrependPathEntry returns list with dir in front, unless dir is already
// one of its entries. The result is stable when applied repeatedly.
func PrependPathEntry(list, dir string) string {
	if dir == "" {
		return list
	}
	for _, entry := range filepath.SplitList(list) {
		if filepath.Clean(entry) == filepath.Clean(dir) {
			return list
		}
	}
	if list == "" {
		return dir
	}
	return dir + string(os.PathListSeparator) + list
}

// EnsureSearchPath makes sure dir is on the process PATH so executables
// installed there (e.g. an msys2 gphoto2 build) resolve by name.
// Safe to call any number of times.
func EnsureSearchPath(dir string) error {
	current := os.Getenv("PATH")
	updated := PrependPathEntry(current, dir)
	if updated == current {
		return nil
	}
	return os.Setenv("PATH", updated)
}
