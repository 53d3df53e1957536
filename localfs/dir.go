package localfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DirExists returns true if a directory is present at path.
//
// It returns false without an error if nothing exists at path. It returns an
// error if something other than a directory exists there, or if the path
// cannot be examined.
func DirExists(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if !fi.IsDir() {
		return false, fmt.Errorf("the \"%s\" path exists but it is not a directory", path)
	}
	return true, nil
}

// FileExists returns true if a regular file is present at path.
func FileExists(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if !fi.Mode().IsRegular() {
		return false, fmt.Errorf("the \"%s\" path exists but it is not a regular file", path)
	}
	return true, nil
}
