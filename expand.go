package nanocov

import (
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading ~/ to the caller's home directory. Paths in
// run tickets are routinely pasted with ~ intact.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	usr, err := user.Current()
	if err != nil {
		return path
	}

	return filepath.Join(usr.HomeDir, path[2:])
}
