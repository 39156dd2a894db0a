// Package buildinfo reports which build of a tool produced an output, so a
// coverage report pasted into a ticket can be traced back to a commit.
package buildinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type Info struct {
	Module    string
	GoVersion string
	Commit    string
	BuildTime string
	Dirty     bool
}

func (i Info) String() string {
	dirty := ""
	if i.Dirty {
		dirty = " (working tree was dirty)"
	}
	return fmt.Sprintf("%s built with %s from commit %s at %s%s", i.Module, i.GoVersion, i.Commit, i.BuildTime, dirty)
}

// Get extracts version control details stamped into the binary.
func Get() Info {
	out := Info{}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Module = bi.Path
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.BuildTime = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

// LogToStderr prints the build info where it lands in run logs but not in
// the report itself.
func LogToStderr() {
	fmt.Fprintln(os.Stderr, Get())
}
