// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version reports build information of the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"go.astrophena.name/mplcheck/syncx"
)

// Info describes the running binary.
type Info struct {
	Name      string `json:"name"`
	Module    string `json:"module,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// String formats i in a form suitable for the -version flag.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", i.Name)
	if i.Version != "" && i.Version != "(devel)" {
		fmt.Fprintf(&sb, " %s", i.Version)
	}
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&sb, " (%s", commit)
		if i.Modified {
			sb.WriteString(", modified")
		}
		sb.WriteString(")")
	}
	fmt.Fprintf(&sb, " built with %s for %s/%s\n", i.GoVersion, i.OS, i.Arch)
	return sb.String()
}

var info syncx.Lazy[Info]

// Version returns build information of the running binary.
func Version() Info { return info.Get(readInfo) }

// CmdName returns the name of the running command.
func CmdName() string { return Version().Name }

func readInfo() Info {
	i := Info{
		Name:      strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe"),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	i.Module = bi.Main.Path
	i.Version = bi.Main.Version
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			i.Commit = s.Value
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	return i
}
