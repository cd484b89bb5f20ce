// Package buildinfo carries version metadata stamped at link time, e.g.
// -ldflags "-X github.com/mingpan/mingpan/internal/buildinfo.Version=v0.3.0".
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("mingpan %s (commit=%s, date=%s, %s)", Version, Commit, Date, runtime.Version())
}
