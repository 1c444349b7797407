package builtins

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/antibyte/endbasic-core/pkg/host"
)

// canonicalStoreName upper-cases name and appends the ".BAS" suffix if
// missing, matching the real EndBASIC Store's canonicalization rule
// (original_source/web/src/store.rs): stored program names are always
// upper-case and always carry the suffix, regardless of how the caller
// typed DEL/LOAD/SAVE/RUN's argument.
func canonicalStoreName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasSuffix(upper, ".BAS") {
		upper += ".BAS"
	}
	return upper
}

// formatDirEntry renders one DIR line: name, human-readable size, and a
// relative modification time, the way an interactive DIR command should
// read rather than dumping raw byte counts and Unix timestamps.
func formatDirEntry(info host.ProgramInfo) string {
	when := time.Unix(info.ModTime, 0)
	return fmt.Sprintf("%-20s %8s  %s", info.Name, humanize.Bytes(uint64(info.Size)), humanize.Time(when))
}

// humanizeCount renders the trailing "N File(s)" summary line DIR ends
// with.
func humanizeCount(n int) string {
	noun := "File"
	if n != 1 {
		noun = "Files"
	}
	return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), noun)
}
