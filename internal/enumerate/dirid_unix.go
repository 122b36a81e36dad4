//go:build unix

package enumerate

import (
	"fmt"
	"os"
	"syscall"
)

// dirIDFor identifies a directory across symlinks by device and inode.
func dirIDFor(path string, fi os.FileInfo) (dirID, bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fallbackDirID(path)
	}
	return dirID(fmt.Sprintf("%d:%d", uint64(st.Dev), uint64(st.Ino))), true
}
