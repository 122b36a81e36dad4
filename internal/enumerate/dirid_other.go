//go:build !unix

package enumerate

import "os"

func dirIDFor(path string, fi os.FileInfo) (dirID, bool) {
	return fallbackDirID(path)
}
