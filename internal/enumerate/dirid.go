package enumerate

import "path/filepath"

// dirID identifies a directory independently of the path it was reached
// through, so symlink cycles terminate.
type dirID string

// fallbackDirID resolves symlinks in the path and uses the result as the
// identity. Weaker than device+inode (bind mounts alias), but still bounds
// traversal.
func fallbackDirID(path string) (dirID, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	return dirID(resolved), true
}
