package util

import "fmt"

// HumanReadableSize formats a byte count as B/KB/MB/GB/TB.
func HumanReadableSize(size int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
	)

	switch {
	case size < kb:
		return fmt.Sprintf("%d B", size)
	case size < mb:
		return fmt.Sprintf("%.1f KB", float64(size)/kb)
	case size < gb:
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	case size < tb:
		return fmt.Sprintf("%.1f GB", float64(size)/gb)
	default:
		return fmt.Sprintf("%.1f TB", float64(size)/tb)
	}
}
