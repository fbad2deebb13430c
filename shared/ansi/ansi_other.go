//go:build !windows

package ansi

import "os"

// EnableANSI is a no-op outside Windows, where terminals handle escape
// sequences already.
func EnableANSI(*os.File) {
}
