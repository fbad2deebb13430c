//go:build !windows

package console

import (
	"os"
	"strconv"
	"strings"
)

// IsBlueBackground reports whether the terminal advertises a blue background
// through COLORFGBG ("fg;bg"). f is unused outside Windows.
func IsBlueBackground(*os.File) bool {
	bg, ok := background(os.Getenv("COLORFGBG"))
	// ANSI 16-color backgrounds: 4 (blue) and 12 (bright blue).
	return ok && (bg == 4 || bg == 12)
}

func background(raw string) (int, bool) {
	parts := strings.Split(raw, ";")
	n, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return 0, false
	}
	return n, true
}
