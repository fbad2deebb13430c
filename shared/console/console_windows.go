//go:build windows

package console

import (
	"os"

	"golang.org/x/sys/windows"
)

// IsBlueBackground reports whether the console behind f has a blue
// background attribute.
func IsBlueBackground(f *os.File) bool {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(f.Fd()), &info); err != nil {
		return false
	}

	const backgroundBlue = 0x0010

	return info.Attributes&backgroundBlue != 0
}
