// Package banner prints the ASCII title shown before long running commands.
package banner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/thirukguru/aws-list-all/shared/ansi"
	"github.com/thirukguru/aws-list-all/shared/console"
)

type bannerColor int

const (
	bannerAmazonOrange bannerColor = iota
	bannerSpotifyGreen
	bannerIBMBlue
	bannerTwitchPurple
	bannerYouTubeRed
	bannerWhite
)

var bannerTitleColors = []string{
	"\x1b[38;2;255;153;0m",   // Amazon Orange
	"\x1b[38;2;30;215;96m",   // Spotify Green
	"\x1b[38;2;15;98;254m",   // IBM Blue
	"\x1b[38;2;145;70;255m",  // Twitch Purple
	"\x1b[38;2;255;0;0m",     // YouTube Red
	"\x1b[38;2;255;255;255m", // White
}

var bannerTitleColorNames = []string{
	"AmazonOrange",
	"SpotifyGreen",
	"IBMBlue",
	"TwitchPurple",
	"YouTubeRed",
	"White",
}

const (
	bannerTitleColorDefault        = bannerAmazonOrange
	bannerTitleColorBlueBackground = bannerWhite
	bannerTitleColorEnv            = "AWS_LIST_ALL_BANNER_COLOR"
)

var titleLines = []string{
	"  █████╗  ██╗    ██╗ ███████╗        ██╗      ██╗ ███████╗ ████████╗         █████╗  ██╗      ██╗",
	" ██╔══██╗ ██║    ██║ ██╔════╝        ██║      ██║ ██╔════╝ ╚══██╔══╝        ██╔══██╗ ██║      ██║",
	" ███████║ ██║ █╗ ██║ ███████╗ █████╗ ██║      ██║ ███████╗    ██║    █████╗ ███████║ ██║      ██║",
	" ██╔══██║ ██║███╗██║ ╚════██║ ╚════╝ ██║      ██║ ╚════██║    ██║    ╚════╝ ██╔══██║ ██║      ██║",
	" ██║  ██║ ╚███╔███╔╝ ███████║        ███████╗ ██║ ███████║    ██║           ██║  ██║ ███████╗ ███████╗",
	" ╚═╝  ╚═╝  ╚══╝╚══╝  ╚══════╝        ╚══════╝ ╚═╝ ╚══════╝    ╚═╝           ╚═╝  ╚═╝ ╚══════╝ ╚══════╝",
}

func printCenteredLines(w io.Writer, lines []string, width int) {
	for _, line := range lines {
		if pad := (width - utf8.RuneCountInString(line)) / 2; pad > 0 {
			fmt.Fprint(w, strings.Repeat(" ", pad))
		}
		fmt.Fprintln(w, line)
	}
}

func bannerTitleColor(f *os.File) bannerColor {
	if color, ok := bannerTitleColorFromEnv(os.Getenv(bannerTitleColorEnv)); ok {
		return color
	}
	if console.IsBlueBackground(f) {
		return bannerTitleColorBlueBackground
	}
	return bannerTitleColorDefault
}

func bannerTitleColorFromEnv(raw string) (bannerColor, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for idx, name := range bannerTitleColorNames {
		if strings.EqualFold(raw, name) || raw == bannerTitleColors[idx] {
			return bannerColor(idx), true
		}
	}
	return 0, false
}

// DrawBannerTitle prints the application title banner to f when it is a
// terminal.
func DrawBannerTitle(f *os.File) {
	if !console.IsInteractive(f) {
		return
	}
	ansi.EnableANSI(f)

	fmt.Fprint(f, bannerTitleColors[bannerTitleColor(f)])
	printCenteredLines(f, titleLines, console.Width(f, 80))
	fmt.Fprint(f, "\x1b[0m")
}
