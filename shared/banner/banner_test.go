package banner

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBannerTitleColorFromEnv(t *testing.T) {
	tests := []struct {
		raw  string
		want bannerColor
		ok   bool
	}{
		{"", 0, false},
		{"spotifygreen", bannerSpotifyGreen, true},
		{" White ", bannerWhite, true},
		{bannerTitleColors[bannerIBMBlue], bannerIBMBlue, true},
		{"Chartreuse", 0, false},
	}
	for _, tc := range tests {
		got, ok := bannerTitleColorFromEnv(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%q: got (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPrintCenteredLines(t *testing.T) {
	var buf bytes.Buffer
	printCenteredLines(&buf, []string{"██"}, 6)
	if buf.String() != "  ██\n" {
		t.Fatalf("unexpected centering %q", buf.String())
	}

	buf.Reset()
	printCenteredLines(&buf, titleLines, 10)
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if strings.HasPrefix(line, " ") && utf8.RuneCountInString(line) > 110 {
			t.Fatalf("narrow terminals must not be padded: %q", line)
		}
	}
}
