package htmloutput

import (
	"fmt"
	"path/filepath"

	"github.com/thirukguru/aws-list-all/shared/fileutil"
)

// DefaultReportName is the file name used when no report name is given.
const DefaultReportName = "aws_list_all.html"

// WriteHTMLReport renders data into dir/name and returns the written path.
// The file is replaced atomically.
func WriteHTMLReport(dir, name string, data ReportData) (string, error) {
	html, err := GenerateHTMLReport(data)
	if err != nil {
		return "", fmt.Errorf("failed to generate HTML report: %w", err)
	}

	if dir == "" {
		dir = "."
	}
	if name == "" {
		name = DefaultReportName
	}
	path := filepath.Join(dir, name)
	if err := fileutil.WriteFileAtomic(path, []byte(html)); err != nil {
		return "", fmt.Errorf("failed to write HTML file: %w", err)
	}
	return path, nil
}
