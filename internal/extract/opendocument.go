package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// odContentPath is the main content stream inside OpenDocument packages.
const odContentPath = "content.xml"

// OpenDocument text carriers, with optional attributes. Separate patterns
// keep opening and closing tags paired.
var (
	odTextP    = regexp.MustCompile(`<text:p[^>]*>([^<]*)</text:p>`)
	odTextSpan = regexp.MustCompile(`<text:span[^>]*>([^<]*)</text:span>`)
	odTextH    = regexp.MustCompile(`<text:h[^>]*>([^<]*)</text:h>`)
)

// extractOpenDocument pulls text from the content.xml stream shared by
// OpenDocument text (.odt), presentation (.odp), and spreadsheet (.ods)
// packages. Paragraphs come first, then spans, then headings.
func extractOpenDocument(content []byte) (string, error) {
	zr, err := openZip(content, "opendocument")
	if err != nil {
		return "", err
	}
	var xml []byte
	for _, f := range zr.File {
		if f.Name != odContentPath {
			continue
		}
		xml, err = readEntry(f)
		if err != nil {
			return "", fmt.Errorf("extract opendocument: read %s: %w", f.Name, err)
		}
		break
	}
	if xml == nil {
		return "", fmt.Errorf("extract opendocument: %s not found", odContentPath)
	}
	var b strings.Builder
	collectRuns(&b, odTextP, xml)
	collectRuns(&b, odTextSpan, xml)
	collectRuns(&b, odTextH, xml)
	return b.String(), nil
}
