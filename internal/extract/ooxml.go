package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// OOXML text carriers: <w:t> runs in WordprocessingML, <a:t> runs in
// DrawingML slides. Attributes allowed, nested markup not.
var (
	wtRun = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	atRun = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)
)

// openZip interprets content as a zip archive.
func openZip(content []byte, format string) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("extract %s: not a zip: %w", format, err)
	}
	return zr, nil
}

// readEntry returns the decompressed bytes of one archive entry.
func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// collectRuns appends every non-blank submatch of re in xml to b,
// separated by single spaces.
func collectRuns(b *strings.Builder, re *regexp.Regexp, xml []byte) {
	for _, m := range re.FindAllSubmatch(xml, -1) {
		text := strings.TrimSpace(string(m[1]))
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
}

// extractDOCX pulls text from WordprocessingML bytes. The body lives at
// word/document.xml; packages produced by some writers use
// word/document2.xml and similar, so every XML part named like the main
// document is scanned for <w:t> runs.
func extractDOCX(content []byte) (string, error) {
	zr, err := openZip(content, "docx")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	found := false
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "word/document") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		xml, err := readEntry(f)
		if err != nil {
			return "", fmt.Errorf("extract docx: read %s: %w", f.Name, err)
		}
		found = true
		collectRuns(&b, wtRun, xml)
	}
	if !found {
		return "", fmt.Errorf("extract docx: no document part found")
	}
	return b.String(), nil
}

// extractPPTX pulls text from every slide part of PresentationML bytes.
// A deck with no slides yields empty text, not an error.
func extractPPTX(content []byte) (string, error) {
	zr, err := openZip(content, "pptx")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "ppt/slides/slide") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		xml, err := readEntry(f)
		if err != nil {
			return "", fmt.Errorf("extract pptx: read %s: %w", f.Name, err)
		}
		collectRuns(&b, atRun, xml)
	}
	return b.String(), nil
}
