package e2e

import (
	"archive/zip"
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SupportedFileExtensions lists the formats the corpus exercises end to
// end: plain text (.txt, .md, .rst), OOXML (.docx, .xlsx, .pptx),
// OpenDocument (.odp, .ods), and RTF. The extractor also handles .pdf
// and .odt; no minimal PDF with extractable text is generated here, and
// .odt shares the .odp/.ods code path.
var SupportedFileExtensions = []string{
	".txt", ".md", ".rst", ".rtf",
	".docx", ".xlsx", ".pptx", ".odp", ".ods",
}

// WriteMinimalFile renders text as a minimal file of the given
// extension and returns the bytes to write. Plain extensions pass the
// text through; binary extensions wrap it in the smallest package the
// extractor accepts. For .xlsx, tabs split cells and newlines split
// rows, mirroring how extraction flattens a sheet back to text.
func WriteMinimalFile(ext, text string) ([]byte, error) {
	switch ext {
	case ".docx":
		return minimalDocx(text), nil
	case ".pptx":
		return minimalPptx(text), nil
	case ".odp":
		return minimalOpenDocument(`<draw:page><draw:text-box><text:p>` + text + `</text:p></draw:text-box></draw:page>`), nil
	case ".ods":
		return minimalOpenDocument(`<table:table><table:table-row><table:table-cell><text:p>` + text + `</text:p></table:table-cell></table:table-row></table:table>`), nil
	case ".xlsx":
		return minimalXlsx(text)
	case ".rtf":
		return minimalRtf(text), nil
	default:
		return []byte(text), nil
	}
}

func minimalRtf(text string) []byte {
	return []byte(`{\rtf1 ` + text + `\par}`)
}

// zipSingle packages one named entry into an in-memory zip archive.
func zipSingle(name string, payload []byte) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create(name)
	_, _ = fw.Write(payload)
	_ = w.Close()
	return buf.Bytes()
}

func minimalDocx(text string) []byte {
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`
	return zipSingle("word/document.xml", []byte(doc))
}

func minimalPptx(text string) []byte {
	slide := `<p:sld xmlns:p="a" xmlns:a="b"><p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`
	return zipSingle("ppt/slides/slide1.xml", []byte(slide))
}

func minimalOpenDocument(body string) []byte {
	content := `<office:document><office:body>` + body + `</office:body></office:document>`
	return zipSingle("content.xml", []byte(content))
}

func minimalXlsx(text string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	for r, line := range strings.Split(text, "\n") {
		for c, value := range strings.Split(line, "\t") {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				return nil, err
			}
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
