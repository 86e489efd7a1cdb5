package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractBytes_plain(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("Hello world\nLine 2"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Hello world\nLine 2" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainUTF8(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("caf\xc3\xa9"), ".md")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "café" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainInvalidUTF8(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("hello\x80world"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "hello�world" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_unknownExtensionFallsBackToPlain(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("raw content"), ".xyz")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "raw content" {
		t.Errorf("got %q", got)
	}
}

// zipWith builds an in-memory zip with the given name/content entries.
func zipWith(entries map[string]string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		fw, _ := w.Create(name)
		_, _ = fw.Write([]byte(content))
	}
	_ = w.Close()
	return buf.Bytes()
}

func TestExtractBytes_docx(t *testing.T) {
	content := zipWith(map[string]string{
		"word/document.xml": `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>Searchable docx content</w:t></w:r></w:p></w:body></w:document>`,
	})
	e := NewExtractor()
	got, err := e.ExtractBytes(content, ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Searchable docx content" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_docxAlternateDocumentPart(t *testing.T) {
	content := zipWith(map[string]string{
		"word/document2.xml": `<w:document><w:body><w:p><w:r><w:t xml:space="preserve">Content from document2</w:t></w:r></w:p></w:body></w:document>`,
	})
	e := NewExtractor()
	got, err := e.ExtractBytes(content, ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Content from document2" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_docxNoDocumentPart(t *testing.T) {
	content := zipWith(map[string]string{"docProps/core.xml": "<x/>"})
	e := NewExtractor()
	if _, err := e.ExtractBytes(content, ".docx"); err == nil {
		t.Error("expected error when no document part exists")
	}
}

func TestExtractBytes_docxNotZip(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("not a zip"), ".docx"); err == nil {
		t.Error("expected error for non-zip docx")
	}
}

func TestExtractBytes_pptxMultipleSlides(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	s1, _ := w.Create("ppt/slides/slide1.xml")
	_, _ = s1.Write([]byte(`<p:sld><a:p><a:r><a:t>First slide</a:t></a:r></a:p></p:sld>`))
	s2, _ := w.Create("ppt/slides/slide2.xml")
	_, _ = s2.Write([]byte(`<p:sld><a:p><a:r><a:t>Second slide</a:t></a:r></a:p></p:sld>`))
	_ = w.Close()

	e := NewExtractor()
	got, err := e.ExtractBytes(buf.Bytes(), ".pptx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "First slide Second slide" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_pptxNoSlides(t *testing.T) {
	content := zipWith(map[string]string{
		"ppt/slides/other.xml": "<x/>",
		"docProps/core.xml":    "<x/>",
	})
	e := NewExtractor()
	got, err := e.ExtractBytes(content, ".pptx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_openDocumentFormats(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		xml  string
		want string
	}{
		{
			"odt paragraphs",
			".odt",
			`<office:document><office:body><office:text><text:p>Report body</text:p></office:text></office:body></office:document>`,
			"Report body",
		},
		{
			"odp slide with heading",
			".odp",
			`<office:document><office:body><draw:page><text:h>Slide title</text:h><text:p>Body text</text:p></draw:page></office:body></office:document>`,
			"Body text Slide title",
		},
		{
			"ods cells",
			".ods",
			`<office:document><office:body><table:table-cell><text:p>Cell A</text:p></table:table-cell><table:table-cell><text:span>Cell B</text:span></table:table-cell></office:body></office:document>`,
			"Cell A Cell B",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor()
			got, err := e.ExtractBytes(zipWith(map[string]string{"content.xml": tt.xml}), tt.ext)
			if err != nil {
				t.Fatalf("ExtractBytes: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractBytes_openDocumentMissingContent(t *testing.T) {
	content := zipWith(map[string]string{"other.xml": "<x/>"})
	e := NewExtractor()
	if _, err := e.ExtractBytes(content, ".odp"); err == nil {
		t.Error("expected error when content.xml missing")
	}
}

func TestExtractBytes_rtf(t *testing.T) {
	sample := `{\rtf1\ansi\deff0{\fonttbl{\f0 Calibri;}}{\colortbl;\red0\green0\blue0;}
{\info{\title Lab Rules}}
\pard\f0\fs22 Safety goggles are \b required\b0  in every lab session.\par
Hot plates reach caf\'e9-level temperatures; a shift \u916? of two degrees is logged.\par
}`
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte(sample), ".rtf")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	want := "Safety goggles are required in every lab session.\nHot plates reach café-level temperatures; a shift Δ of two degrees is logged."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "Calibri") || strings.Contains(got, "Lab Rules") {
		t.Errorf("machinery destinations leaked into %q", got)
	}
}

func TestExtractBytes_rtfEscapes(t *testing.T) {
	sample := `{\rtf1 A \{quoted\} path C:\\temp and a velocity\~limit\par}`
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte(sample), ".rtf")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if want := "A {quoted} path C:\\temp and a velocity limit"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractBytes_rtfNotRTF(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("just text"), ".rtf"); err == nil {
		t.Error("expected error for data without an RTF header")
	}
}

func TestExtractBytes_excel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Title")
	f.SetCellValue("Sheet1", "A2", "Value 1")
	f.SetCellValue("Sheet1", "B2", "Value 2")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	e := NewExtractor()
	got, err := e.ExtractBytes(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Title\nValue 1\tValue 2" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_plainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("File content"), 0600); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	got, err := e.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "File content" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_docxFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "handbook.docx")
	content := zipWith(map[string]string{
		"word/document.xml": `<w:document><w:body><w:p><w:r><w:t>From file</w:t></w:r></w:p></w:body></w:document>`,
	})
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	got, err := e.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "From file" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_nonexistent(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract("/nonexistent/path/file.txt"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
