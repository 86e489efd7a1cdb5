// Package e2e runs the full pipeline against a corpus of campus policy
// documents: files on disk through ingest, retrieval, and answering.
package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CorpusFile is one corpus document. Its extension decides the on-disk
// format WriteFiles materializes it in.
type CorpusFile struct {
	Name    string
	Content string
}

// QueryCase poses a question against the corpus. Confident cases name
// the file whose chunk must rank first; refusal cases expect the fixed
// refusal because no document holds the answer.
type QueryCase struct {
	Query         string
	ExpectedTitle string
	WantRefusal   bool
	Description   string
}

// Corpus bundles the documents and query cases driving the e2e tests.
type Corpus struct {
	Files []CorpusFile
	Cases []QueryCase
}

// BuildCorpus returns the campus corpus. Documents are short and share
// most of their words with the questions asked about them, so the
// deterministic bag-of-words embedder ranks the right file first with a
// wide margin over the runner-up.
func BuildCorpus() *Corpus {
	files := []CorpusFile{
		{Name: "attendance.md", Content: "Missing more than three lectures lowers the participation grade."},
		{Name: "budget.xlsx", Content: "travel\t1200\nequipment\t3400\nprinting\t150"},
		{Name: "cafeteria.txt", Content: "The cafeteria serves vegan options daily at the salad bar."},
		{Name: "floor.odp", Content: "The art studio occupies the entire fifth floor."},
		{Name: "grading.md", Content: "The final exam counts forty percent of the grade."},
		{Name: "handbook.md", Content: "The student handbook covers campus policies. Quiet hours begin at ten each night. Guests must sign in at the front desk. Laundry rooms are on every second floor."},
		{Name: "labs.md", Content: "Safety goggles are mandatory inside the chemistry lab."},
		{Name: "library.md", Content: "The library lends laptops for up to three days."},
		{Name: "lockers.ods", Content: "Replacement locker keys require a small deposit fee."},
		{Name: "office_hours.txt", Content: "Office hours are Tuesday and Thursday afternoons in room 412."},
		{Name: "orientation.pptx", Content: "New student orientation starts Monday in the main auditorium."},
		{Name: "parking.rtf", Content: "Student parking permits cost ninety dollars per semester."},
		{Name: "portal.docx", Content: "The submission portal accepts uploads until the posted deadline."},
		{Name: "rules.rst", Content: "Quiet study zones prohibit phone calls entirely."},
		{Name: "sports.txt", Content: "Intramural soccer registration closes at the end of September."},
		{Name: "syllabus.md", Content: "Assignments are due on Friday at midnight."},
		{Name: "textbooks.txt", Content: "Used textbooks are sold at the bookstore annex."},
	}

	cases := []QueryCase{
		{Query: "are assignments due on friday", ExpectedTitle: "syllabus.md"},
		{Query: "is the final exam forty percent of the grade", ExpectedTitle: "grading.md"},
		{Query: "are office hours tuesday and thursday afternoons", ExpectedTitle: "office_hours.txt"},
		{Query: "does the cafeteria serve vegan options daily", ExpectedTitle: "cafeteria.txt"},
		{Query: "does the library lend laptops for three days", ExpectedTitle: "library.md"},
		{Query: "do student parking permits cost ninety dollars", ExpectedTitle: "parking.rtf"},
		{Query: "does missing lectures lower the participation grade", ExpectedTitle: "attendance.md"},
		{Query: "are used textbooks sold at the bookstore", ExpectedTitle: "textbooks.txt"},
		{Query: "are safety goggles mandatory in the chemistry lab", ExpectedTitle: "labs.md"},
		{Query: "does intramural soccer registration close at the end of september", ExpectedTitle: "sports.txt"},
		{Query: "does the submission portal accept uploads", ExpectedTitle: "portal.docx"},
		{Query: "do quiet hours begin at ten each night", ExpectedTitle: "handbook.md"},
		{Query: "does new student orientation start monday in the auditorium", ExpectedTitle: "orientation.pptx"},
		{Query: "do replacement locker keys require a deposit", ExpectedTitle: "lockers.ods"},
		{Query: "does the art studio occupy the fifth floor", ExpectedTitle: "floor.odp"},
		{Query: "do quiet study zones prohibit phone calls", ExpectedTitle: "rules.rst"},
		{Query: "zorp quux flibber xylograph", WantRefusal: true},
		{Query: "purple elephants dancing underwater rainbows", WantRefusal: true},
	}
	for i := range cases {
		if cases[i].WantRefusal {
			cases[i].Description = fmt.Sprintf("query %q is refused", cases[i].Query)
		} else {
			cases[i].Description = fmt.Sprintf("query %q cites %s", cases[i].Query, cases[i].ExpectedTitle)
		}
	}
	return &Corpus{Files: files, Cases: cases}
}

// WriteFiles materializes every corpus file under dir in its named
// format, binary formats included.
func (c *Corpus) WriteFiles(dir string) error {
	for _, f := range c.Files {
		data, err := WriteMinimalFile(filepath.Ext(f.Name), f.Content)
		if err != nil {
			return fmt.Errorf("render %s: %w", f.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.Name), data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	return nil
}

// Extensions returns the distinct file extensions the corpus uses,
// sorted.
func (c *Corpus) Extensions() []string {
	seen := make(map[string]bool)
	for _, f := range c.Files {
		seen[filepath.Ext(f.Name)] = true
	}
	exts := make([]string, 0, len(seen))
	for ext := range seen {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// FileByName returns the corpus file with the given base name.
func (c *Corpus) FileByName(name string) (CorpusFile, bool) {
	for _, f := range c.Files {
		if f.Name == name {
			return f, true
		}
	}
	return CorpusFile{}, false
}

// sharedWords counts the distinct words of b that also occur in a,
// case-insensitive and ignoring surrounding punctuation. The corpus
// tests use it to check that each question actually overlaps the
// document it is supposed to surface.
func sharedWords(a, b string) int {
	in := make(map[string]bool)
	for _, w := range normalizedWords(a) {
		in[w] = true
	}
	counted := make(map[string]bool)
	n := 0
	for _, w := range normalizedWords(b) {
		if in[w] && !counted[w] {
			counted[w] = true
			n++
		}
	}
	return n
}

func normalizedWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, `.,!?;:"'()[]`)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}
