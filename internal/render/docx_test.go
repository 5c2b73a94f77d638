package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/tcardoso/minutegen/internal/minutes"
)

// docxParagraphs parses the generated package back and returns the body
// paragraph texts in document order.
func docxParagraphs(t *testing.T, b []byte) []string {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("parse generated docx: %v", err)
	}

	var texts []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var sb strings.Builder
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if txt, ok := rc.(*docx.Text); ok {
					sb.WriteString(txt.Text)
				}
			}
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			texts = append(texts, s)
		}
	}
	return texts
}

// docxPart reads one file out of the package zip.
func docxPart(t *testing.T, b []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("package missing part %s", name)
	return ""
}

func TestDOCX_ContentAndOrder(t *testing.T) {
	out, err := DOCX(fullDraft(), renderedAt)
	if err != nil {
		t.Fatalf("DOCX: %v", err)
	}

	texts := docxParagraphs(t, out)
	want := []string{
		"Generated on March 14, 2026",
		HeadingObjectives,
		"Agree on the launch plan.",
		HeadingParticipants,
		"Alice, Bob, Carol",
		HeadingDiscussion,
		"Scope was cut to two features.",
		"QA starts Monday.",
		HeadingNextSteps,
		"Send the report",
		"Responsible: Bob  |  Deadline: Friday",
		"Book the venue",
		"Responsible: Not assigned",
	}
	if len(texts) != len(want) {
		t.Fatalf("paragraphs = %q\nwant %q", texts, want)
	}
	for i, w := range want {
		if texts[i] != w {
			t.Errorf("paragraph[%d] = %q, want %q", i, texts[i], w)
		}
	}
}

func TestDOCX_EmptyDraftFallbacks(t *testing.T) {
	out, err := DOCX(minutes.Draft{}, renderedAt)
	if err != nil {
		t.Fatalf("DOCX: %v", err)
	}

	texts := strings.Join(docxParagraphs(t, out), "\n")
	for _, placeholder := range []string{
		PlaceholderObjectives,
		PlaceholderParticipants,
		PlaceholderDiscussion,
		PlaceholderNextSteps,
	} {
		if !strings.Contains(texts, placeholder) {
			t.Errorf("docx missing placeholder %q:\n%s", placeholder, texts)
		}
	}
}

func TestDOCX_Deterministic(t *testing.T) {
	d := fullDraft()
	a, err := DOCX(d, renderedAt)
	if err != nil {
		t.Fatalf("DOCX: %v", err)
	}
	b, err := DOCX(d, renderedAt)
	if err != nil {
		t.Fatalf("DOCX: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same draft differ")
	}
}

func TestDOCX_PackageStructure(t *testing.T) {
	out, err := DOCX(fullDraft(), renderedAt)
	if err != nil {
		t.Fatalf("DOCX: %v", err)
	}

	document := docxPart(t, out, "word/document.xml")
	if got := strings.Count(document, "<w:keepNext/>"); got != 2 {
		t.Errorf("keepNext count = %d, want one per task line (2)", got)
	}
	if !strings.Contains(document, `<w:numId w:val="1"/>`) {
		t.Error("list paragraphs not bound to the numbering definition")
	}
	if !strings.Contains(document, `<w:headerReference w:type="default" r:id="rId3"/>`) {
		t.Error("section properties missing header reference")
	}

	numbering := docxPart(t, out, "word/numbering.xml")
	if !strings.Contains(numbering, `<w:numFmt w:val="bullet"/>`) {
		t.Error("numbering definition is not a bullet list")
	}

	header := docxPart(t, out, "word/header1.xml")
	if !strings.Contains(header, "MEETING MINUTES") {
		t.Error("header missing title")
	}
	if !strings.Contains(header, `r:embed="rId1"`) {
		t.Error("header missing logo reference")
	}
	if !strings.Contains(header, "<w:pBdr>") {
		t.Error("header missing rule under title")
	}

	footer := docxPart(t, out, "word/footer1.xml")
	if !strings.Contains(footer, " PAGE ") || !strings.Contains(footer, " NUMPAGES ") {
		t.Error("footer missing page numbering fields")
	}

	if logo := docxPart(t, out, "word/media/logo.png"); !strings.HasPrefix(logo, "\x89PNG") {
		t.Error("embedded logo is not a PNG")
	}
}

func TestDOCX_EscapesMarkup(t *testing.T) {
	d := minutes.Draft{Objectives: `Ship <v2> & "final" draft`}
	out, err := DOCX(d, renderedAt)
	if err != nil {
		t.Fatalf("DOCX: %v", err)
	}
	texts := strings.Join(docxParagraphs(t, out), "\n")
	if !strings.Contains(texts, `Ship <v2> & "final" draft`) {
		t.Errorf("escaped text did not round-trip:\n%s", texts)
	}
}
