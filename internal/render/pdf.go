package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/tcardoso/minutegen/internal/minutes"
	"github.com/tcardoso/minutegen/internal/render/assets"
)

// PDF layout constants, in millimeters on an A4 portrait page.
const (
	pdfMargin     = 20.0
	pdfTopMargin  = 20.0
	pdfLineHeight = 6.0
	// Content below this distance from the bottom edge belongs to the footer.
	pdfBottomGuard = 20.0
)

// PDF lays out a finalized draft into a paginated PDF. The layout is a single
// deterministic pass: a vertical cursor advances per wrapped line, and a page
// break is taken before any block that would cross the bottom guard, so a
// block always starts on a page with room for at least its first line. Output
// is byte-identical for the same draft and generatedAt.
func PDF(d minutes.Draft, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(DocTitle, true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(136, 136, 136)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	textW := pageW - 2*pdfMargin
	limit := pageH - pdfBottomGuard
	y := 30.0

	// Logo, top right of the first page.
	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("logo", imgOpts, bytes.NewReader(assets.LogoPNG))
	pdf.ImageOptions("logo", pageW-pdfMargin-40, 12, 40, 0, false, imgOpts, 0, "")

	// Title block with generation date, underlined by the brand rule.
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(pdfMargin, y, DocTitle)
	y += 10
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(pdfMargin, y, tr(generatedLine(generatedAt)))
	pdf.SetDrawColor(192, 39, 45)
	pdf.SetLineWidth(0.6)
	pdf.Line(pdfMargin, y+4, pageW-pdfMargin, y+4)
	y += 15

	// ensureRoom breaks to a fresh page before a block of the given height
	// would cross the bottom guard. The pending block is then written whole.
	ensureRoom := func(height float64) {
		if y+height > limit {
			pdf.AddPage()
			y = pdfTopMargin
		}
	}

	// heading reserves room for the title plus the section's first block, so
	// a heading never sits alone at the bottom of a page.
	heading := func(title string, firstBlock float64) {
		ensureRoom(8 + firstBlock)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Text(pdfMargin, y, tr(title))
		y += 8
	}

	writeLines := func(lines []string) {
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range lines {
			pdf.Text(pdfMargin, y, line)
			y += pdfLineHeight
		}
	}

	paraLines := func(text string) []string {
		pdf.SetFont("Helvetica", "", 11)
		return pdf.SplitText(tr(text), textW)
	}

	bullet := func(text string) []string {
		return paraLines("• " + text)
	}

	blockH := func(lines []string) float64 {
		return float64(len(lines)) * pdfLineHeight
	}

	// paragraph writes pre-split lines; the heading already reserved room for
	// a section's first paragraph.
	paragraph := func(lines []string) {
		writeLines(lines)
		y += 6
	}

	objectives := paraLines(objectivesText(d))
	heading(HeadingObjectives, blockH(objectives))
	paragraph(objectives)

	participants := paraLines(participantsLine(d))
	heading(HeadingParticipants, blockH(participants))
	paragraph(participants)

	if len(d.DiscussionPoints) == 0 {
		lines := paraLines(PlaceholderDiscussion)
		heading(HeadingDiscussion, blockH(lines))
		paragraph(lines)
	} else {
		heading(HeadingDiscussion, blockH(bullet(d.DiscussionPoints[0])))
		for i, point := range d.DiscussionPoints {
			lines := bullet(point)
			if i > 0 {
				ensureRoom(blockH(lines))
			}
			writeLines(lines)
			y += 2
		}
		y += 6
	}

	if len(d.NextSteps) == 0 {
		lines := paraLines(PlaceholderNextSteps)
		heading(HeadingNextSteps, blockH(lines))
		paragraph(lines)
	} else {
		heading(HeadingNextSteps, blockH(bullet(d.NextSteps[0].Task))+pdfLineHeight)
		for i, step := range d.NextSteps {
			lines := bullet(step.Task)
			// Keep the task and its metadata line on the same page.
			if i > 0 {
				ensureRoom(blockH(lines) + pdfLineHeight)
			}
			writeLines(lines)

			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(100, 100, 100)
			pdf.Text(pdfMargin+4, y, tr(metaLine(step)))
			pdf.SetTextColor(0, 0, 0)
			y += pdfLineHeight + 2
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
