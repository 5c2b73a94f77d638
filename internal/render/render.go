// Package render turns a finalized draft into output artifacts: PDF bytes,
// DOCX bytes, a plain-text clipboard payload, and an HTML document preview.
// All renderers share one section model: Objectives, Participants, Discussion
// Summary, Next Steps, in that order, with the same placeholder text for
// absent fields. No draft, however empty, ever fails to render.
package render

import (
	"strings"
	"time"

	"github.com/tcardoso/minutegen/internal/minutes"
)

// DocTitle is the fixed document title across every output format.
const DocTitle = "Meeting Minutes"

// Fixed base filenames for the two binary exports.
const (
	PDFFileName  = "meeting_minutes.pdf"
	DOCXFileName = "meeting_minutes.docx"
)

// Section headings, in presentation order.
const (
	HeadingObjectives   = "Objectives"
	HeadingParticipants = "Participants"
	HeadingDiscussion   = "Discussion Summary"
	HeadingNextSteps    = "Next Steps"
)

// Placeholder text for absent fields. Shared verbatim by every renderer.
const (
	PlaceholderObjectives   = "Not specified."
	PlaceholderParticipants = "None identified."
	PlaceholderDiscussion   = "No points recorded."
	PlaceholderNextSteps    = "No actions identified."
	placeholderResponsible  = "Not assigned"
)

const dateLayout = "January 2, 2006"

const brandColorHex = "C0272D"

func generatedLine(at time.Time) string {
	return "Generated on " + at.Format(dateLayout)
}

func objectivesText(d minutes.Draft) string {
	if strings.TrimSpace(d.Objectives) == "" {
		return PlaceholderObjectives
	}
	return d.Objectives
}

func participantsLine(d minutes.Draft) string {
	if len(d.Participants) == 0 {
		return PlaceholderParticipants
	}
	return strings.Join(d.Participants, ", ")
}

// metaLine formats the action-item metadata line. The deadline segment is
// omitted entirely when absent.
func metaLine(item minutes.ActionItem) string {
	responsible := item.Responsible
	if responsible == "" {
		responsible = placeholderResponsible
	}
	line := "Responsible: " + responsible
	if item.Deadline != "" {
		line += "  |  Deadline: " + item.Deadline
	}
	return line
}
