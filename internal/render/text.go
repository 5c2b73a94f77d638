package render

import (
	"strings"

	"github.com/tcardoso/minutegen/internal/minutes"
)

// PlainText formats a draft as the fixed clipboard template: literal labels,
// newline/comma separators, and the shared fallback text for absent fields.
func PlainText(d minutes.Draft) string {
	var sb strings.Builder

	sb.WriteString("MEETING MINUTES\n")
	sb.WriteString("OBJECTIVES: ")
	sb.WriteString(objectivesText(d))
	sb.WriteString("\nPARTICIPANTS: ")
	sb.WriteString(participantsLine(d))
	sb.WriteString("\n\nDISCUSSION:\n")
	if len(d.DiscussionPoints) == 0 {
		sb.WriteString(PlaceholderDiscussion)
		sb.WriteString("\n")
	} else {
		for _, point := range d.DiscussionPoints {
			sb.WriteString("- ")
			sb.WriteString(point)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\nNEXT STEPS:\n")
	if len(d.NextSteps) == 0 {
		sb.WriteString(PlaceholderNextSteps)
		sb.WriteString("\n")
	} else {
		for _, step := range d.NextSteps {
			responsible := step.Responsible
			if responsible == "" {
				responsible = placeholderResponsible
			}
			sb.WriteString("- ")
			sb.WriteString(step.Task)
			sb.WriteString(" (")
			sb.WriteString(responsible)
			sb.WriteString(")")
			if step.Deadline != "" {
				sb.WriteString(", due ")
				sb.WriteString(step.Deadline)
			}
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
