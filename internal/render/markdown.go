package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/tcardoso/minutegen/internal/minutes"
)

// mdEscape backslash-escapes characters that Markdown or the HTML renderer
// would otherwise treat as syntax, so draft text always round-trips literally.
var mdEscape = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
).Replace

// Markdown renders a draft as a Markdown document with the shared section
// order and fallback text. It backs the on-screen HTML preview.
func Markdown(d minutes.Draft, generatedAt time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", DocTitle)
	fmt.Fprintf(&sb, "*%s*\n\n", generatedLine(generatedAt))

	fmt.Fprintf(&sb, "## %s\n\n%s\n\n", HeadingObjectives, mdEscape(objectivesText(d)))
	fmt.Fprintf(&sb, "## %s\n\n%s\n\n", HeadingParticipants, mdEscape(participantsLine(d)))

	fmt.Fprintf(&sb, "## %s\n\n", HeadingDiscussion)
	if len(d.DiscussionPoints) == 0 {
		sb.WriteString(PlaceholderDiscussion + "\n\n")
	} else {
		for _, point := range d.DiscussionPoints {
			fmt.Fprintf(&sb, "- %s\n", mdEscape(point))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## %s\n\n", HeadingNextSteps)
	if len(d.NextSteps) == 0 {
		sb.WriteString(PlaceholderNextSteps + "\n")
	} else {
		for _, step := range d.NextSteps {
			fmt.Fprintf(&sb, "- **%s**\n", mdEscape(step.Task))
			fmt.Fprintf(&sb, "  %s\n", mdEscape(metaLine(step)))
		}
	}

	return sb.String()
}

// HTMLPreview renders the draft's Markdown form to an HTML fragment for the
// on-screen document view.
func HTMLPreview(d minutes.Draft, generatedAt time.Time) ([]byte, error) {
	md := goldmark.New()
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(d, generatedAt)), &buf); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}
