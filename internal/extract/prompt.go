package extract

import "strings"

// ExtractionPrompt instructs the model to produce a meeting-minutes draft
// constrained to the Draft JSON shape. Fields the model cannot confidently
// infer must be omitted rather than filled with placeholders; that is a
// prompting contract the client cannot verify mechanically.
const ExtractionPrompt = `You are an assistant specialized in producing professional meeting minutes. Carefully analyze the meeting transcript below and extract the following information into a clear, concise draft.

Respond with ONLY a JSON object matching this exact shape, no other text:

{
  "participants": ["list of names of people who spoke or were referred to as present"],
  "objectives": "the main purpose or goals discussed in the meeting",
  "discussionPoints": ["one concise summary per major topic or decision, in presentation order"],
  "nextSteps": [
    {
      "task": "the action to be carried out",
      "responsible": "the person responsible, if identified",
      "deadline": "the deadline as stated, if specified (e.g. \"next Friday\", \"October 26\")"
    }
  ]
}

Rules:
- Every field is optional. If a piece of information is not explicitly mentioned and cannot be clearly inferred from the transcript, OMIT the field entirely. Never invent names, tasks, or dates.
- "discussionPoints" entries must each be a self-contained one-sentence summary.
- "deadline" is free text exactly as spoken; do not normalize it into a date format.
- Do not add fields beyond the shape above.`

// BuildPrompt creates the full extraction prompt, embedding the transcript
// verbatim after the instruction block.
func BuildPrompt(transcript string) string {
	var sb strings.Builder
	sb.WriteString(ExtractionPrompt)
	sb.WriteString("\n\n---\nMeeting transcript:\n")
	sb.WriteString(transcript)
	return sb.String()
}
