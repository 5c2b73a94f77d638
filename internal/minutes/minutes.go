// Package minutes defines the structured meeting-minutes draft shared by the
// extraction client, the editor, and the renderers.
package minutes

// Draft is a meeting-minutes record. Every top-level field is independently
// optional: an absent field means the extraction could not infer it, and
// renderers substitute placeholder text instead of failing.
type Draft struct {
	Participants     []string     `json:"participants,omitempty"`
	Objectives       string       `json:"objectives,omitempty"`
	DiscussionPoints []string     `json:"discussionPoints,omitempty"`
	NextSteps        []ActionItem `json:"nextSteps,omitempty"`
}

// ActionItem is a single next-step record. Task may be empty while a draft is
// being edited; nothing enforces completeness before export.
type ActionItem struct {
	Task        string `json:"task"`
	Responsible string `json:"responsible,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

// Clone returns a deep copy. Slices are copied so no two holders ever share a
// mutable backing array.
func (d Draft) Clone() Draft {
	out := Draft{Objectives: d.Objectives}
	if d.Participants != nil {
		out.Participants = make([]string, len(d.Participants))
		copy(out.Participants, d.Participants)
	}
	if d.DiscussionPoints != nil {
		out.DiscussionPoints = make([]string, len(d.DiscussionPoints))
		copy(out.DiscussionPoints, d.DiscussionPoints)
	}
	if d.NextSteps != nil {
		out.NextSteps = make([]ActionItem, len(d.NextSteps))
		copy(out.NextSteps, d.NextSteps)
	}
	return out
}

// Equal reports whether two drafts hold the same content in the same order.
// A nil slice and an empty slice compare equal; the system does not
// distinguish "absent" from "explicitly none" beyond rendering.
func (d Draft) Equal(other Draft) bool {
	if d.Objectives != other.Objectives {
		return false
	}
	if len(d.Participants) != len(other.Participants) {
		return false
	}
	for i := range d.Participants {
		if d.Participants[i] != other.Participants[i] {
			return false
		}
	}
	if len(d.DiscussionPoints) != len(other.DiscussionPoints) {
		return false
	}
	for i := range d.DiscussionPoints {
		if d.DiscussionPoints[i] != other.DiscussionPoints[i] {
			return false
		}
	}
	if len(d.NextSteps) != len(other.NextSteps) {
		return false
	}
	for i := range d.NextSteps {
		if d.NextSteps[i] != other.NextSteps[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no field carries any content.
func (d Draft) IsEmpty() bool {
	return d.Objectives == "" &&
		len(d.Participants) == 0 &&
		len(d.DiscussionPoints) == 0 &&
		len(d.NextSteps) == 0
}
