// Package editor holds the in-memory mutable copy of a draft between
// extraction and finalization.
package editor

import (
	"sync"

	"github.com/tcardoso/minutegen/internal/minutes"
)

// StepField names an editable ActionItem subfield.
type StepField string

const (
	FieldTask        StepField = "task"
	FieldResponsible StepField = "responsible"
	FieldDeadline    StepField = "deadline"
)

// Editor is the single owner of one draft under edit. Every operation
// replaces whole fields with fresh copies, so snapshots handed out earlier
// never observe later mutations. No validation happens here: any string,
// including empty, is accepted in any field.
type Editor struct {
	mu    sync.Mutex
	draft minutes.Draft
}

// New creates an editor seeded with its own deep copy of draft.
func New(draft minutes.Draft) *Editor {
	return &Editor{draft: draft.Clone()}
}

// Draft returns a snapshot copy of the current draft.
func (e *Editor) Draft() minutes.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// SetObjectives replaces the objectives text.
func (e *Editor) SetObjectives(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Objectives = value
}

// SetParticipants replaces the participant list wholesale.
func (e *Editor) SetParticipants(values []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Participants = copyStrings(values)
}

// SetDiscussionPoints replaces the discussion point list wholesale.
func (e *Editor) SetDiscussionPoints(values []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.DiscussionPoints = copyStrings(values)
}

// SetNextSteps replaces the action item list wholesale.
func (e *Editor) SetNextSteps(values []minutes.ActionItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if values == nil {
		e.draft.NextSteps = nil
		return
	}
	out := make([]minutes.ActionItem, len(values))
	copy(out, values)
	e.draft.NextSteps = out
}

// AddParticipant appends a blank participant entry.
func (e *Editor) AddParticipant() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Participants = append(copyStrings(e.draft.Participants), "")
}

// RemoveParticipant removes the entry at index. Out-of-range is a no-op.
func (e *Editor) RemoveParticipant(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Participants = removeString(e.draft.Participants, index)
}

// AddDiscussionPoint appends a blank discussion point.
func (e *Editor) AddDiscussionPoint() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.DiscussionPoints = append(copyStrings(e.draft.DiscussionPoints), "")
}

// RemoveDiscussionPoint removes the entry at index. Out-of-range is a no-op.
func (e *Editor) RemoveDiscussionPoint(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.DiscussionPoints = removeString(e.draft.DiscussionPoints, index)
}

// AddNextStep appends a blank action item.
func (e *Editor) AddNextStep() {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]minutes.ActionItem, len(e.draft.NextSteps), len(e.draft.NextSteps)+1)
	copy(out, e.draft.NextSteps)
	e.draft.NextSteps = append(out, minutes.ActionItem{})
}

// RemoveNextStep removes the action item at index. Out-of-range is a no-op;
// remaining items keep their relative order.
func (e *Editor) RemoveNextStep(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	steps := e.draft.NextSteps
	if index < 0 || index >= len(steps) {
		return
	}
	out := make([]minutes.ActionItem, 0, len(steps)-1)
	out = append(out, steps[:index]...)
	out = append(out, steps[index+1:]...)
	e.draft.NextSteps = out
}

// UpdateNextStep replaces one subfield of the action item at index by
// rebuilding the whole list. Out-of-range or unknown field is a no-op.
func (e *Editor) UpdateNextStep(index int, field StepField, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	steps := e.draft.NextSteps
	if index < 0 || index >= len(steps) {
		return
	}
	out := make([]minutes.ActionItem, len(steps))
	copy(out, steps)
	switch field {
	case FieldTask:
		out[index].Task = value
	case FieldResponsible:
		out[index].Responsible = value
	case FieldDeadline:
		out[index].Deadline = value
	default:
		return
	}
	e.draft.NextSteps = out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func removeString(in []string, index int) []string {
	if index < 0 || index >= len(in) {
		return in
	}
	out := make([]string, 0, len(in)-1)
	out = append(out, in[:index]...)
	out = append(out, in[index+1:]...)
	return out
}
