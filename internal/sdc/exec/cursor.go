// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package exec implements the Execution Cursor: a stateless, cursor
// -based interpreter that steps through a story.Graph's timeline one
// item at a time, yielding discriminated ExecutionResult records.
package exec

import (
	"github.com/google/uuid"

	"github.com/mdhender/sdc/cerrs"
	"github.com/mdhender/sdc/internal/sdc/story"
)

// paramKey identifies one transient parameter-stack override by
// (context, field).
type paramKey struct {
	Context string
	Field   string
}

// Cursor holds a non-owning reference to a story.Graph plus all of the
// system's mutable state: the current position, the transient
// parameter stack, and the pending-choice flag. It is the only mutable
// state in the system (spec §3 Lifecycle).
type Cursor struct {
	// ID correlates a cursor instance across log lines when several
	// cursors share one Story Graph.
	ID uuid.UUID

	graph *story.Graph

	started   bool
	chapterId int
	groupId   int
	nodeId    int
	timeIdx   int

	pendingChoice *story.Action
	chosen        bool // true once SelectChoice has recorded a selection for pendingChoice
	selected      int
	transitioned  bool // true when the most recent dispatch already repositioned the cursor

	params map[paramKey]story.Literal
}

// New creates a Cursor borrowing graph for its entire lifetime. The
// cursor must not be used after the graph it borrows is discarded, but
// the graph itself may be shared read-only by any number of cursors
// (spec §5).
func New(graph *story.Graph) *Cursor {
	return &Cursor{ID: uuid.New(), graph: graph, params: map[paramKey]story.Literal{}}
}

// Start sets position to the given chapter/group/node, resets the
// timeline index to 0, and clears choice-pending and the parameter
// stack.
func (c *Cursor) Start(chapterId, groupId, nodeId int) {
	c.started = true
	c.chapterId, c.groupId, c.nodeId = chapterId, groupId, nodeId
	c.timeIdx = 0
	c.pendingChoice = nil
	c.chosen = false
	c.transitioned = false
	c.params = map[paramKey]story.Literal{}
}

// Reset clears all position and state; the cursor behaves as if newly
// constructed.
func (c *Cursor) Reset() {
	c.started = false
	c.chapterId, c.groupId, c.nodeId, c.timeIdx = 0, 0, 0, 0
	c.pendingChoice = nil
	c.chosen = false
	c.transitioned = false
	c.params = map[paramKey]story.Literal{}
}

// AddParameter pushes one override onto the transient parameter stack.
// It is consulted the next time a linked-list event is evaluated and is
// cleared after every completed non-choice step.
func (c *Cursor) AddParameter(context, key string, value story.Literal) {
	c.params[paramKey{Context: context, Field: key}] = value
}

func (c *Cursor) takeParameter(context, key string) (story.Literal, bool) {
	v, ok := c.params[paramKey{Context: context, Field: key}]
	return v, ok
}

func (c *Cursor) clearParameters() {
	c.params = map[paramKey]story.Literal{}
}

// SelectChoice records which option of a pending Choice result to
// execute on the next Step. It is only valid when the previous Step
// returned a Choice; calling it otherwise, or with an out-of-range
// index, is a caller error (spec §7).
func (c *Cursor) SelectChoice(index int) error {
	if c.pendingChoice == nil {
		return cerrs.ErrNoChoicePending
	}
	if index < 0 || index >= len(c.pendingChoice.Choices) {
		return cerrs.ErrChoiceIndexOutOfRange
	}
	c.selected = index
	c.chosen = true
	return nil
}

// currentTimelineItem returns the timeline item at the cursor's
// current node and index, or ok=false if there is none (unstarted
// cursor, unknown node, or index past the end).
func (c *Cursor) currentTimelineItem() (story.TimelineItem, bool) {
	if !c.started {
		return story.TimelineItem{}, false
	}
	n, ok := c.graph.GetNode(c.nodeId)
	if !ok {
		return story.TimelineItem{}, false
	}
	if c.timeIdx < 0 || c.timeIdx >= len(n.Timeline) {
		return story.TimelineItem{}, false
	}
	return n.Timeline[c.timeIdx], true
}

// Position returns the cursor's current chapter, group, node, and
// timeline index, primarily for host-side logging and tests.
func (c *Cursor) Position() (chapterId, groupId, nodeId, timelineIndex int) {
	return c.chapterId, c.groupId, c.nodeId, c.timeIdx
}
