// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package exec

import "github.com/mdhender/sdc/internal/sdc/story"

// ResultKind discriminates the six ExecutionResult variants.
type ResultKind int

const (
	ResultDialogue ResultKind = iota
	ResultAction
	ResultEvent
	ResultChoice
	ResultTransition
	ResultEnd
)

func (k ResultKind) String() string {
	switch k {
	case ResultDialogue:
		return "dialogue"
	case ResultAction:
		return "action"
	case ResultEvent:
		return "event"
	case ResultChoice:
		return "choice"
	case ResultTransition:
		return "transition"
	case ResultEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ExecutionResult is the sum type every Step call returns. Every
// variant is a self-contained snapshot: it carries copies of whatever
// identifiers the host needs, never a back-pointer into the Story
// Graph (spec §3 ownership).
type ExecutionResult interface {
	ResultKind() ResultKind
}

// DialogueResult carries one node's worth of spoken lines.
type DialogueResult struct {
	Label int
	Lines []story.DialogueLine
}

func (DialogueResult) ResultKind() ResultKind { return ResultDialogue }

// ActionResult carries an action the host must itself execute; in
// practice this is emitted only for kind "code" (spec §4.4 step 4).
type ActionResult struct {
	Label int
	Kind  story.ActionKind
	Code  string
}

func (ActionResult) ResultKind() ResultKind { return ResultAction }

// AdjustOperation discriminates the three ways adjust-variable may
// change a variable, mirrored from story.AdjustVariableOpKind into the
// host-facing payload so the host need not import the story package's
// parse-time types.
type AdjustOperation int

const (
	AdjustIncrement AdjustOperation = iota
	AdjustSet
	AdjustToggle
)

// EventPayload is the sum type behind an EventResult's normalized
// payload.
type EventPayload interface {
	EventPayloadKind() story.EventKind
}

type AdjustVariablePayload struct {
	Variable  string
	Operation AdjustOperation
	Value     story.Literal // set iff Operation == AdjustSet or AdjustIncrement carries a literal amount
}

func (AdjustVariablePayload) EventPayloadKind() story.EventKind { return story.EventAdjustVariable }

type StateChangePayload struct {
	State     string
	Character string
	Add       bool // true for add-state, false for remove-state
}

func (StateChangePayload) EventPayloadKind() story.EventKind {
	return story.EventAddState // callers switch on Add to distinguish add vs remove
}

type ProgressStoryPayload struct {
	ChapterId *int
	GroupId   *int
	NodeId    *int
}

func (ProgressStoryPayload) EventPayloadKind() story.EventKind { return story.EventProgressStory }

// LinkedListModification is one field change derived from a parsed
// LinkedListFieldOp, with any caller-supplied parameter-stack override
// already substituted in.
type LinkedListModification struct {
	Field string
	Op    story.LinkedListFieldOpKind
	Value story.Literal
}

type LinkedListPayload struct {
	ListName           string
	Scope              story.ListScope
	Modifications      []LinkedListModification
	AffectedCharacters []string
}

func (LinkedListPayload) EventPayloadKind() story.EventKind { return story.EventLinkedList }

// EventResult carries an event action the host must apply.
type EventResult struct {
	Label   int
	Kind    story.EventKind
	Payload EventPayload
}

func (EventResult) ResultKind() ResultKind { return ResultEvent }

// ChoiceEntry is one user-facing option of a pending Choice.
type ChoiceEntry struct {
	Index int
	Text  string
}

// ChoiceResult suspends execution until the host calls SelectChoice.
type ChoiceResult struct {
	Label   int
	Options []ChoiceEntry
}

func (ChoiceResult) ResultKind() ResultKind { return ResultChoice }

// TransitionKind distinguishes a node-level transition from a
// group-level one.
type TransitionKind int

const (
	TransitionNode TransitionKind = iota
	TransitionGroup
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionNode:
		return "node"
	case TransitionGroup:
		return "group"
	default:
		return "unknown"
	}
}

// TransitionResult reports that the cursor moved to a new node or
// group; the timeline index has already been reset to 0.
type TransitionResult struct {
	Kind     TransitionKind
	TargetId int
}

func (TransitionResult) ResultKind() ResultKind { return ResultTransition }

// EndReason enumerates every way a Step may terminate the current
// node or group.
type EndReason int

const (
	EndTimelineComplete EndReason = iota
	EndExitNode
	EndExitGroup
	EndNoNextNode
	EndInvalidItem
	EndNoContent
)

func (r EndReason) String() string {
	switch r {
	case EndTimelineComplete:
		return "timeline-complete"
	case EndExitNode:
		return "exit-node"
	case EndExitGroup:
		return "exit-group"
	case EndNoNextNode:
		return "no-next-node"
	case EndInvalidItem:
		return "invalid-item"
	case EndNoContent:
		return "no-content"
	default:
		return "unknown"
	}
}

// EndResult terminates the node or group currently being executed.
type EndResult struct {
	Reason EndReason
}

func (EndResult) ResultKind() ResultKind { return ResultEnd }
