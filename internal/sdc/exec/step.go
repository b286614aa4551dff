// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package exec

import "github.com/mdhender/sdc/internal/sdc/story"

// Step advances one timeline item, or consumes a previously submitted
// choice selection, and returns exactly one ExecutionResult.
func (c *Cursor) Step() ExecutionResult {
	if c.pendingChoice != nil && c.chosen {
		return c.stepChosenOption()
	}

	item, ok := c.currentTimelineItem()
	if !ok {
		return c.finish(EndResult{Reason: EndTimelineComplete})
	}

	switch payload := item.Payload.(type) {
	case story.Dialogue:
		res := DialogueResult{Label: item.Label, Lines: payload.Lines}
		c.advanceTimeline()
		return c.finish(res)
	case story.Action:
		res := c.dispatchAction(payload)
		c.advanceTimeline()
		return c.finish(res)
	default:
		res := EndResult{Reason: EndInvalidItem}
		c.advanceTimeline()
		return c.finish(res)
	}
}

// finish applies the end-of-step housekeeping common to every
// non-choice-pending result: clear the parameter stack unless the
// result just raised a new pending choice (spec §4.4 step 5, §9
// parameter stack).
func (c *Cursor) finish(res ExecutionResult) ExecutionResult {
	if res.ResultKind() != ResultChoice {
		c.clearParameters()
	}
	return res
}

// advanceTimeline moves to the next timeline item unless the most
// recent dispatch already repositioned the cursor (a transition resets
// the index to 0 itself, and a pending choice must not advance at all
// per spec §4.4 step 4's "choice" case).
func (c *Cursor) advanceTimeline() {
	if c.pendingChoice != nil {
		return // choice raised this step; do not advance past it
	}
	if c.transitioned {
		c.transitioned = false
		return
	}
	c.timeIdx++
}

// stepChosenOption executes the ordered sub-actions of the selected
// choice option, returning the first Transition or End encountered, or
// the last sub-action result if none terminate early. Unless a
// sub-action repositioned the cursor, the timeline then moves past the
// choice item.
func (c *Cursor) stepChosenOption() ExecutionResult {
	opt := c.pendingChoice.Choices[c.selected]
	c.pendingChoice = nil

	var last ExecutionResult = EndResult{Reason: EndInvalidItem}
	for _, a := range opt.Actions {
		last = c.dispatchAction(a)
		if last.ResultKind() == ResultTransition || last.ResultKind() == ResultEnd {
			break
		}
	}
	c.advanceTimeline()
	return c.finish(last)
}

// dispatchAction evaluates one Action and returns its ExecutionResult.
// It updates cursor position as a side effect for goto/exit/enter and
// for event kinds that resolve to navigation.
func (c *Cursor) dispatchAction(a story.Action) ExecutionResult {
	switch a.Kind {
	case story.ActionCode:
		return ActionResult{Label: a.Label, Kind: a.Kind, Code: a.Code}
	case story.ActionGoto:
		c.gotoNode(a.GotoNodeId)
		return TransitionResult{Kind: TransitionNode, TargetId: a.GotoNodeId}
	case story.ActionExit:
		if a.ExitScope == story.ExitGroup {
			c.nodeId, c.groupId = 0, 0
			return EndResult{Reason: EndExitGroup}
		}
		c.nodeId = 0
		return EndResult{Reason: EndExitNode}
	case story.ActionEnter:
		return c.enterGroup(a.EnterGroupId)
	case story.ActionChoice:
		c.pendingChoice = &a
		c.chosen = false
		return ChoiceResult{Label: a.Label, Options: choiceEntries(a.Choices)}
	case story.ActionEvent:
		return c.dispatchEvent(a.Label, a.Event)
	default:
		return EndResult{Reason: EndInvalidItem}
	}
}

func choiceEntries(opts []story.ChoiceOption) []ChoiceEntry {
	entries := make([]ChoiceEntry, len(opts))
	for i, o := range opts {
		entries[i] = ChoiceEntry{Index: i, Text: o.Text}
	}
	return entries
}

// gotoNode repositions the cursor to the given node within the current
// group, resetting the timeline index to 0.
func (c *Cursor) gotoNode(nodeId int) {
	c.nodeId = nodeId
	c.timeIdx = 0
	c.transitioned = true
}

// enterGroup looks up the target group and positions the cursor at its
// chapter and start node.
func (c *Cursor) enterGroup(groupId int) ExecutionResult {
	gr, ok := c.graph.GetGroup(groupId)
	if !ok {
		return EndResult{Reason: EndInvalidItem}
	}
	c.groupId = groupId
	c.chapterId = gr.ChapterId
	c.nodeId = gr.Graph.StartId
	c.timeIdx = 0
	c.transitioned = true
	return TransitionResult{Kind: TransitionGroup, TargetId: groupId}
}

// dispatchEvent evaluates one event per spec.md §4.4's event
// evaluation table. next-node/exit-current-node/exit-current-group
// resolve entirely inside the cursor, exactly like their Action
// counterparts; every other kind is passed through to the host as a
// normalized EventResult.
func (c *Cursor) dispatchEvent(label int, ev story.Event) ExecutionResult {
	switch e := ev.(type) {
	case story.NextNodeEvent:
		return c.nextNode()
	case story.ExitCurrentNodeEvent:
		c.nodeId = 0
		return EndResult{Reason: EndExitNode}
	case story.ExitCurrentGroupEvent:
		c.nodeId, c.groupId = 0, 0
		return EndResult{Reason: EndExitGroup}
	case story.AdjustVariableEvent:
		return EventResult{Label: label, Kind: story.EventAdjustVariable, Payload: adjustVariablePayload(e)}
	case story.AddStateEvent:
		return EventResult{Label: label, Kind: story.EventAddState, Payload: StateChangePayload{State: e.State, Character: e.Character, Add: true}}
	case story.RemoveStateEvent:
		return EventResult{Label: label, Kind: story.EventRemoveState, Payload: StateChangePayload{State: e.State, Character: e.Character, Add: false}}
	case story.ProgressStoryEvent:
		c.applyProgressStory(e)
		return EventResult{Label: label, Kind: story.EventProgressStory, Payload: ProgressStoryPayload{ChapterId: e.ChapterId, GroupId: e.GroupId, NodeId: e.NodeId}}
	case story.LinkedListEvent:
		return EventResult{Label: label, Kind: story.EventLinkedList, Payload: c.linkedListPayload(e)}
	default:
		return EndResult{Reason: EndInvalidItem}
	}
}

// nextNode looks up the current group's point-map entry for the
// current node id. An empty or missing entry ends the group with
// no-next-node; otherwise the first listed successor is taken.
func (c *Cursor) nextNode() ExecutionResult {
	gr, ok := c.graph.GetGroup(c.groupId)
	if !ok {
		return EndResult{Reason: EndNoNextNode}
	}
	successors := gr.Graph.Points[c.nodeId]
	if len(successors) == 0 {
		return EndResult{Reason: EndNoNextNode}
	}
	c.gotoNode(successors[0])
	return TransitionResult{Kind: TransitionNode, TargetId: successors[0]}
}

func adjustVariablePayload(e story.AdjustVariableEvent) AdjustVariablePayload {
	switch op := e.Op.(type) {
	case story.IncrementOp:
		return AdjustVariablePayload{Variable: e.Name, Operation: AdjustIncrement, Value: story.FloatLiteral(op.Amount)}
	case story.SetValueOp:
		return AdjustVariablePayload{Variable: e.Name, Operation: AdjustSet, Value: op.Value}
	case story.ToggleOp:
		return AdjustVariablePayload{Variable: e.Name, Operation: AdjustToggle}
	default:
		return AdjustVariablePayload{Variable: e.Name}
	}
}

// applyProgressStory updates whichever of chapter/group/node were
// supplied; unset targets (nil) are left unchanged. A node update also
// resets the timeline index. Per spec §9(b), all three unset is a
// semantic no-op, but the step still completes normally rather than
// failing.
func (c *Cursor) applyProgressStory(e story.ProgressStoryEvent) {
	if e.ChapterId != nil {
		c.chapterId = *e.ChapterId
	}
	if e.GroupId != nil {
		c.groupId = *e.GroupId
	}
	if e.NodeId != nil {
		c.nodeId = *e.NodeId
		c.timeIdx = 0
		c.transitioned = true
	}
}

// linkedListPayload derives a normalized modification list from the
// parsed values array, substituting any parameter-stack override the
// caller pushed under context=list-name, key=field-name, and computes
// the affected-characters set: characters that both own the list and
// whose list name is declared in the current group's linked-lists
// sequence.
func (c *Cursor) linkedListPayload(e story.LinkedListEvent) LinkedListPayload {
	llt, _ := c.graph.GetLinkedListType(e.ListName)

	mods := make([]LinkedListModification, 0, len(e.Values))
	for _, v := range e.Values {
		value := v.Value
		if override, ok := c.takeParameter(e.ListName, v.Field); ok {
			value = override
		}
		mods = append(mods, LinkedListModification{Field: v.Field, Op: v.Kind, Value: value})
	}

	var affected []string
	gr, ok := c.graph.GetGroup(c.groupId)
	if ok && groupDeclaresList(gr, e.ListName) {
		for _, ch := range c.graph.Characters {
			if _, owns := ch.ListData(e.ListName); owns {
				affected = append(affected, ch.Name)
			}
		}
	}

	return LinkedListPayload{ListName: e.ListName, Scope: llt.Scope, Modifications: mods, AffectedCharacters: affected}
}

func groupDeclaresList(gr story.Group, listName string) bool {
	for _, name := range gr.LinkedLists {
		if name == listName {
			return true
		}
	}
	return false
}
