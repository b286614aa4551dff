// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/mdhender/sdc/internal/sdc/story"
	"github.com/mdhender/sdc/internal/sdc/token"
)

// parseTimeline consumes the brace-delimited body of a node's timeline:
// an ordered sequence of `dialogue N { … }` and `action N { … }` items.
func (p *Parser) parseTimeline() ([]story.TimelineItem, bool) {
	p.expect(token.LBrace, "expected '{' to open timeline")
	var items []story.TimelineItem
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordDialogue:
			p.advance()
			label, ok := p.expectInteger("expected a dialogue label")
			if !ok {
				return nil, false
			}
			d, ok := p.parseDialogueBody()
			if !ok {
				return nil, false
			}
			items = append(items, story.TimelineItem{Label: label, Payload: d})
		case token.KeywordAction:
			p.advance()
			label, ok := p.expectInteger("expected an action label")
			if !ok {
				return nil, false
			}
			a, ok := p.parseActionBody(label)
			if !ok {
				return nil, false
			}
			items = append(items, story.TimelineItem{Label: label, Payload: a})
		default:
			p.setError(p.cur, "expected 'dialogue' or 'action' in timeline")
			return nil, false
		}
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close timeline")
	if p.failed() {
		return nil, false
	}
	return items, true
}

// parseDialogueBody consumes `{ Speaker: "text"  Speaker: "text"  … }`.
// The speaker is a bare identifier; order is preserved.
func (p *Parser) parseDialogueBody() (story.Dialogue, bool) {
	p.expect(token.LBrace, "expected '{' to open dialogue body")
	var d story.Dialogue
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		speaker, ok := p.fieldName()
		if !ok {
			p.setError(p.cur, "expected a speaker name")
			return story.Dialogue{}, false
		}
		p.expect(token.Colon, "expected ':' after speaker name")
		text, ok := p.expectString("expected dialogue text")
		if !ok {
			return story.Dialogue{}, false
		}
		d.Lines = append(d.Lines, story.DialogueLine{Speaker: speaker, Text: text})
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close dialogue body")
	if p.failed() {
		return story.Dialogue{}, false
	}
	if len(d.Lines) == 0 {
		p.setError(p.cur, "dialogue must be non-empty")
		return story.Dialogue{}, false
	}
	return d, true
}

// parseActionBody consumes one action's brace-delimited field set and
// resolves which of the six ActionKinds it names. Nested structure is
// consumed only inside the recognized fields below, by their own
// sub-parsers; no brace-depth counter is kept, and any other field is
// a parse error rather than being skipped.
func (p *Parser) parseActionBody(label int) (story.Action, bool) {
	p.expect(token.LBrace, "expected '{' to open action body")

	a := story.Action{Label: label}
	var typeName string
	var haveGoto, haveExit, haveEnter bool

	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordType:
			p.advance()
			p.expect(token.Colon, "expected ':' after type")
			s, ok := p.expectString("expected an action type")
			if !ok {
				return story.Action{}, false
			}
			typeName = s
		case token.CodeBlock:
			a.Code = p.cur.Value.(string)
			p.advance()
		case token.KeywordData:
			p.advance()
			p.expect(token.Colon, "expected ':' after data")
			ev, ok := p.parseEventData()
			if !ok {
				return story.Action{}, false
			}
			a.Event = ev
		case token.KeywordChoices:
			p.advance()
			p.expect(token.Colon, "expected ':' after choices")
			choices, ok := p.parseChoices()
			if !ok {
				return story.Action{}, false
			}
			a.Choices = choices
		case token.KeywordGoto:
			p.advance()
			p.expect(token.Colon, "expected ':' after goto")
			id, ok := p.parseReference(token.KeywordNode)
			if !ok {
				return story.Action{}, false
			}
			a.GotoNodeId = id
			haveGoto = true
		case token.KeywordExit:
			p.advance()
			p.expect(token.Colon, "expected ':' after exit")
			s, ok := p.expectString("expected 'node' or 'group'")
			if !ok {
				return story.Action{}, false
			}
			switch s {
			case "node":
				a.ExitScope = story.ExitNode
			case "group":
				a.ExitScope = story.ExitGroup
			default:
				p.setError(p.cur, "exit scope must be 'node' or 'group'")
				return story.Action{}, false
			}
			haveExit = true
		case token.KeywordEnter:
			p.advance()
			p.expect(token.Colon, "expected ':' after enter")
			id, ok := p.parseReference(token.KeywordGroup)
			if !ok {
				return story.Action{}, false
			}
			a.EnterGroupId = id
			haveEnter = true
		default:
			p.setError(p.cur, "unexpected field in action body")
			return story.Action{}, false
		}
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close action body")
	if p.failed() {
		return story.Action{}, false
	}

	switch {
	case typeName == "code":
		a.Kind = story.ActionCode
	case typeName == "event":
		a.Kind = story.ActionEvent
	case typeName == "choice":
		a.Kind = story.ActionChoice
	case haveGoto:
		a.Kind = story.ActionGoto
	case haveExit:
		a.Kind = story.ActionExit
	case haveEnter:
		a.Kind = story.ActionEnter
	default:
		p.setError(p.cur, "action body did not resolve to a known kind")
		return story.Action{}, false
	}
	return a, true
}

// parseChoices consumes
// `[ { text: "…" choice: { action M { … } … } }, … ]`.
func (p *Parser) parseChoices() ([]story.ChoiceOption, bool) {
	p.expect(token.LBracket, "expected '[' to open choices")
	var out []story.ChoiceOption
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		p.expect(token.LBrace, "expected '{' to open choice option")
		var opt story.ChoiceOption
		for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
			switch p.cur.Kind {
			case token.KeywordText:
				p.advance()
				p.expect(token.Colon, "expected ':' after text")
				s, ok := p.expectString("expected choice text")
				if !ok {
					return nil, false
				}
				opt.Text = s
			case token.KeywordChoice:
				p.advance()
				p.expect(token.Colon, "expected ':' after choice")
				actions, ok := p.parseChoiceActions()
				if !ok {
					return nil, false
				}
				opt.Actions = actions
			default:
				p.setError(p.cur, "unexpected field in choice option")
				return nil, false
			}
			p.optionalComma()
		}
		p.expect(token.RBrace, "expected '}' to close choice option")
		if p.failed() {
			return nil, false
		}
		out = append(out, opt)
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']' to close choices")
	if p.failed() {
		return nil, false
	}
	return out, true
}

// parseChoiceActions consumes `{ action M { … } action M2 { … } … }`: a
// nested, ordered sequence of actions with no labels of their own
// wrapper.
func (p *Parser) parseChoiceActions() ([]story.Action, bool) {
	p.expect(token.LBrace, "expected '{' to open choice action sequence")
	var out []story.Action
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		p.expect(token.KeywordAction, "expected 'action' in choice body")
		if p.failed() {
			return nil, false
		}
		label, ok := p.expectInteger("expected an action label")
		if !ok {
			return nil, false
		}
		a, ok := p.parseActionBody(label)
		if !ok {
			return nil, false
		}
		out = append(out, a)
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close choice action sequence")
	if p.failed() {
		return nil, false
	}
	return out, true
}

// parseEventData consumes `{ type: "<event-kind>" …fields… }`.
func (p *Parser) parseEventData() (story.Event, bool) {
	p.expect(token.LBrace, "expected '{' to open event data")
	p.expect(token.KeywordType, "expected 'type' in event data")
	p.expect(token.Colon, "expected ':' after type")
	kindName, ok := p.expectString("expected an event kind")
	if !ok {
		return nil, false
	}
	p.optionalComma()

	var ev story.Event
	switch kindName {
	case "next-node":
		ev = story.NextNodeEvent{}
	case "exit-current-node":
		ev = story.ExitCurrentNodeEvent{}
	case "exit-current-group":
		ev = story.ExitCurrentGroupEvent{}
	case "adjust-variable":
		e, ok := p.parseAdjustVariableEvent()
		if !ok {
			return nil, false
		}
		ev = e
	case "add-state":
		e, ok := p.parseStateEvent()
		if !ok {
			return nil, false
		}
		ev = story.AddStateEvent(e)
	case "remove-state":
		e, ok := p.parseStateEvent()
		if !ok {
			return nil, false
		}
		ev = story.RemoveStateEvent(e)
	case "progress-story":
		e, ok := p.parseProgressStoryEvent()
		if !ok {
			return nil, false
		}
		ev = e
	case "linked-list":
		e, ok := p.parseLinkedListEvent()
		if !ok {
			return nil, false
		}
		ev = e
	default:
		p.setError(p.cur, "unknown event kind "+kindName)
		return nil, false
	}

	// the event-kind-specific parsers above consume up to (but not
	// including) the closing brace of the data object; any of them may
	// leave trailing fields unconsumed only if the grammar is violated.
	p.expect(token.RBrace, "expected '}' to close event data")
	if p.failed() {
		return nil, false
	}
	return ev, true
}

// parseAdjustVariableEvent consumes the remaining fields of
// `adjust-variable`: name, and exactly one of increment/value/toggle.
func (p *Parser) parseAdjustVariableEvent() (story.AdjustVariableEvent, bool) {
	var ev story.AdjustVariableEvent
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordName:
			p.advance()
			p.expect(token.Colon, "expected ':' after name")
			s, ok := p.expectString("expected a variable name")
			if !ok {
				return story.AdjustVariableEvent{}, false
			}
			ev.Name = s
		case token.KeywordIncrement:
			p.advance()
			p.expect(token.Colon, "expected ':' after increment")
			lit, ok := p.parseLiteral("expected an increment amount")
			if !ok {
				return story.AdjustVariableEvent{}, false
			}
			amount, ok := literalAsFloat(lit)
			if !ok {
				p.setError(p.cur, "increment must be numeric")
				return story.AdjustVariableEvent{}, false
			}
			ev.Op = story.IncrementOp{Amount: amount}
		case token.KeywordValue:
			p.advance()
			p.expect(token.Colon, "expected ':' after value")
			lit, ok := p.parseLiteral("expected a value literal")
			if !ok {
				return story.AdjustVariableEvent{}, false
			}
			ev.Op = story.SetValueOp{Value: lit}
		case token.KeywordToggle:
			p.advance()
			p.expect(token.Colon, "expected ':' after toggle")
			if _, ok := p.parseLiteral("expected a toggle marker"); !ok {
				return story.AdjustVariableEvent{}, false
			}
			ev.Op = story.ToggleOp{}
		default:
			p.setError(p.cur, "unexpected field in adjust-variable event")
			return story.AdjustVariableEvent{}, false
		}
		p.optionalComma()
	}
	return ev, true
}

func literalAsFloat(lit story.Literal) (float64, bool) {
	switch v := lit.(type) {
	case story.FloatLiteral:
		return float64(v), true
	case story.IntLiteral:
		return float64(v), true
	default:
		return 0, false
	}
}

type stateEventFields struct {
	State     string
	Character string
}

// parseStateEvent consumes the shared `add-state`/`remove-state` field
// set: name, character.
func (p *Parser) parseStateEvent() (stateEventFields, bool) {
	var ev stateEventFields
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordName:
			p.advance()
			p.expect(token.Colon, "expected ':' after name")
			s, ok := p.expectString("expected a state name")
			if !ok {
				return stateEventFields{}, false
			}
			ev.State = s
		case token.KeywordCharacter:
			p.advance()
			p.expect(token.Colon, "expected ':' after character")
			s, ok := p.expectString("expected a character name")
			if !ok {
				return stateEventFields{}, false
			}
			ev.Character = s
		default:
			p.setError(p.cur, "unexpected field in state event")
			return stateEventFields{}, false
		}
		p.optionalComma()
	}
	return ev, true
}

// parseProgressStoryEvent consumes the optional chapter/group/node
// reference targets; unset targets stay nil (spec §9 sentinel removal).
func (p *Parser) parseProgressStoryEvent() (story.ProgressStoryEvent, bool) {
	var ev story.ProgressStoryEvent
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordChapter:
			p.advance()
			p.expect(token.Colon, "expected ':' after chapter")
			id, ok := p.parseReference(token.KeywordChapter)
			if !ok {
				return story.ProgressStoryEvent{}, false
			}
			ev.ChapterId = &id
		case token.KeywordGroup:
			p.advance()
			p.expect(token.Colon, "expected ':' after group")
			id, ok := p.parseReference(token.KeywordGroup)
			if !ok {
				return story.ProgressStoryEvent{}, false
			}
			ev.GroupId = &id
		case token.KeywordNode:
			p.advance()
			p.expect(token.Colon, "expected ':' after node")
			id, ok := p.parseReference(token.KeywordNode)
			if !ok {
				return story.ProgressStoryEvent{}, false
			}
			ev.NodeId = &id
		default:
			p.setError(p.cur, "unexpected field in progress-story event")
			return story.ProgressStoryEvent{}, false
		}
		p.optionalComma()
	}
	return ev, true
}

// parseLinkedListEvent consumes `reference: list-name; values: [ … ]`.
func (p *Parser) parseLinkedListEvent() (story.LinkedListEvent, bool) {
	var ev story.LinkedListEvent
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordReference:
			p.advance()
			p.expect(token.Colon, "expected ':' after reference")
			s, ok := p.expectString("expected a linked-list name")
			if !ok {
				return story.LinkedListEvent{}, false
			}
			ev.ListName = s
		case token.KeywordValues:
			p.advance()
			p.expect(token.Colon, "expected ':' after values")
			ops, ok := p.parseLinkedListFieldOps()
			if !ok {
				return story.LinkedListEvent{}, false
			}
			ev.Values = ops
		default:
			p.setError(p.cur, "unexpected field in linked-list event")
			return story.LinkedListEvent{}, false
		}
		p.optionalComma()
	}
	return ev, true
}

// parseLinkedListFieldOps consumes
// `[ "FieldName": { amount|set|append|replace|toggle : <literal> }, … ]`.
func (p *Parser) parseLinkedListFieldOps() ([]story.LinkedListFieldOp, bool) {
	p.expect(token.LBracket, "expected '[' to open values")
	var out []story.LinkedListFieldOp
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		fieldName, ok := p.expectString("expected a field name")
		if !ok {
			return nil, false
		}
		p.expect(token.Colon, "expected ':' after field name")
		p.expect(token.LBrace, "expected '{' to open field op")
		var kind story.LinkedListFieldOpKind
		var haveOp bool
		var lit story.Literal
		for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
			var k story.LinkedListFieldOpKind
			switch p.cur.Kind {
			case token.KeywordAmount:
				k = story.FieldOpAmount
			case token.KeywordSet:
				k = story.FieldOpSet
			case token.KeywordAppend:
				k = story.FieldOpAppend
			case token.KeywordReplace:
				k = story.FieldOpReplace
			case token.KeywordToggle:
				k = story.FieldOpToggle
			default:
				p.setError(p.cur, "unexpected field in linked-list value op")
				return nil, false
			}
			p.advance()
			p.expect(token.Colon, "expected ':' after operation name")
			l, ok := p.parseLiteral("expected an operation value")
			if !ok {
				return nil, false
			}
			kind, lit, haveOp = k, l, true
			p.optionalComma()
		}
		p.expect(token.RBrace, "expected '}' to close field op")
		if p.failed() {
			return nil, false
		}
		if !haveOp {
			p.setError(p.cur, "linked-list field op must select one operation")
			return nil, false
		}
		out = append(out, story.LinkedListFieldOp{Field: fieldName, Kind: kind, Value: lit})
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']' to close values")
	if p.failed() {
		return nil, false
	}
	return out, true
}
