// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser_test

import (
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/mdhender/sdc/internal/sdc/parser"
	"github.com/mdhender/sdc/internal/sdc/story"
)

// TestParse_MinimalDialogue covers scenario A from spec.md §8: one
// chapter, one group, one node with a two-line dialogue.
func TestParse_MinimalDialogue(t *testing.T) {
	src := `
chapter 1 { name: "Prologue" }
group 1 { chapter: 1, name: "Opening", content: "", nodes: { start: 1, end: 1, points: {} } }
node 1 { title: "Start", content: "", timeline: { dialogue 1 { A: "hi" B: "hey" } } }
`
	res := parser.ParseString(src)
	if res.Err != nil {
		t.Fatalf("unexpected parse error: %v", res.Err)
	}
	if len(res.Graph.Nodes) != 1 {
		t.Fatalf("len(Nodes)=%d, want 1", len(res.Graph.Nodes))
	}
	n := res.Graph.Nodes[0]
	if len(n.Timeline) != 1 {
		t.Fatalf("len(Timeline)=%d, want 1", len(n.Timeline))
	}
	d, ok := n.Timeline[0].Payload.(story.Dialogue)
	if !ok {
		t.Fatalf("payload is %T, want story.Dialogue", n.Timeline[0].Payload)
	}
	want := story.Dialogue{Lines: []story.DialogueLine{
		{Speaker: "A", Text: "hi"},
		{Speaker: "B", Text: "hey"},
	}}
	if diff := deep.Equal(d, want); diff != nil {
		t.Errorf("dialogue mismatch: %v", diff)
	}
}

// TestParse_CodeActionPreservesWhitespace covers scenario B: the
// code block's interior whitespace survives verbatim.
func TestParse_CodeActionPreservesWhitespace(t *testing.T) {
	src := `node 1 { title: "", content: "", timeline: { action 1 { type: "code" <! x=1; !> } } }`
	res := parser.ParseString(src)
	if res.Err != nil {
		t.Fatalf("unexpected parse error: %v", res.Err)
	}
	a := res.Graph.Nodes[0].Timeline[0].Payload.(story.Action)
	if a.Kind != story.ActionCode {
		t.Fatalf("kind=%s, want code", a.Kind)
	}
	if a.Code != " x=1; " {
		t.Fatalf("code=%q, want %q", a.Code, " x=1; ")
	}
}

// TestParse_ChoiceWithNextNodeEvent covers the choice/event portion of
// scenario C: a choice action whose inner action is a next-node event.
func TestParse_ChoiceWithNextNodeEvent(t *testing.T) {
	src := `
node 1 {
  title: "", content: "",
  timeline: {
    dialogue 1 { A: "hi" }
    action 2 {
      type: "choice"
      choices: [
        { text: "Go" choice: { action 3 { type: "event" data: { type: "next-node" } } } }
      ]
    }
  }
}
`
	res := parser.ParseString(src)
	if res.Err != nil {
		t.Fatalf("unexpected parse error: %v", res.Err)
	}
	a := res.Graph.Nodes[0].Timeline[1].Payload.(story.Action)
	if a.Kind != story.ActionChoice {
		t.Fatalf("kind=%s, want choice", a.Kind)
	}
	if len(a.Choices) != 1 || a.Choices[0].Text != "Go" {
		t.Fatalf("choices=%+v, want one option \"Go\"", a.Choices)
	}
	inner := a.Choices[0].Actions[0]
	if inner.Kind != story.ActionEvent {
		t.Fatalf("inner kind=%s, want event", inner.Kind)
	}
	if inner.Event.EventKind() != story.EventNextNode {
		t.Fatalf("event kind=%s, want next-node", inner.Event.EventKind())
	}
}

// TestParse_GotoFlatForm covers the flat-reference form of an action:
// `goto: @node(N)` outside of a `data` block.
func TestParse_GotoFlatForm(t *testing.T) {
	src := `node 1 { title: "", content: "", timeline: { action 1 { goto: @node(7) } } }`
	res := parser.ParseString(src)
	if res.Err != nil {
		t.Fatalf("unexpected parse error: %v", res.Err)
	}
	a := res.Graph.Nodes[0].Timeline[0].Payload.(story.Action)
	if a.Kind != story.ActionGoto {
		t.Fatalf("kind=%s, want goto", a.Kind)
	}
	if a.GotoNodeId != 7 {
		t.Fatalf("GotoNodeId=%d, want 7", a.GotoNodeId)
	}
}

// TestParse_AdjustVariableIncrement covers scenario D.
func TestParse_AdjustVariableIncrement(t *testing.T) {
	src := `node 1 { title: "", content: "", timeline: {
		action 1 { type: "event" data: { type: "adjust-variable" name: "Money" increment: 5.6 } }
	} }`
	res := parser.ParseString(src)
	if res.Err != nil {
		t.Fatalf("unexpected parse error: %v", res.Err)
	}
	a := res.Graph.Nodes[0].Timeline[0].Payload.(story.Action)
	ev, ok := a.Event.(story.AdjustVariableEvent)
	if !ok {
		t.Fatalf("event is %T, want AdjustVariableEvent", a.Event)
	}
	if ev.Name != "Money" {
		t.Fatalf("name=%q, want Money", ev.Name)
	}
	inc, ok := ev.Op.(story.IncrementOp)
	if !ok {
		t.Fatalf("op is %T, want IncrementOp", ev.Op)
	}
	if inc.Amount != 5.6 {
		t.Fatalf("amount=%v, want 5.6", inc.Amount)
	}
}

// TestParse_LinkedListEvent covers the structural half of scenario E.
func TestParse_LinkedListEvent(t *testing.T) {
	src := `node 1 { title: "", content: "", timeline: {
		action 1 { type: "event" data: {
			type: "linked-list"
			reference: "Profession"
			values: [ "Value": { amount: 4 } ]
		} }
	} }`
	res := parser.ParseString(src)
	if res.Err != nil {
		t.Fatalf("unexpected parse error: %v", res.Err)
	}
	a := res.Graph.Nodes[0].Timeline[0].Payload.(story.Action)
	ev, ok := a.Event.(story.LinkedListEvent)
	if !ok {
		t.Fatalf("event is %T, want LinkedListEvent", a.Event)
	}
	if ev.ListName != "Profession" {
		t.Fatalf("list name=%q, want Profession", ev.ListName)
	}
	if len(ev.Values) != 1 || ev.Values[0].Field != "Value" || ev.Values[0].Kind != story.FieldOpAmount {
		t.Fatalf("values=%+v, want one amount op on Value", ev.Values)
	}
	amount := ev.Values[0].Value.(story.IntLiteral)
	if amount != 4 {
		t.Fatalf("amount=%v, want 4", amount)
	}
}

// TestParse_UnterminatedCodeBlockFails covers scenario F: the error
// message must reference the opening line.
func TestParse_UnterminatedCodeBlockFails(t *testing.T) {
	src := "node 1 { title: \"\", content: \"\", timeline: {\n  action 1 { type: \"code\" <! foo\n} } }"
	res := parser.ParseString(src)
	if res.Err == nil {
		t.Fatalf("expected a parse error")
	}
	if res.Graph != nil {
		t.Fatalf("expected no graph on failure")
	}
	if res.Err.Line != 2 {
		t.Fatalf("error line=%d, want 2 (the opening line of the code block)", res.Err.Line)
	}
	if !strings.Contains(res.Err.Error(), "Error at line") {
		t.Fatalf("error message=%q, want the 'Error at line L, column C' form", res.Err.Error())
	}
}

// TestParse_GlobalVariableTypeMismatchFails covers property 4/invariant
// enforcement: a default literal whose type disagrees with the
// declared type is a parse error.
func TestParse_GlobalVariableTypeMismatchFails(t *testing.T) {
	src := `global_vars [ "Money": { type: "int", default: "oops" } ]`
	res := parser.ParseString(src)
	if res.Err == nil {
		t.Fatalf("expected a parse error for mismatched default literal")
	}
}

// TestParse_DuplicateChapterIdFails covers property 3.
func TestParse_DuplicateChapterIdFails(t *testing.T) {
	src := `
chapter 1 { name: "One" }
chapter 1 { name: "Again" }
`
	res := parser.ParseString(src)
	if res.Err == nil {
		t.Fatalf("expected a parse error for duplicate chapter id")
	}
}

// TestParse_UnknownLinkedListReferenceFails enforces the Character
// entity's hard invariant regardless of section order.
func TestParse_UnknownLinkedListReferenceFails(t *testing.T) {
	src := `characters [ "Saniyah": { biography: "", description: "", linked-list-data: { Profession: { Value: 4 } } } ]`
	res := parser.ParseString(src)
	if res.Err == nil {
		t.Fatalf("expected a parse error for unresolved linked-list name")
	}
}

// TestParse_SectionOrderIndependence verifies that characters may
// precede the linked-lists they reference.
func TestParse_SectionOrderIndependence(t *testing.T) {
	src := `
characters [ "Saniyah": { biography: "", description: "", linked-list-data: { Profession: { Value: 4 } } } ]
linked-lists [ "Profession": { scope: "character", structure: { Value: { type: "int" } } } ]
`
	res := parser.ParseString(src)
	if res.Err != nil {
		t.Fatalf("unexpected parse error: %v", res.Err)
	}
	if len(res.Graph.Characters) != 1 {
		t.Fatalf("len(Characters)=%d, want 1", len(res.Graph.Characters))
	}
}
