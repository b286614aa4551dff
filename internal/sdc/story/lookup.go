// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package story

import "fmt"

// GetState returns the state with the given name.
func (g *Graph) GetState(name string) (State, bool) {
	for _, s := range g.States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

// GetGlobalVariable returns the global variable with the given name.
func (g *Graph) GetGlobalVariable(name string) (GlobalVariable, bool) {
	for _, v := range g.GlobalVariables {
		if v.Name == name {
			return v, true
		}
	}
	return GlobalVariable{}, false
}

// GetTagDefinition returns the tag definition with the given name.
func (g *Graph) GetTagDefinition(name string) (TagDefinition, bool) {
	for _, tg := range g.Tags {
		if tg.Name == name {
			return tg, true
		}
	}
	return TagDefinition{}, false
}

// GetLinkedListType returns the linked-list type with the given name.
func (g *Graph) GetLinkedListType(name string) (LinkedListType, bool) {
	for _, l := range g.LinkedLists {
		if l.Name == name {
			return l, true
		}
	}
	return LinkedListType{}, false
}

// GetCharacter returns the character with the given name.
func (g *Graph) GetCharacter(name string) (Character, bool) {
	for _, c := range g.Characters {
		if c.Name == name {
			return c, true
		}
	}
	return Character{}, false
}

// GetChapter returns the chapter with the given id.
func (g *Graph) GetChapter(id int) (Chapter, bool) {
	for _, c := range g.Chapters {
		if c.Id == id {
			return c, true
		}
	}
	return Chapter{}, false
}

// GetGroup returns the group with the given id.
func (g *Graph) GetGroup(id int) (Group, bool) {
	for _, gr := range g.Groups {
		if gr.Id == id {
			return gr, true
		}
	}
	return Group{}, false
}

// GetNode returns the node with the given id.
func (g *Graph) GetNode(id int) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Id == id {
			return n, true
		}
	}
	return Node{}, false
}

// GroupsInChapter returns, in authored order, every group whose
// ChapterId matches id.
func (g *Graph) GroupsInChapter(id int) []Group {
	var out []Group
	for _, gr := range g.Groups {
		if gr.ChapterId == id {
			out = append(out, gr)
		}
	}
	return out
}

// ReferenceKind names the entity a dangling reference pointed at, for
// reporting by ValidateReferences.
type ReferenceKind int

const (
	RefChapter ReferenceKind = iota
	RefGroup
	RefNode
	RefTag
)

func (k ReferenceKind) String() string {
	switch k {
	case RefChapter:
		return "chapter"
	case RefGroup:
		return "group"
	case RefNode:
		return "node"
	case RefTag:
		return "tag"
	default:
		return "unknown"
	}
}

// UnresolvedReference describes the first @chapter/@group/@node
// reference that ValidateReferences found pointing at a nonexistent id.
type UnresolvedReference struct {
	Kind    ReferenceKind
	Id      int
	Context string // e.g. "group 3 parent-group", "node 7 action 2 goto"
}

func (u UnresolvedReference) Error() string {
	if u.Kind == RefTag {
		return fmt.Sprintf("unresolved %s reference (%s)", u.Kind, u.Context)
	}
	return fmt.Sprintf("unresolved %s reference %d (%s)", u.Kind, u.Id, u.Context)
}

// ValidateReferences walks every @chapter(n)/@group(n)/@node(n) reference
// reachable from the graph and reports the first one that does not
// resolve to a declared entity. It implements the soft referential-
// integrity invariant from spec.md §4.3: syntactically valid references
// that point at nothing are reported here, not during parsing.
func (g *Graph) ValidateReferences() *UnresolvedReference {
	for _, gr := range g.Groups {
		if _, ok := g.GetChapter(gr.ChapterId); !ok {
			return &UnresolvedReference{Kind: RefChapter, Id: gr.ChapterId, Context: fmt.Sprintf("group %d chapter-id", gr.Id)}
		}
		if gr.ParentGroupId != nil {
			if _, ok := g.GetGroup(*gr.ParentGroupId); !ok {
				return &UnresolvedReference{Kind: RefGroup, Id: *gr.ParentGroupId, Context: fmt.Sprintf("group %d parent-group", gr.Id)}
			}
		}
		if ref := g.validateNodeGraph(gr); ref != nil {
			return ref
		}
		if ref := g.validateGroupTags(gr); ref != nil {
			return ref
		}
	}
	for _, n := range g.Nodes {
		for _, item := range n.Timeline {
			action, ok := item.Payload.(Action)
			if !ok {
				continue
			}
			if ref := g.validateAction(n.Id, action); ref != nil {
				return ref
			}
		}
	}
	return nil
}

func (g *Graph) validateNodeGraph(gr Group) *UnresolvedReference {
	if gr.Graph.StartId != 0 {
		if _, ok := g.GetNode(gr.Graph.StartId); !ok {
			return &UnresolvedReference{Kind: RefNode, Id: gr.Graph.StartId, Context: fmt.Sprintf("group %d start", gr.Id)}
		}
	}
	if gr.Graph.EndId != 0 {
		if _, ok := g.GetNode(gr.Graph.EndId); !ok {
			return &UnresolvedReference{Kind: RefNode, Id: gr.Graph.EndId, Context: fmt.Sprintf("group %d end", gr.Id)}
		}
	}
	for from, tos := range gr.Graph.Points {
		if _, ok := g.GetNode(from); !ok {
			return &UnresolvedReference{Kind: RefNode, Id: from, Context: fmt.Sprintf("group %d points", gr.Id)}
		}
		for _, to := range tos {
			if _, ok := g.GetNode(to); !ok {
				return &UnresolvedReference{Kind: RefNode, Id: to, Context: fmt.Sprintf("group %d points", gr.Id)}
			}
		}
	}
	return nil
}

// validateGroupTags checks spec.md's Group invariant that every applied
// tag's name resolves to a declared TagDefinition, and that a selected
// key (if any) is one of that definition's Keys.
func (g *Graph) validateGroupTags(gr Group) *UnresolvedReference {
	for _, app := range gr.Tags {
		def, ok := g.GetTagDefinition(app.TagName)
		if !ok {
			return &UnresolvedReference{Kind: RefTag, Context: fmt.Sprintf("group %d tag %q", gr.Id, app.TagName)}
		}
		if app.SelectedKey != nil && !tagHasKey(def, *app.SelectedKey) {
			return &UnresolvedReference{Kind: RefTag, Context: fmt.Sprintf("group %d tag %q key %q", gr.Id, app.TagName, *app.SelectedKey)}
		}
	}
	return nil
}

func tagHasKey(def TagDefinition, key string) bool {
	for _, k := range def.Keys {
		if k == key {
			return true
		}
	}
	return false
}

func (g *Graph) validateAction(nodeId int, a Action) *UnresolvedReference {
	switch a.Kind {
	case ActionGoto:
		if _, ok := g.GetNode(a.GotoNodeId); !ok {
			return &UnresolvedReference{Kind: RefNode, Id: a.GotoNodeId, Context: fmt.Sprintf("node %d action %d goto", nodeId, a.Label)}
		}
	case ActionEnter:
		if _, ok := g.GetGroup(a.EnterGroupId); !ok {
			return &UnresolvedReference{Kind: RefGroup, Id: a.EnterGroupId, Context: fmt.Sprintf("node %d action %d enter", nodeId, a.Label)}
		}
	case ActionChoice:
		for _, c := range a.Choices {
			for _, inner := range c.Actions {
				if ref := g.validateAction(nodeId, inner); ref != nil {
					return ref
				}
			}
		}
	case ActionEvent:
		if ev, ok := a.Event.(ProgressStoryEvent); ok {
			if ev.ChapterId != nil {
				if _, ok := g.GetChapter(*ev.ChapterId); !ok {
					return &UnresolvedReference{Kind: RefChapter, Id: *ev.ChapterId, Context: fmt.Sprintf("node %d action %d progress-story", nodeId, a.Label)}
				}
			}
			if ev.GroupId != nil {
				if _, ok := g.GetGroup(*ev.GroupId); !ok {
					return &UnresolvedReference{Kind: RefGroup, Id: *ev.GroupId, Context: fmt.Sprintf("node %d action %d progress-story", nodeId, a.Label)}
				}
			}
			if ev.NodeId != nil {
				if _, ok := g.GetNode(*ev.NodeId); !ok {
					return &UnresolvedReference{Kind: RefNode, Id: *ev.NodeId, Context: fmt.Sprintf("node %d action %d progress-story", nodeId, a.Label)}
				}
			}
		}
	}
	return nil
}
