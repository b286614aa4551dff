// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package story_test

import (
	"testing"

	"github.com/mdhender/sdc/internal/sdc/story"
)

func graphWithTaggedGroup(tags []story.TagApplication, defs []story.TagDefinition) *story.Graph {
	g := story.New()
	g.Tags = defs
	g.Chapters = []story.Chapter{{Id: 1, Name: "One"}}
	g.Nodes = []story.Node{{Id: 1, Title: "N1"}}
	g.Groups = []story.Group{{
		Id:        1,
		ChapterId: 1,
		Name:      "g",
		Tags:      tags,
		Graph:     story.NodeGraph{StartId: 1, EndId: 1, Points: map[int][]int{}},
	}}
	return g
}

func TestValidateReferences_UnknownTagName(t *testing.T) {
	g := graphWithTaggedGroup([]story.TagApplication{{TagName: "Mood"}}, nil)
	ref := g.ValidateReferences()
	if ref == nil {
		t.Fatalf("expected an unresolved tag reference")
	}
	if ref.Kind != story.RefTag {
		t.Fatalf("kind=%s, want tag", ref.Kind)
	}
}

func TestValidateReferences_UnknownSelectedKey(t *testing.T) {
	selected := "Nope"
	defs := []story.TagDefinition{{Name: "Mood", Kind: story.TagKeyValue, Keys: []string{"Happy", "Sad"}}}
	g := graphWithTaggedGroup([]story.TagApplication{{TagName: "Mood", SelectedKey: &selected}}, defs)
	ref := g.ValidateReferences()
	if ref == nil {
		t.Fatalf("expected an unresolved tag reference for unknown selected key")
	}
	if ref.Kind != story.RefTag {
		t.Fatalf("kind=%s, want tag", ref.Kind)
	}
}

func TestValidateReferences_TagResolvesCleanly(t *testing.T) {
	selected := "Happy"
	defs := []story.TagDefinition{{Name: "Mood", Kind: story.TagKeyValue, Keys: []string{"Happy", "Sad"}}}
	g := graphWithTaggedGroup([]story.TagApplication{{TagName: "Mood", SelectedKey: &selected}}, defs)
	if ref := g.ValidateReferences(); ref != nil {
		t.Fatalf("unexpected unresolved reference: %v", ref)
	}
}
