// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mdhender/sdc/internal/cache"
)

const minimalStory = `node 1 { title: "", content: "", timeline: { dialogue 1 { A: "hi" } } }`

func TestCache_HitsOnSecondParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.sdc")
	if err := os.WriteFile(path, []byte(minimalStory), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := cache.New(4)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}

	r1 := c.ParseFile(path)
	if r1.Err != nil {
		t.Fatalf("first parse: %v", r1.Err)
	}
	if c.Len() != 1 {
		t.Fatalf("len=%d, want 1", c.Len())
	}

	r2 := c.ParseFile(path)
	if r2.Err != nil {
		t.Fatalf("second parse: %v", r2.Err)
	}
	if len(r2.Graph.Nodes) != 1 {
		t.Fatalf("cached graph has %d nodes, want 1", len(r2.Graph.Nodes))
	}
}

func TestCache_InvalidatesOnModification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.sdc")
	if err := os.WriteFile(path, []byte(minimalStory), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := cache.New(4)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	if r := c.ParseFile(path); r.Err != nil {
		t.Fatalf("first parse: %v", r.Err)
	}

	// Ensure the new mtime differs from the first stat.
	future := time.Now().Add(time.Second)
	updated := `node 1 { title: "", content: "", timeline: { dialogue 1 { A: "bye" } } }
node 2 { title: "", content: "", timeline: { dialogue 1 { B: "hi" } } }`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	r := c.ParseFile(path)
	if r.Err != nil {
		t.Fatalf("second parse: %v", r.Err)
	}
	if len(r.Graph.Nodes) != 2 {
		t.Fatalf("len(Nodes)=%d, want 2 after modification", len(r.Graph.Nodes))
	}
}

func TestCache_PurgeEmptiesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.sdc")
	if err := os.WriteFile(path, []byte(minimalStory), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := cache.New(4)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	if r := c.ParseFile(path); r.Err != nil {
		t.Fatalf("parse: %v", r.Err)
	}
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("len=%d after purge, want 0", c.Len())
	}
}
