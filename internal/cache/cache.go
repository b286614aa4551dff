// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package cache memoizes parsed story.Graph values so that a CLI
// invocation (or a long-running host) doesn't re-lex and re-parse the
// same source file on every request.
package cache

import (
	"os"
	"path/filepath"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mdhender/sdc/internal/sdc/parser"
	"github.com/mdhender/sdc/internal/sdc/story"
)

// entry pairs a cached graph with the mtime it was parsed under, so a
// later call with a changed file invalidates it instead of serving
// stale results.
type entry struct {
	modTime string
	graph   *story.Graph
}

// Cache is an LRU of parsed story graphs keyed by absolute source
// path. It does not itself watch the filesystem; staleness is
// detected lazily, the next time that path is requested.
type Cache struct {
	lru *lru.Cache[string, entry]
}

// New creates a Cache holding up to size entries. size must be
// positive.
func New(size int) (*Cache, error) {
	l, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// ParseFile returns the cached graph for path if present and still
// fresh, otherwise parses the file, stores the result, and returns it.
// Parse errors are never cached.
func (c *Cache) ParseFile(path string) parser.Result {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	stamp, err := modStamp(abs)
	if err == nil {
		if e, ok := c.lru.Get(abs); ok && e.modTime == stamp {
			return parser.Result{Graph: e.graph}
		}
	}

	res := parser.ParseFile(abs)
	if res.Err == nil && stamp != "" {
		c.lru.Add(abs, entry{modTime: stamp, graph: res.Graph})
	}
	return res
}

// Len reports the number of graphs currently cached.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge discards every cached graph.
func (c *Cache) Purge() { c.lru.Purge() }

func modStamp(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(fi.ModTime().UnixNano(), 36), nil
}
