// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"reflect"

	"github.com/mdhender/sdc/cerrs"
)

// Config allows each player to have their own configuration.
type Config struct {
	AllowConfig bool         `json:"AllowConfig,omitempty"`
	Stories     Stories_t    `json:"Stories"`
	DebugFlags  DebugFlags_t `json:"DebugFlags"`
}

// Stories_t controls where the CLI looks for story documents and how
// aggressively it caches parsed graphs.
type Stories_t struct {
	Path      string `json:"Path,omitempty"`      // default directory to search for .sdc files
	CacheSize int    `json:"CacheSize,omitempty"` // LRU capacity for parsed story graphs
}

type DebugFlags_t struct {
	Lexer  bool `json:"Lexer,omitempty"`
	Parser bool `json:"Parser,omitempty"`
	Cursor bool `json:"Cursor,omitempty"`
}

func Default() *Config {
	return &Config{
		Stories: Stories_t{
			Path:      "data/stories",
			CacheSize: 16,
		},
	}
}

func Load(name string, debug bool) (*Config, error) {
	if debug {
		log.Printf("[config] %q: loading configuration...\n", name)
	}
	// create a config with default values for the application
	cfg := Default()
	if sb, err := os.Stat(name); errors.Is(err, os.ErrNotExist) || os.IsNotExist(err) {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if sb.Mode().IsDir() {
		return cfg, cerrs.ErrNotAFile
	} else if !sb.Mode().IsRegular() {
		return cfg, cerrs.ErrNotAFile
	}

	var tmp Config
	if data, err := os.ReadFile(name); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if err = json.Unmarshal(data, &tmp); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if debug {
		if nice, err := json.MarshalIndent(tmp, "", "  "); err == nil {
			log.Printf("[config] %s\n", nice)
		} else {
			log.Printf("[config] %q: loaded %s\n", name, string(data))
		}
	}

	// copy over every value from tmp to config that isn't the default (zero) value
	copyNonZeroFields(&tmp, cfg)
	if cfg.Stories.CacheSize <= 0 {
		cfg.Stories.CacheSize = 1
	}

	return cfg, nil
}

// copyNonZeroFields recursively copies non-zero fields from src to dst using reflection
func copyNonZeroFields(src, dst interface{}) {
	srcVal := reflect.ValueOf(src)
	dstVal := reflect.ValueOf(dst)

	// Dereference pointers
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}
	if dstVal.Kind() == reflect.Ptr {
		dstVal = dstVal.Elem()
	}

	// Only work with structs
	if srcVal.Kind() != reflect.Struct || dstVal.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < srcVal.NumField(); i++ {
		srcField := srcVal.Field(i)
		dstField := dstVal.Field(i)

		// Skip unexported fields
		if !srcField.CanInterface() || !dstField.CanSet() {
			continue
		}

		// Check if source field is zero value
		if srcField.IsZero() {
			continue
		}

		// Handle different field types
		switch srcField.Kind() {
		case reflect.Struct:
			// Recursively copy struct fields
			copyNonZeroFields(srcField.Interface(), dstField.Addr().Interface())
		default:
			// Copy primitive types and other values
			dstField.Set(srcField)
		}
	}
}
