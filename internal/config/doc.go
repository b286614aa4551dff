// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package config manages JSON configuration loading for the sdc CLI. It
// handles the default story-document search path, the parsed-graph cache
// size, and debug flags for the lexer, parser, and execution cursor.
// Configuration is loaded from a sdc.json file with sensible defaults.
package config
