// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package cerrs defines constant error types using a custom Error string type.
// It centralizes the sentinel errors shared by the lexer, parser, execution
// cursor, and CLI. The Error type supports comparison via errors.Is().
package cerrs
