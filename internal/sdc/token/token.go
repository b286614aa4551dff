// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package token defines the lexical tokens produced by the story-document
// lexer and consumed by the story-document parser.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	Error

	// literals

	Identifier
	String
	Integer
	Float
	Boolean
	CodeBlock // opaque text between <! and !>

	// punctuation

	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Colon    // :
	Comma    // ,
	At       // @
	LParen   // (
	RParen   // )

	// keywords

	KeywordStates
	KeywordGlobalVars
	KeywordLinkedLists
	KeywordCharacters
	KeywordTags
	KeywordChapter
	KeywordGroup
	KeywordNode
	KeywordDialogue
	KeywordAction
	KeywordType
	KeywordColor
	KeywordKeys
	KeywordScope
	KeywordStructure
	KeywordBiography
	KeywordDescription
	KeywordDefault
	KeywordName
	KeywordContent
	KeywordParentGroup
	KeywordNodes
	KeywordStart
	KeywordEnd
	KeywordPoints
	KeywordTimeline
	KeywordChoices
	KeywordChoice
	KeywordText
	KeywordData
	KeywordGoto
	KeywordExit
	KeywordEnter
	KeywordTitle
	KeywordReference
	KeywordValues
	KeywordValue
	KeywordIncrement
	KeywordToggle
	KeywordAmount
	KeywordSet
	KeywordAppend
	KeywordReplace
	KeywordCharacter
)

var names = map[Kind]string{
	EOF:                 "EOF",
	Error:               "Error",
	Identifier:          "Identifier",
	String:              "String",
	Integer:             "Integer",
	Float:               "Float",
	Boolean:             "Boolean",
	CodeBlock:           "CodeBlock",
	LBrace:              "{",
	RBrace:              "}",
	LBracket:            "[",
	RBracket:            "]",
	Colon:               ":",
	Comma:               ",",
	At:                  "@",
	LParen:              "(",
	RParen:              ")",
	KeywordStates:       "states",
	KeywordGlobalVars:   "global_vars",
	KeywordLinkedLists:  "linked-lists",
	KeywordCharacters:   "characters",
	KeywordTags:         "tags",
	KeywordChapter:      "chapter",
	KeywordGroup:        "group",
	KeywordNode:         "node",
	KeywordDialogue:     "dialogue",
	KeywordAction:       "action",
	KeywordType:         "type",
	KeywordColor:        "color",
	KeywordKeys:         "keys",
	KeywordScope:        "scope",
	KeywordStructure:    "structure",
	KeywordBiography:    "biography",
	KeywordDescription:  "description",
	KeywordDefault:      "default",
	KeywordName:         "name",
	KeywordContent:      "content",
	KeywordParentGroup:  "parent-group",
	KeywordNodes:        "nodes",
	KeywordStart:        "start",
	KeywordEnd:          "end",
	KeywordPoints:       "points",
	KeywordTimeline:     "timeline",
	KeywordChoices:      "choices",
	KeywordChoice:       "choice",
	KeywordText:         "text",
	KeywordData:         "data",
	KeywordGoto:         "goto",
	KeywordExit:         "exit",
	KeywordEnter:        "enter",
	KeywordTitle:        "title",
	KeywordReference:    "reference",
	KeywordValues:       "values",
	KeywordValue:        "value",
	KeywordIncrement:    "increment",
	KeywordToggle:       "toggle",
	KeywordAmount:       "amount",
	KeywordSet:          "set",
	KeywordAppend:       "append",
	KeywordReplace:      "replace",
	KeywordCharacter:    "character",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps the lowercase spelling of a reserved word to its Kind.
// Identifiers that don't appear here lex as plain Identifier tokens.
var Keywords = map[string]Kind{
	"states":        KeywordStates,
	"global_vars":   KeywordGlobalVars,
	"linked-lists":  KeywordLinkedLists,
	"characters":    KeywordCharacters,
	"tags":          KeywordTags,
	"chapter":       KeywordChapter,
	"group":         KeywordGroup,
	"node":          KeywordNode,
	"dialogue":      KeywordDialogue,
	"action":        KeywordAction,
	"type":          KeywordType,
	"color":         KeywordColor,
	"keys":          KeywordKeys,
	"scope":         KeywordScope,
	"structure":     KeywordStructure,
	"biography":     KeywordBiography,
	"description":   KeywordDescription,
	"default":       KeywordDefault,
	"name":          KeywordName,
	"content":       KeywordContent,
	"parent-group":  KeywordParentGroup,
	"nodes":         KeywordNodes,
	"start":         KeywordStart,
	"end":           KeywordEnd,
	"points":        KeywordPoints,
	"timeline":      KeywordTimeline,
	"choices":       KeywordChoices,
	"choice":        KeywordChoice,
	"text":          KeywordText,
	"data":          KeywordData,
	"goto":          KeywordGoto,
	"exit":          KeywordExit,
	"enter":         KeywordEnter,
	"title":         KeywordTitle,
	"reference":     KeywordReference,
	"values":        KeywordValues,
	"value":         KeywordValue,
	"increment":     KeywordIncrement,
	"toggle":        KeywordToggle,
	"amount":        KeywordAmount,
	"set":           KeywordSet,
	"append":        KeywordAppend,
	"replace":       KeywordReplace,
	"character":     KeywordCharacter,
}

// Token is one lexical unit of a story document.
type Token struct {
	Kind   Kind
	Lexeme string // verbatim source text backing this token
	Line   int    // 1-based
	Column int    // 1-based

	// Value carries the decoded literal for String, Integer, Float,
	// Boolean, and CodeBlock tokens. It is nil for everything else.
	Value any
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Lexeme, t.Line, t.Column)
}
