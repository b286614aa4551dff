// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package parser implements the hand-written recursive-descent parser
// that turns a token stream into a story.Graph.
package parser

import (
	"fmt"
	"os"

	"github.com/mdhender/sdc/cerrs"
	"github.com/mdhender/sdc/internal/sdc/lexer"
	"github.com/mdhender/sdc/internal/sdc/story"
	"github.com/mdhender/sdc/internal/sdc/token"
)

// ParseError is the single first-wins failure a parse may produce.
type ParseError struct {
	Line   int
	Column int
	Lexeme string
	What   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error at line %d, column %d: %s (got '%s')", e.Line, e.Column, e.What, e.Lexeme)
}

// Result is the outcome of one parse: either a populated Graph, or an
// error and no graph. There is no global, process-wide error state
// (spec §9); every call to ParseString/ParseFile returns its own Result
// so multiple parses may run concurrently.
type Result struct {
	Graph *story.Graph
	Err   *ParseError
}

// Parser holds the mutable state of one recursive-descent parse: the
// lexer it reads from, the current and lookahead tokens, and the first
// error encountered (subsequent errors are ignored).
type Parser struct {
	lx   *lexer.Lexer
	cur  token.Token
	peek token.Token
	err  *ParseError

	graph *story.Graph
}

func newParser(src []byte) *Parser {
	p := &Parser{lx: lexer.New(src), graph: story.New()}
	p.advance()
	p.advance()
	return p
}

// ParseString parses an in-memory story document.
func ParseString(source string) Result {
	p := newParser([]byte(source))
	return p.parse()
}

// ParseFile reads and parses a story document from disk.
func ParseFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Err: &ParseError{What: err.Error()}}
	}
	return ParseString(string(data))
}

func (p *Parser) parse() Result {
	for !p.atEnd() && p.err == nil {
		switch p.cur.Kind {
		case token.KeywordStates:
			p.parseStates()
		case token.KeywordGlobalVars:
			p.parseGlobalVars()
		case token.KeywordLinkedLists:
			p.parseLinkedLists()
		case token.KeywordCharacters:
			p.parseCharacters()
		case token.KeywordTags:
			p.parseTags()
		case token.KeywordChapter:
			p.parseChapter()
		case token.KeywordGroup:
			p.parseGroup()
		case token.KeywordNode:
			p.parseNode()
		case token.Error:
			// spec §9(c): any lexer Error token seen during parsing is
			// a hard parse failure, regardless of what produced it.
			p.setError(p.cur, "lexical error")
		default:
			// tolerate stray tokens at the top level
			p.advance()
		}
	}
	if p.err != nil {
		return Result{Err: p.err}
	}
	for _, ch := range p.graph.Characters {
		if err := p.validateCharacterLists(ch); err != nil {
			p.setError(p.cur, err.Error())
			return Result{Err: p.err}
		}
	}
	return Result{Graph: p.graph}
}

// ---- token primitives ----

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lx.Next()
}

func (p *Parser) atEnd() bool {
	return p.cur.Kind == token.EOF
}

func (p *Parser) check(kind token.Kind) bool {
	return p.cur.Kind == kind
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches kind, else records
// the first parse error. Returns the consumed token (zero value on
// failure).
func (p *Parser) expect(kind token.Kind, what string) token.Token {
	if p.check(kind) {
		tk := p.cur
		p.advance()
		return tk
	}
	p.setError(p.cur, what)
	return token.Token{}
}

// setError records msg as the first-wins parse error; later calls are
// ignored once an error is already recorded.
func (p *Parser) setError(at token.Token, what string) {
	if p.err != nil {
		return
	}
	p.err = &ParseError{Line: at.Line, Column: at.Column, Lexeme: at.Lexeme, What: what}
}

func (p *Parser) failed() bool {
	return p.err != nil
}

// optionalComma consumes a trailing comma if present; commas are
// optional separators almost everywhere in the grammar (spec §4.2).
func (p *Parser) optionalComma() {
	p.match(token.Comma)
}

// fieldName accepts any token that carries a usable name: an
// Identifier, a quoted String, or any keyword used positionally as a
// field or speaker name.
func (p *Parser) fieldName() (string, bool) {
	tk := p.cur
	switch tk.Kind {
	case token.Identifier:
		p.advance()
		return tk.Lexeme, true
	case token.String:
		p.advance()
		return tk.Value.(string), true
	case token.Error, token.EOF:
		return "", false
	default:
		if tk.Kind > token.RParen { // any keyword kind
			p.advance()
			return tk.Lexeme, true
		}
		return "", false
	}
}

func (p *Parser) expectString(what string) (string, bool) {
	tk := p.expect(token.String, what)
	if p.failed() {
		return "", false
	}
	return tk.Value.(string), true
}

func (p *Parser) expectInteger(what string) (int, bool) {
	tk := p.expect(token.Integer, what)
	if p.failed() {
		return 0, false
	}
	return tk.Value.(int), true
}

// parseLiteral consumes one literal token (string, integer, float, or
// boolean) and returns it as a story.Literal.
func (p *Parser) parseLiteral(what string) (story.Literal, bool) {
	tk := p.cur
	switch tk.Kind {
	case token.String:
		p.advance()
		return story.StringLiteral(tk.Value.(string)), true
	case token.Integer:
		p.advance()
		return story.IntLiteral(tk.Value.(int)), true
	case token.Float:
		p.advance()
		return story.FloatLiteral(tk.Value.(float64)), true
	case token.Boolean:
		p.advance()
		return story.BoolLiteral(tk.Value.(bool)), true
	default:
		p.setError(tk, what)
		return nil, false
	}
}

// referenceKeywordName returns the spelling of a reference's kind
// keyword, for use in parse error messages (the integer id is what the
// graph actually stores).
func referenceKeywordName(k token.Kind) string {
	switch k {
	case token.KeywordNode:
		return "node"
	case token.KeywordGroup:
		return "group"
	case token.KeywordChapter:
		return "chapter"
	default:
		return "unknown"
	}
}

// parseReference consumes `@<kind>(<integer>)` and returns the integer
// target id. kind must be one of KeywordNode, KeywordGroup, KeywordChapter.
func (p *Parser) parseReference(kind token.Kind) (int, bool) {
	p.expect(token.At, "expected '@' in reference")
	if p.failed() {
		return 0, false
	}
	p.expect(kind, fmt.Sprintf("expected '%s' in reference", referenceKeywordName(kind)))
	if p.failed() {
		return 0, false
	}
	p.expect(token.LParen, "expected '(' in reference")
	if p.failed() {
		return 0, false
	}
	id, ok := p.expectInteger("expected integer reference id")
	if !ok {
		return 0, false
	}
	p.expect(token.RParen, "expected ')' in reference")
	if p.failed() {
		return 0, false
	}
	return id, true
}

// duplicateStateName reports whether name already appears in the
// states collection built so far.
func (p *Parser) duplicateStateName(name string) bool {
	_, ok := p.graph.GetState(name)
	return ok
}

func (p *Parser) duplicateGlobalVarName(name string) bool {
	_, ok := p.graph.GetGlobalVariable(name)
	return ok
}

func (p *Parser) duplicateTagName(name string) bool {
	_, ok := p.graph.GetTagDefinition(name)
	return ok
}

func (p *Parser) duplicateLinkedListName(name string) bool {
	_, ok := p.graph.GetLinkedListType(name)
	return ok
}

func (p *Parser) duplicateCharacterName(name string) bool {
	_, ok := p.graph.GetCharacter(name)
	return ok
}

func (p *Parser) duplicateChapterId(id int) bool {
	_, ok := p.graph.GetChapter(id)
	return ok
}

func (p *Parser) duplicateGroupId(id int) bool {
	_, ok := p.graph.GetGroup(id)
	return ok
}

func (p *Parser) duplicateNodeId(id int) bool {
	_, ok := p.graph.GetNode(id)
	return ok
}

func (p *Parser) setDuplicateNameError(name string) {
	p.setError(p.cur, cerrs.ErrDuplicateName.Error()+": "+name)
}

func (p *Parser) setDuplicateIdError(id int) {
	p.setError(p.cur, fmt.Sprintf("%s: %d", cerrs.ErrDuplicateId.Error(), id))
}

// parseAnyReference consumes `@<kind>(<integer>)` for any of the three
// reference kinds and reports which kind was used.
func (p *Parser) parseAnyReference() (kind token.Kind, id int, ok bool) {
	p.expect(token.At, "expected '@' in reference")
	if p.failed() {
		return 0, 0, false
	}
	kind = p.cur.Kind
	switch kind {
	case token.KeywordNode, token.KeywordGroup, token.KeywordChapter:
		p.advance()
	default:
		p.setError(p.cur, "expected node, group, or chapter in reference")
		return 0, 0, false
	}
	p.expect(token.LParen, "expected '(' in reference")
	if p.failed() {
		return 0, 0, false
	}
	id, ok = p.expectInteger("expected integer reference id")
	if !ok {
		return 0, 0, false
	}
	p.expect(token.RParen, "expected ')' in reference")
	if p.failed() {
		return 0, 0, false
	}
	return kind, id, true
}
