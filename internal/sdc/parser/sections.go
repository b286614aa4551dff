// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"fmt"

	"github.com/mdhender/sdc/cerrs"
	"github.com/mdhender/sdc/internal/sdc/story"
	"github.com/mdhender/sdc/internal/sdc/token"
)

// parseStates consumes `states [ "s1", "s2", … ]`.
func (p *Parser) parseStates() {
	p.advance() // 'states'
	p.expect(token.LBracket, "expected '[' after states")
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		name, ok := p.expectString("expected a state name")
		if !ok {
			return
		}
		if p.duplicateStateName(name) {
			p.setDuplicateNameError(name)
			return
		}
		p.graph.States = append(p.graph.States, story.State{Name: name})
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']' to close states")
}

// parseGlobalVars consumes
// `global_vars [ "Name": { type: "…", default: <literal> }, … ]`.
func (p *Parser) parseGlobalVars() {
	p.advance() // 'global_vars'
	p.expect(token.LBracket, "expected '[' after global_vars")
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		name, ok := p.expectString("expected a global variable name")
		if !ok {
			return
		}
		p.expect(token.Colon, "expected ':' after global variable name")
		gv := story.GlobalVariable{Name: name}
		p.expect(token.LBrace, "expected '{' to open global variable body")
		for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
			switch p.cur.Kind {
			case token.KeywordType:
				p.advance()
				p.expect(token.Colon, "expected ':' after type")
				typeName, ok := p.expectString("expected a type name")
				if !ok {
					return
				}
				t, ok := parseValueType(typeName)
				if !ok {
					p.setError(p.cur, "unknown global variable type "+typeName)
					return
				}
				gv.Type = t
			case token.KeywordDefault:
				p.advance()
				p.expect(token.Colon, "expected ':' after default")
				lit, ok := p.parseLiteral("expected a default literal")
				if !ok {
					return
				}
				gv.Default = lit
			default:
				p.setError(p.cur, "unexpected field in global variable body")
				return
			}
			p.optionalComma()
		}
		p.expect(token.RBrace, "expected '}' to close global variable body")
		if p.failed() {
			return
		}
		if gv.Default != nil && !story.LiteralMatchesType(gv.Default, gv.Type) {
			p.setError(p.cur, "default literal type mismatch for global variable "+name)
			return
		}
		if p.duplicateGlobalVarName(name) {
			p.setDuplicateNameError(name)
			return
		}
		p.graph.GlobalVariables = append(p.graph.GlobalVariables, gv)
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']' to close global_vars")
}

func parseValueType(name string) (story.ValueType, bool) {
	switch name {
	case "string":
		return story.TypeString, true
	case "int":
		return story.TypeInt, true
	case "bool":
		return story.TypeBool, true
	case "float":
		return story.TypeFloat, true
	default:
		return 0, false
	}
}

// parseLinkedLists consumes
// `linked-lists [ "Name": { scope: "…", structure: { Field: { type: "…" }, … } }, … ]`.
func (p *Parser) parseLinkedLists() {
	p.advance() // 'linked-lists'
	p.expect(token.LBracket, "expected '[' after linked-lists")
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		name, ok := p.expectString("expected a linked-list name")
		if !ok {
			return
		}
		p.expect(token.Colon, "expected ':' after linked-list name")
		llt := story.LinkedListType{Name: name}
		p.expect(token.LBrace, "expected '{' to open linked-list body")
		for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
			switch p.cur.Kind {
			case token.KeywordScope:
				p.advance()
				p.expect(token.Colon, "expected ':' after scope")
				scopeName, ok := p.expectString("expected a scope name")
				if !ok {
					return
				}
				scope, ok := parseListScope(scopeName)
				if !ok {
					p.setError(p.cur, "unknown linked-list scope "+scopeName)
					return
				}
				llt.Scope = scope
			case token.KeywordStructure:
				p.advance()
				p.expect(token.Colon, "expected ':' after structure")
				fields, ok := p.parseStructure()
				if !ok {
					return
				}
				llt.Structure = fields
			default:
				p.setError(p.cur, "unexpected field in linked-list body")
				return
			}
			p.optionalComma()
		}
		p.expect(token.RBrace, "expected '}' to close linked-list body")
		if p.failed() {
			return
		}
		if len(llt.Structure) == 0 {
			p.setError(p.cur, cerrs.ErrEmptyStructure.Error()+": "+name)
			return
		}
		if p.duplicateLinkedListName(name) {
			p.setDuplicateNameError(name)
			return
		}
		p.graph.LinkedLists = append(p.graph.LinkedLists, llt)
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']' to close linked-lists")
}

func parseListScope(name string) (story.ListScope, bool) {
	switch name {
	case "character":
		return story.ScopeCharacter, true
	case "both":
		return story.ScopeBoth, true
	case "global":
		return story.ScopeGlobal, true
	default:
		return 0, false
	}
}

func (p *Parser) parseStructure() ([]story.Field, bool) {
	p.expect(token.LBrace, "expected '{' to open structure")
	var fields []story.Field
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		fieldName, ok := p.fieldName()
		if !ok {
			p.setError(p.cur, "expected a field name in structure")
			return nil, false
		}
		p.expect(token.Colon, "expected ':' after field name")
		p.expect(token.LBrace, "expected '{' to open field body")
		var ft story.ValueType
		for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
			p.expect(token.KeywordType, "expected 'type' in field body")
			p.expect(token.Colon, "expected ':' after type")
			typeName, ok := p.expectString("expected a field type name")
			if !ok {
				return nil, false
			}
			t, ok := parseValueType(typeName)
			if !ok {
				p.setError(p.cur, "unknown field type "+typeName)
				return nil, false
			}
			ft = t
			p.optionalComma()
		}
		p.expect(token.RBrace, "expected '}' to close field body")
		if p.failed() {
			return nil, false
		}
		fields = append(fields, story.Field{Name: fieldName, Type: ft})
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close structure")
	if p.failed() {
		return nil, false
	}
	return fields, true
}

// parseTags consumes
// `tags [ "Name": { type: "single"|"key-value", color: "#…", keys: [ "k1", … ] }, … ]`.
func (p *Parser) parseTags() {
	p.advance() // 'tags'
	p.expect(token.LBracket, "expected '[' after tags")
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		name, ok := p.expectString("expected a tag name")
		if !ok {
			return
		}
		p.expect(token.Colon, "expected ':' after tag name")
		td := story.TagDefinition{Name: name}
		p.expect(token.LBrace, "expected '{' to open tag body")
		for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
			switch p.cur.Kind {
			case token.KeywordType:
				p.advance()
				p.expect(token.Colon, "expected ':' after type")
				kindName, ok := p.expectString("expected a tag kind")
				if !ok {
					return
				}
				switch kindName {
				case "single":
					td.Kind = story.TagSingle
				case "key-value":
					td.Kind = story.TagKeyValue
				default:
					p.setError(p.cur, "unknown tag kind "+kindName)
					return
				}
			case token.KeywordColor:
				p.advance()
				p.expect(token.Colon, "expected ':' after color")
				color, ok := p.expectString("expected a color string")
				if !ok {
					return
				}
				td.Color = color
			case token.KeywordKeys:
				p.advance()
				p.expect(token.Colon, "expected ':' after keys")
				keys, ok := p.parseStringArray()
				if !ok {
					return
				}
				td.Keys = keys
			default:
				p.setError(p.cur, "unexpected field in tag body")
				return
			}
			p.optionalComma()
		}
		p.expect(token.RBrace, "expected '}' to close tag body")
		if p.failed() {
			return
		}
		if p.duplicateTagName(name) {
			p.setDuplicateNameError(name)
			return
		}
		p.graph.Tags = append(p.graph.Tags, td)
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']' to close tags")
}

func (p *Parser) parseStringArray() ([]string, bool) {
	p.expect(token.LBracket, "expected '['")
	var out []string
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		s, ok := p.expectString("expected a string")
		if !ok {
			return nil, false
		}
		out = append(out, s)
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']'")
	if p.failed() {
		return nil, false
	}
	return out, true
}

// parseCharacters consumes
// `characters [ "Name": { biography: "…", description: "…", linked-list-data: { ListName: {…} | [ "key": {…}, … ] } }, … ]`.
func (p *Parser) parseCharacters() {
	p.advance() // 'characters'
	p.expect(token.LBracket, "expected '[' after characters")
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		name, ok := p.expectString("expected a character name")
		if !ok {
			return
		}
		p.expect(token.Colon, "expected ':' after character name")
		ch := story.Character{Name: name}
		p.expect(token.LBrace, "expected '{' to open character body")
		for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
			switch p.cur.Kind {
			case token.KeywordBiography:
				p.advance()
				p.expect(token.Colon, "expected ':' after biography")
				s, ok := p.expectString("expected a biography string")
				if !ok {
					return
				}
				ch.Biography = s
			case token.KeywordDescription:
				p.advance()
				p.expect(token.Colon, "expected ':' after description")
				s, ok := p.expectString("expected a description string")
				if !ok {
					return
				}
				ch.Description = s
			case token.Identifier:
				// "linked-list-data" is authored as a hyphenated
				// identifier, not a fixed keyword.
				fieldName := p.cur.Lexeme
				if fieldName != "linked-list-data" {
					p.setError(p.cur, "unexpected field in character body")
					return
				}
				p.advance()
				p.expect(token.Colon, "expected ':' after linked-list-data")
				lists, ok := p.parseLinkedListData()
				if !ok {
					return
				}
				ch.Lists = lists
			default:
				p.setError(p.cur, "unexpected field in character body")
				return
			}
			p.optionalComma()
		}
		p.expect(token.RBrace, "expected '}' to close character body")
		if p.failed() {
			return
		}
		if p.duplicateCharacterName(name) {
			p.setDuplicateNameError(name)
			return
		}
		p.graph.Characters = append(p.graph.Characters, ch)
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']' to close characters")
}

func (p *Parser) parseLinkedListData() ([]story.CharacterListData, bool) {
	p.expect(token.LBrace, "expected '{' to open linked-list-data")
	var out []story.CharacterListData
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		listName, ok := p.fieldName()
		if !ok {
			p.setError(p.cur, "expected a linked-list name")
			return nil, false
		}
		p.expect(token.Colon, "expected ':' after linked-list name")
		var entries []story.ListDataEntry
		if p.check(token.LBracket) {
			p.advance()
			for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
				key, ok := p.expectString("expected a record key")
				if !ok {
					return nil, false
				}
				p.expect(token.Colon, "expected ':' after record key")
				rec, ok := p.parseRecord()
				if !ok {
					return nil, false
				}
				entries = append(entries, story.ListDataEntry{Key: key, Fields: rec})
				p.optionalComma()
			}
			p.expect(token.RBracket, "expected ']' to close keyed record sequence")
		} else {
			rec, ok := p.parseRecord()
			if !ok {
				return nil, false
			}
			entries = append(entries, story.ListDataEntry{Fields: rec})
		}
		if p.failed() {
			return nil, false
		}
		out = append(out, story.CharacterListData{ListName: listName, Entries: entries})
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close linked-list-data")
	if p.failed() {
		return nil, false
	}
	return out, true
}

// validateCharacterLists enforces the Character entity's hard
// invariant (spec §3): every referenced linked-list-name must resolve,
// and every record's fields must be a subset of that list's declared
// structure. It runs once after every section has been parsed, since
// sections may appear in any order and a character may be declared
// before its linked-list types are.
func (p *Parser) validateCharacterLists(ch story.Character) error {
	for _, l := range ch.Lists {
		llt, ok := p.graph.GetLinkedListType(l.ListName)
		if !ok {
			return fmt.Errorf("%w: %s", cerrs.ErrUnknownLinkedList, l.ListName)
		}
		for _, entry := range l.Entries {
			for fieldName := range entry.Fields {
				if _, ok := llt.FieldByName(fieldName); !ok {
					return fmt.Errorf("%w: %s.%s", cerrs.ErrUnknownField, l.ListName, fieldName)
				}
			}
		}
	}
	return nil
}

func (p *Parser) parseRecord() (story.Record, bool) {
	p.expect(token.LBrace, "expected '{' to open record")
	rec := story.Record{}
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		fieldName, ok := p.fieldName()
		if !ok {
			p.setError(p.cur, "expected a record field name")
			return nil, false
		}
		p.expect(token.Colon, "expected ':' after record field name")
		lit, ok := p.parseLiteral("expected a record field value")
		if !ok {
			return nil, false
		}
		rec[fieldName] = lit
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close record")
	if p.failed() {
		return nil, false
	}
	return rec, true
}
