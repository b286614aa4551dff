// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package parser

import (
	"github.com/mdhender/sdc/internal/sdc/story"
	"github.com/mdhender/sdc/internal/sdc/token"
)

// parseChapter consumes `chapter N { name: "…" }`.
func (p *Parser) parseChapter() {
	p.advance() // 'chapter'
	id, ok := p.expectInteger("expected a chapter id")
	if !ok {
		return
	}
	ch := story.Chapter{Id: id}
	p.expect(token.LBrace, "expected '{' to open chapter body")
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordName:
			p.advance()
			p.expect(token.Colon, "expected ':' after name")
			s, ok := p.expectString("expected a chapter name")
			if !ok {
				return
			}
			ch.Name = s
		default:
			p.setError(p.cur, "unexpected field in chapter body")
			return
		}
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close chapter body")
	if p.failed() {
		return
	}
	if p.duplicateChapterId(id) {
		p.setDuplicateIdError(id)
		return
	}
	p.graph.Chapters = append(p.graph.Chapters, ch)
}

// parseGroup consumes:
//
//	group N {
//	  chapter: N, name: "…", content: "…", parent-group: N,
//	  tags: [...], linked-lists: ["…", …],
//	  nodes: { start: N, end: N, points: { N: [N, N, …], … } }
//	}
func (p *Parser) parseGroup() {
	p.advance() // 'group'
	id, ok := p.expectInteger("expected a group id")
	if !ok {
		return
	}
	gr := story.Group{Id: id}
	p.expect(token.LBrace, "expected '{' to open group body")
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordChapter:
			p.advance()
			p.expect(token.Colon, "expected ':' after chapter")
			chId, ok := p.expectInteger("expected a chapter id")
			if !ok {
				return
			}
			gr.ChapterId = chId
		case token.KeywordName:
			p.advance()
			p.expect(token.Colon, "expected ':' after name")
			s, ok := p.expectString("expected a group name")
			if !ok {
				return
			}
			gr.Name = s
		case token.KeywordContent:
			p.advance()
			p.expect(token.Colon, "expected ':' after content")
			s, ok := p.expectString("expected group content")
			if !ok {
				return
			}
			gr.Content = s
		case token.KeywordParentGroup:
			p.advance()
			p.expect(token.Colon, "expected ':' after parent-group")
			pgId, ok := p.expectInteger("expected a parent group id")
			if !ok {
				return
			}
			gr.ParentGroupId = &pgId
		case token.KeywordTags:
			p.advance()
			p.expect(token.Colon, "expected ':' after tags")
			tags, ok := p.parseTagApplications()
			if !ok {
				return
			}
			gr.Tags = tags
		case token.KeywordLinkedLists:
			p.advance()
			p.expect(token.Colon, "expected ':' after linked-lists")
			names, ok := p.parseStringArray()
			if !ok {
				return
			}
			gr.LinkedLists = names
		case token.KeywordNodes:
			p.advance()
			p.expect(token.Colon, "expected ':' after nodes")
			ng, ok := p.parseNodeGraph()
			if !ok {
				return
			}
			gr.Graph = ng
		default:
			p.setError(p.cur, "unexpected field in group body")
			return
		}
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close group body")
	if p.failed() {
		return
	}
	if p.duplicateGroupId(id) {
		p.setDuplicateIdError(id)
		return
	}
	p.graph.Groups = append(p.graph.Groups, gr)
}

func (p *Parser) parseTagApplications() ([]story.TagApplication, bool) {
	p.expect(token.LBracket, "expected '[' to open tags")
	var out []story.TagApplication
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		p.expect(token.LBrace, "expected '{' to open tag application")
		var app story.TagApplication
		for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
			fieldName, ok := p.fieldName()
			if !ok {
				p.setError(p.cur, "expected a field name in tag application")
				return nil, false
			}
			p.expect(token.Colon, "expected ':' after field name")
			switch fieldName {
			case "name":
				s, ok := p.expectString("expected a tag name")
				if !ok {
					return nil, false
				}
				app.TagName = s
			case "key":
				s, ok := p.expectString("expected a selected key")
				if !ok {
					return nil, false
				}
				app.SelectedKey = &s
			case "value":
				lit, ok := p.parseLiteral("expected a tag application value")
				if !ok {
					return nil, false
				}
				app.Value = lit
			default:
				p.setError(p.cur, "unexpected field in tag application: "+fieldName)
				return nil, false
			}
			p.optionalComma()
		}
		p.expect(token.RBrace, "expected '}' to close tag application")
		if p.failed() {
			return nil, false
		}
		out = append(out, app)
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']' to close tags")
	if p.failed() {
		return nil, false
	}
	return out, true
}

func (p *Parser) parseNodeGraph() (story.NodeGraph, bool) {
	p.expect(token.LBrace, "expected '{' to open nodes")
	ng := story.NodeGraph{Points: map[int][]int{}}
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordStart:
			p.advance()
			p.expect(token.Colon, "expected ':' after start")
			id, ok := p.expectInteger("expected a start node id")
			if !ok {
				return story.NodeGraph{}, false
			}
			ng.StartId = id
		case token.KeywordEnd:
			p.advance()
			p.expect(token.Colon, "expected ':' after end")
			id, ok := p.expectInteger("expected an end node id")
			if !ok {
				return story.NodeGraph{}, false
			}
			ng.EndId = id
		case token.KeywordPoints:
			p.advance()
			p.expect(token.Colon, "expected ':' after points")
			p.expect(token.LBrace, "expected '{' to open points")
			for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
				from, ok := p.expectInteger("expected a from-node id")
				if !ok {
					return story.NodeGraph{}, false
				}
				p.expect(token.Colon, "expected ':' after from-node id")
				tos, ok := p.parseIntArray()
				if !ok {
					return story.NodeGraph{}, false
				}
				ng.Points[from] = tos
				p.optionalComma()
			}
			p.expect(token.RBrace, "expected '}' to close points")
		default:
			p.setError(p.cur, "unexpected field in nodes body")
			return story.NodeGraph{}, false
		}
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close nodes")
	if p.failed() {
		return story.NodeGraph{}, false
	}
	return ng, true
}

func (p *Parser) parseIntArray() ([]int, bool) {
	p.expect(token.LBracket, "expected '['")
	var out []int
	for !p.failed() && !p.check(token.RBracket) && !p.atEnd() {
		n, ok := p.expectInteger("expected an integer")
		if !ok {
			return nil, false
		}
		out = append(out, n)
		p.optionalComma()
	}
	p.expect(token.RBracket, "expected ']'")
	if p.failed() {
		return nil, false
	}
	return out, true
}

// parseNode consumes `node N { title, content, timeline: { <items> } }`.
func (p *Parser) parseNode() {
	p.advance() // 'node'
	id, ok := p.expectInteger("expected a node id")
	if !ok {
		return
	}
	n := story.Node{Id: id}
	p.expect(token.LBrace, "expected '{' to open node body")
	for !p.failed() && !p.check(token.RBrace) && !p.atEnd() {
		switch p.cur.Kind {
		case token.KeywordTitle:
			p.advance()
			p.expect(token.Colon, "expected ':' after title")
			s, ok := p.expectString("expected a node title")
			if !ok {
				return
			}
			n.Title = s
		case token.KeywordContent:
			p.advance()
			p.expect(token.Colon, "expected ':' after content")
			s, ok := p.expectString("expected node content")
			if !ok {
				return
			}
			n.Content = s
		case token.KeywordTimeline:
			p.advance()
			p.expect(token.Colon, "expected ':' after timeline")
			items, ok := p.parseTimeline()
			if !ok {
				return
			}
			n.Timeline = items
		default:
			p.setError(p.cur, "unexpected field in node body")
			return
		}
		p.optionalComma()
	}
	p.expect(token.RBrace, "expected '}' to close node body")
	if p.failed() {
		return
	}
	if p.duplicateNodeId(id) {
		p.setDuplicateIdError(id)
		return
	}
	p.graph.Nodes = append(p.graph.Nodes, n)
}
