package parser

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/lexer"
)

// parsePattern parses a binding pattern: a plain identifier, `mut
// <pattern>`, a tuple `(a, b)`, or a struct pattern `Type { a, b: pb }`.
func (p *Parser) parsePattern() ast.Pattern {
	start := p.curToken.Start

	if p.curIs(lexer.MUT) {
		p.nextToken()
		inner := p.parsePattern()
		return ast.MutablePattern{Pattern: inner, Span: p.spanFrom(start)}
	}

	if p.curIs(lexer.LPAREN) {
		p.nextToken()
		var patterns []ast.Pattern
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			patterns = append(patterns, p.parsePattern())
			if p.peekIs(lexer.COMMA) {
				p.nextToken()
			}
			p.nextToken()
		}
		return ast.TuplePattern{Patterns: patterns, Span: p.spanFrom(start)}
	}

	if p.curIs(lexer.IDENT) && p.peekIs(lexer.LBRACE) {
		typeName := p.parsePath()
		p.nextToken() // consume {
		p.nextToken() // move to first field or }
		var fields []ast.StructFieldPattern
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
			var fieldPattern ast.Pattern = ast.IdentPattern{Ident: name}
			if p.peekIs(lexer.COLON) {
				p.nextToken() // :
				p.nextToken() // first token of nested pattern
				fieldPattern = p.parsePattern()
			}
			fields = append(fields, ast.StructFieldPattern{Name: name, Pattern: fieldPattern})
			if p.peekIs(lexer.COMMA) {
				p.nextToken()
			}
			p.nextToken()
		}
		return ast.StructPattern{TypeName: typeName, Fields: fields, Span: p.spanFrom(start)}
	}

	ident := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
	return ast.IdentPattern{Ident: ident}
}
