package parser

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/lexer"
)

// parsePath parses a (possibly kinded) dotted path starting at
// p.curToken. It consumes `crate::`, `super::` or `dep::` as a kind
// prefix if present, then one or more `::`-separated identifiers.
func (p *Parser) parsePath() ast.Path {
	start := p.curToken.Start
	kind := ast.PathPlain

	switch p.curToken.Type {
	case lexer.CRATE:
		kind = ast.PathCrate
		p.nextToken()
		if p.curIs(lexer.DCOLON) {
			p.nextToken()
		}
	case lexer.SUPER:
		kind = ast.PathSuper
		p.nextToken()
		if p.curIs(lexer.DCOLON) {
			p.nextToken()
		}
	case lexer.DEP:
		kind = ast.PathDep
		p.nextToken()
		if p.curIs(lexer.DCOLON) {
			p.nextToken()
		}
	}

	var segments []ast.PathSegment
	for {
		if !p.curIs(lexer.IDENT) {
			p.errorf("expected identifier in path, got %v", p.curToken.Type)
			break
		}
		segments = append(segments, ast.PathSegment{
			Ident: ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}},
		})
		if p.peekIs(lexer.DCOLON) {
			p.nextToken() // consume ident
			p.nextToken() // consume ::
			continue
		}
		break
	}

	return ast.Path{Segments: segments, Kind: kind, Span: p.spanFrom(start)}
}

// parsePathOrVariable parses a path in expression position. If it's
// immediately followed by `{` and constructor literals aren't
// suppressed (see Parser.noStructLiterals), it's a constructor
// expression instead of a bare variable reference.
func (p *Parser) parsePathOrVariable() ast.Expression {
	start := p.curToken.Start
	path := p.parsePath()

	if !p.noStructLiterals && p.peekIs(lexer.LBRACE) {
		return p.parseConstructorExpression(start, path)
	}

	return ast.Expression{Kind: ast.Variable{Path: path}, Span: ast.Span{Start: start, End: p.curToken.End}}
}

// parseConstructorExpression parses `Type { field: value, ... }`.
func (p *Parser) parseConstructorExpression(start int, typeName ast.Path) ast.Expression {
	p.nextToken() // move to {
	p.nextToken() // consume {, move to first field or }
	var fields []ast.ConstructorField
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
		var value ast.Expression
		if p.peekIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			value = p.parseExpression(LOWEST)
		} else {
			value = ast.Expression{Kind: ast.Variable{Path: ast.Path{Segments: []ast.PathSegment{{Ident: name}}}}, Span: name.Span}
		}
		fields = append(fields, ast.ConstructorField{Name: name, Value: value})
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.ConstructorExpression{TypeName: typeName, Fields: fields}, Span: span}
}
