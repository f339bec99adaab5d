package parser

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/lexer"
)

var primitiveTypeNames = map[string]bool{
	"Field": true, "bool": true, "str": true,
	"u1": true, "u8": true, "u16": true, "u32": true, "u64": true,
	"i8": true, "i16": true, "i32": true, "i64": true,
}

// parseType parses one type expression. p.curToken is the first token
// of the type on entry; on return p.curToken is its last token.
func (p *Parser) parseType() *ast.UnresolvedType {
	start := p.curToken.Start

	switch {
	case p.curIs(lexer.LBRACKET):
		p.nextToken()
		elem := p.parseType()
		// `[T; N]` slice-of-length or `[T]` slice; either way the
		// element type is the only thing completion ever walks into.
		for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
			p.nextToken()
		}
		span := p.spanFrom(start)
		return &ast.UnresolvedType{Data: ArrayTypeData(elem), Span: &span}

	case p.curIs(lexer.AMP):
		p.nextToken()
		if p.curIs(lexer.MUT) {
			p.nextToken()
		}
		inner := p.parseType()
		span := p.spanFrom(start)
		return &ast.UnresolvedType{Data: ast.MutableReferenceType{Inner: inner}, Span: &span}

	case p.curIs(lexer.LPAREN):
		p.nextToken()
		var elems []*ast.UnresolvedType
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			elems = append(elems, p.parseType())
			if p.peekIs(lexer.COMMA) {
				p.nextToken()
			}
			p.nextToken()
		}
		span := p.spanFrom(start)
		if len(elems) == 1 {
			return &ast.UnresolvedType{Data: ast.ParenthesizedType{Inner: elems[0]}, Span: &span}
		}
		return &ast.UnresolvedType{Data: ast.TupleType{Elements: elems}, Span: &span}

	case p.curIs(lexer.FN):
		p.nextToken()
		var args []*ast.UnresolvedType
		if p.curIs(lexer.LPAREN) {
			p.nextToken()
			for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
				args = append(args, p.parseType())
				if p.peekIs(lexer.COMMA) {
					p.nextToken()
				}
				p.nextToken()
			}
		}
		var ret *ast.UnresolvedType
		if p.peekIs(lexer.ARROW) {
			p.nextToken()
			p.nextToken()
			ret = p.parseType()
		} else {
			span := ast.Span{Start: p.curToken.Start, End: p.curToken.End}
			ret = &ast.UnresolvedType{Data: ast.OpaqueType{Name: "()"}, Span: &span}
		}
		span := p.spanFrom(start)
		return &ast.UnresolvedType{Data: ast.FunctionType{Args: args, Ret: ret}, Span: &span}

	case p.curIs(lexer.LT):
		// <T as Trait>::Assoc
		p.nextToken()
		typ := p.parseType()
		if p.peekIs(lexer.AS) {
			p.nextToken()
			p.nextToken()
		}
		traitPath := p.parsePath()
		var assoc ast.Ident
		if p.peekIs(lexer.GT) {
			p.nextToken()
		}
		if p.peekIs(lexer.DCOLON) {
			p.nextToken()
			p.nextToken()
			assoc = ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
		}
		span := p.spanFrom(start)
		return &ast.UnresolvedType{
			Data: ast.AsTraitPathType{Path: ast.AsTraitPath{TypePath: typ, TraitPath: traitPath, Ident: assoc, Span: span}},
			Span: &span,
		}

	case p.curIs(lexer.IDENT):
		if primitiveTypeNames[p.curToken.Literal] {
			name := p.curToken.Literal
			span := ast.Span{Start: p.curToken.Start, End: p.curToken.End}
			return &ast.UnresolvedType{Data: ast.OpaqueType{Name: name}, Span: &span}
		}
		path := p.parsePath()
		var generics []*ast.UnresolvedType
		if p.peekIs(lexer.LT) {
			p.nextToken() // <
			p.nextToken()
			for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
				generics = append(generics, p.parseType())
				if p.peekIs(lexer.COMMA) {
					p.nextToken()
				}
				p.nextToken()
			}
		}
		span := p.spanFrom(start)
		return &ast.UnresolvedType{Data: ast.NamedType{Path: path, Generics: generics}, Span: &span}

	default:
		span := ast.Span{Start: p.curToken.Start, End: p.curToken.End}
		return &ast.UnresolvedType{Data: ast.OpaqueType{Name: p.curToken.Literal}, Span: &span}
	}
}

// ArrayTypeData is a constructor helper kept alongside parseType so
// array/slice parsing (which looks identical once the length is
// skipped) shares one code path.
func ArrayTypeData(elem *ast.UnresolvedType) ast.UnresolvedTypeData {
	return ast.ArrayType{Element: elem}
}

// parseGenerics parses an optional `<T, let N: u32, ...>` generics list.
func (p *Parser) parseGenerics() []ast.UnresolvedGeneric {
	if !p.curIs(lexer.LT) {
		return nil
	}
	p.nextToken()
	var generics []ast.UnresolvedGeneric
	for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.LET) {
			p.nextToken()
			ident := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
			var typ *ast.UnresolvedType
			if p.peekIs(lexer.COLON) {
				p.nextToken()
				p.nextToken()
				typ = p.parseType()
			}
			generics = append(generics, ast.NumericGeneric{Ident: ident, Type: typ})
		} else {
			ident := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
			generics = append(generics, ast.GenericVariable{Ident: ident})
		}
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	return generics
}

// parseReturnType parses an optional `-> Type` after a parameter list.
func (p *Parser) parseReturnType() ast.FunctionReturnType {
	if !p.peekIs(lexer.ARROW) {
		return ast.DefaultReturnType{Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
	}
	p.nextToken()
	p.nextToken()
	return ast.ExplicitReturnType{Type: p.parseType()}
}
