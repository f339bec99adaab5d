package parser

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/lexer"
)

// parseStatement parses one statement. p.curToken is its first token
// on entry; on return p.curToken is its last token (the caller
// advances past it).
func (p *Parser) parseStatement() ast.Statement {
	start := p.curToken.Start

	switch p.curToken.Type {
	case lexer.LET:
		return ast.Statement{Kind: p.parseLetStatement(), Span: p.spanFrom(start)}
	case lexer.CONSTRAIN, lexer.ASSERT:
		return ast.Statement{Kind: p.parseConstrainStatement(), Span: p.spanFrom(start)}
	case lexer.FOR:
		return ast.Statement{Kind: p.parseForLoopStatement(), Span: p.spanFrom(start)}
	case lexer.BREAK:
		return ast.Statement{Kind: ast.BreakStatement{}, Span: p.spanFrom(start)}
	case lexer.CONTINUE:
		return ast.Statement{Kind: ast.ContinueStatement{}, Span: p.spanFrom(start)}
	case lexer.COMPTIME:
		if p.peekIs(lexer.LBRACE) {
			expr := p.parseExpression(LOWEST)
			return p.finishExpressionStatement(expr, start)
		}
		p.nextToken()
		inner := p.parseStatement()
		return ast.Statement{Kind: ast.ComptimeStatement{Statement: &inner}, Span: p.spanFrom(start)}
	default:
		expr := p.parseExpression(LOWEST)
		if p.peekIs(lexer.ASSIGN) {
			lvalue := exprToLValue(expr)
			p.nextToken() // move to =
			p.nextToken() // move to RHS
			rhs := p.parseExpression(LOWEST)
			return ast.Statement{Kind: ast.AssignStatement{LValue: lvalue, Expression: rhs}, Span: p.spanFrom(start)}
		}
		return p.finishExpressionStatement(expr, start)
	}
}

// finishExpressionStatement decides between ExpressionStatement (the
// block's trailing value) and SemiStatement (a discarded value)
// depending on whether a `;` follows.
func (p *Parser) finishExpressionStatement(expr ast.Expression, start int) ast.Statement {
	if p.peekIs(lexer.SEMI) {
		p.nextToken()
		return ast.Statement{Kind: ast.SemiStatement{Expression: expr}, Span: p.spanFrom(start)}
	}
	return ast.Statement{Kind: ast.ExpressionStatement{Expression: expr}, Span: p.spanFrom(start)}
}

func (p *Parser) parseLetStatement() ast.StatementKind {
	p.nextToken() // consume "let"
	pattern := p.parsePattern()
	var typ *ast.UnresolvedType
	if p.peekIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		typ = p.parseType()
	}
	if !p.expectPeek(lexer.ASSIGN) {
		return ast.LetStatement{Pattern: pattern, Type: typ}
	}
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if p.peekIs(lexer.SEMI) {
		p.nextToken()
	}
	return ast.LetStatement{Pattern: pattern, Type: typ, Expression: expr}
}

func (p *Parser) parseConstrainStatement() ast.StatementKind {
	p.nextToken() // consume "constrain"/"assert"
	lhs := p.parseExpression(LOWEST)
	var rhs *ast.Expression
	if p.peekIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		msg := p.parseExpression(LOWEST)
		rhs = &msg
	}
	if p.peekIs(lexer.SEMI) {
		p.nextToken()
	}
	return ast.ConstrainStatement{LHS: lhs, RHS: rhs}
}

func (p *Parser) parseForLoopStatement() ast.StatementKind {
	p.nextToken() // consume "for"
	ident := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
	if !p.expectPeek(lexer.IN) {
		return ast.ForLoopStatement{Identifier: ident}
	}
	p.nextToken()
	p.noStructLiterals = true
	start := p.parseExpression(LOWEST)
	var rangeValue ast.ForRange
	if p.peekIs(lexer.DOT) {
		// Noir range syntax: "0..10". Lexed as two consecutive DOT
		// tokens; skip them and parse the end expression.
		p.nextToken()
		if p.peekIs(lexer.DOT) {
			p.nextToken()
		}
		p.nextToken()
		end := p.parseExpression(LOWEST)
		rangeValue = ast.RangeForRange{Start: start, End: end}
	} else {
		rangeValue = ast.ArrayForRange{Array: start}
	}
	p.noStructLiterals = false
	if !p.expectPeek(lexer.LBRACE) {
		return ast.ForLoopStatement{Identifier: ident, Range: rangeValue}
	}
	block := p.parseBlockAsExpression()
	return ast.ForLoopStatement{Identifier: ident, Range: rangeValue, Block: block}
}

// exprToLValue converts an already-parsed expression into an LValue
// once an assignment `=` is seen after it, matching the original
// grammar's ambiguity between reading `foo.bar` and assigning to it.
func exprToLValue(expr ast.Expression) ast.LValue {
	switch k := expr.Kind.(type) {
	case ast.Variable:
		if len(k.Path.Segments) == 1 {
			return ast.IdentLValue{Ident: k.Path.Segments[0].Ident}
		}
		return ast.IdentLValue{Ident: ast.Ident{Name: "", Span: expr.Span}}
	case ast.MemberAccessExpression:
		return ast.MemberAccessLValue{Object: exprToLValue(*k.LHS), FieldName: k.RHS, Span: expr.Span}
	case ast.IndexExpression:
		return ast.IndexLValue{Array: exprToLValue(*k.Collection), Index: *k.Index, Span: expr.Span}
	default:
		return ast.IdentLValue{Ident: ast.Ident{Name: "", Span: expr.Span}}
	}
}
