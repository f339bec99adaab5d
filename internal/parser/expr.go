package parser

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/lexer"
)

// parseExpression is the Pratt-parser entry point: on return,
// p.curToken is the last token consumed by the expression.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.errorf("no prefix parse function for %v", p.curToken.Type)
		span := ast.Span{Start: p.curToken.Start, End: p.curToken.End}
		return ast.Expression{Kind: ast.Opaque{Name: "error"}, Span: span}
	}
	left := prefix()

	for !p.peekIs(lexer.SEMI) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	span := ast.Span{Start: p.curToken.Start, End: p.curToken.End}
	return ast.Expression{Kind: ast.Literal{Kind: ast.OpaqueLiteral{Kind: "integer"}}, Span: span}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	span := ast.Span{Start: p.curToken.Start, End: p.curToken.End}
	return ast.Expression{Kind: ast.Literal{Kind: ast.OpaqueLiteral{Kind: "str"}}, Span: span}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	span := ast.Span{Start: p.curToken.Start, End: p.curToken.End}
	return ast.Expression{Kind: ast.Literal{Kind: ast.OpaqueLiteral{Kind: "bool"}}, Span: span}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	start := p.curToken.Start
	op := p.curToken.Literal
	p.nextToken()
	rhs := p.parseExpression(PREFIX)
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.PrefixExpression{Operator: op, RHS: &rhs}, Span: span}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	start := left.Span.Start
	op := p.curToken.Literal
	precedence := p.curPrecedence()
	p.nextToken()
	rhs := p.parseExpression(precedence)
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.InfixExpression{LHS: &left, Operator: op, RHS: &rhs}, Span: span}
}

// parseParenOrTuple parses `(expr)` or `(a, b, ...)`. A single
// parenthesized element with no trailing comma is Parenthesized; two
// or more is a Tuple, matching how the walker distinguishes them
// (Finder.findInExpression recurses into Parenthesized transparently).
func (p *Parser) parseParenOrTuple() ast.Expression {
	start := p.curToken.Start
	p.nextToken()
	if p.curIs(lexer.RPAREN) {
		span := p.spanFrom(start)
		return ast.Expression{Kind: ast.Literal{Kind: ast.OpaqueLiteral{Kind: "unit"}}, Span: span}
	}
	var elems []ast.Expression
	elems = append(elems, p.parseExpression(LOWEST))
	for p.peekIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		elems = append(elems, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(lexer.RPAREN) {
		span := p.spanFrom(start)
		return ast.Expression{Kind: ast.Opaque{Name: "error"}, Span: span}
	}
	span := p.spanFrom(start)
	if len(elems) == 1 {
		return ast.Expression{Kind: ast.Parenthesized{Inner: &elems[0]}, Span: span}
	}
	return ast.Expression{Kind: ast.Tuple{Elements: elems}, Span: span}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.curToken.Start
	p.nextToken()
	var elems []ast.Expression
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		elems = append(elems, p.parseExpression(LOWEST))
		if p.peekIs(lexer.SEMI) {
			// [elem; length] repeated-element literal
			p.nextToken()
			p.nextToken()
			length := p.parseExpression(LOWEST)
			p.expectPeek(lexer.RBRACKET)
			span := p.spanFrom(start)
			repeated := elems[0]
			return ast.Expression{
				Kind: ast.Literal{Kind: ast.ArrayLiteral{Repeated: &repeated, Length: &length}},
				Span: span,
			}
		}
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.Literal{Kind: ast.ArrayLiteral{Elements: elems}}, Span: span}
}

// parseBlockAsExpression parses `{ stmt; stmt; expr }` used anywhere
// an expression is expected (if/else branches, lambda/function bodies
// routed here too via parseBlockExpression).
func (p *Parser) parseBlockAsExpression() ast.Expression {
	start := p.curToken.Start
	block := p.parseBlockExpression()
	span := p.spanFrom(start)
	return ast.Expression{Kind: block, Span: span}
}

// parseBlockExpression parses the `{ ... }` body itself. p.curToken
// must be LBRACE on entry; on return p.curToken is the closing RBRACE.
func (p *Parser) parseBlockExpression() ast.BlockExpression {
	var stmts []ast.Statement
	p.nextToken() // consume {
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmts = append(stmts, p.parseStatement())
		p.nextToken()
	}
	return ast.BlockExpression{Statements: stmts}
}

func (p *Parser) parseIfExpression() ast.Expression {
	start := p.curToken.Start
	p.nextToken()
	p.noStructLiterals = true
	cond := p.parseExpression(LOWEST)
	p.noStructLiterals = false
	if !p.expectPeek(lexer.LBRACE) {
		span := p.spanFrom(start)
		return ast.Expression{Kind: ast.Opaque{Name: "error"}, Span: span}
	}
	consequence := p.parseBlockAsExpression()
	var alternative *ast.Expression
	if p.peekIs(lexer.ELSE) {
		p.nextToken()
		p.nextToken()
		if p.curIs(lexer.IF) {
			alt := p.parseIfExpression()
			alternative = &alt
		} else if p.curIs(lexer.LBRACE) {
			alt := p.parseBlockAsExpression()
			alternative = &alt
		}
	}
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.IfExpression{Condition: &cond, Consequence: &consequence, Alternative: alternative}, Span: span}
}

func (p *Parser) parseComptimeExpression() ast.Expression {
	start := p.curToken.Start
	p.nextToken()
	block := p.parseBlockAsExpression()
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.Comptime{Block: &block}, Span: span}
}

func (p *Parser) parseUnsafeExpression() ast.Expression {
	start := p.curToken.Start
	p.nextToken()
	block := p.parseBlockAsExpression()
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.Unsafe{Block: &block}, Span: span}
}

// parseLambda parses `|x: T, y| expr` or `|x, y| -> T { expr }`.
func (p *Parser) parseLambda() ast.Expression {
	start := p.curToken.Start
	p.nextToken() // consume opening |
	var params []ast.LambdaParam
	for !p.curIs(lexer.PIPE) && !p.curIs(lexer.EOF) {
		pattern := p.parsePattern()
		var typ *ast.UnresolvedType
		if p.peekIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			typ = p.parseType()
		}
		params = append(params, ast.LambdaParam{Pattern: pattern, Type: typ})
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	if p.peekIs(lexer.ARROW) {
		p.nextToken()
		p.nextToken()
		p.parseType()
	}
	p.nextToken() // move to body start ({ or expression)
	body := p.parseExpression(LOWEST)
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.Lambda{Parameters: params, Body: &body}, Span: span}
}

// parseAsTraitPathExpression parses `<T as Trait>::ASSOC_CONST` used
// as an expression (the type-position variant lives in parseType).
func (p *Parser) parseAsTraitPathExpression() ast.Expression {
	start := p.curToken.Start
	typ := p.parseType() // parseType already handles the leading `<`
	span := p.spanFrom(start)
	if at, ok := typ.Data.(ast.AsTraitPathType); ok {
		return ast.Expression{Kind: ast.AsTraitPathExpr{Path: at.Path}, Span: span}
	}
	return ast.Expression{Kind: ast.Opaque{Name: "error"}, Span: span}
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	start := fn.Span.Start
	p.nextToken() // consume (
	var args []ast.Expression
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		args = append(args, p.parseExpression(LOWEST))
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.CallExpression{Func: &fn, Arguments: args}, Span: span}
}

func (p *Parser) parseIndexExpression(collection ast.Expression) ast.Expression {
	start := collection.Span.Start
	p.nextToken() // consume [
	index := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RBRACKET) {
		span := p.spanFrom(start)
		return ast.Expression{Kind: ast.Opaque{Name: "error"}, Span: span}
	}
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.IndexExpression{Collection: &collection, Index: &index}, Span: span}
}

// parseDotExpression handles both member access (`foo.bar`) and method
// calls (`foo.bar(args)`), matching the original's split between
// MemberAccessExpression and MethodCallExpression.
func (p *Parser) parseDotExpression(lhs ast.Expression) ast.Expression {
	start := lhs.Span.Start
	p.nextToken() // consume .
	name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}

	if p.peekIs(lexer.LPAREN) {
		p.nextToken() // move to (
		p.nextToken() // consume (
		var args []ast.Expression
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			args = append(args, p.parseExpression(LOWEST))
			if p.peekIs(lexer.COMMA) {
				p.nextToken()
			}
			p.nextToken()
		}
		span := p.spanFrom(start)
		return ast.Expression{Kind: ast.MethodCallExpression{Object: &lhs, MethodName: name, Arguments: args}, Span: span}
	}

	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.MemberAccessExpression{LHS: &lhs, RHS: name}, Span: span}
}

func (p *Parser) parseCastExpression(lhs ast.Expression) ast.Expression {
	start := lhs.Span.Start
	p.nextToken() // consume "as"
	typ := p.parseType()
	span := p.spanFrom(start)
	return ast.Expression{Kind: ast.CastExpression{LHS: &lhs, Type: typ}, Span: span}
}
