// Package parser turns a lexer.Token stream into an internal/ast tree.
// Grounded on the recursive-descent/Pratt structure of
// _examples/sunholo-data-ailang/internal/parser, adapted to a
// crate/module/struct/trait/impl grammar.
//
// Parsing never aborts on the first error: ParseFile always returns a
// best-effort tree (internal/completion only ever needs to walk
// whatever span contains the cursor, which is usually parseable even
// when a later part of the file isn't). Collected errors are available
// via Errors() for diagnostics publishing, never for gating completion.
package parser

import (
	"fmt"

	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/lexer"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

const (
	LOWEST int = iota
	LOGICAL_OR
	LOGICAL_AND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
	DOT
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:       LOGICAL_OR,
	lexer.AND:      LOGICAL_AND,
	lexer.EQ:       EQUALS,
	lexer.NEQ:      EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.LTE:      LESSGREATER,
	lexer.GTE:      LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.STAR:     PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.LPAREN:   CALL,
	lexer.LBRACKET: INDEX,
	lexer.DOT:      DOT,
	lexer.AS:       DOT,
}

// Parser consumes a token stream and builds an *ast.File.
type Parser struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	errors []error

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn

	// noStructLiterals suppresses constructor-expression parsing
	// while parsing an if/for condition, where `Type { ... }` would
	// otherwise be ambiguous with the following block.
	noStructLiterals bool
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{}
	p.registerPrefix(lexer.IDENT, p.parsePathOrVariable)
	p.registerPrefix(lexer.CRATE, p.parsePathOrVariable)
	p.registerPrefix(lexer.SUPER, p.parsePathOrVariable)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.LPAREN, p.parseParenOrTuple)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseBlockAsExpression)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.AMP, p.parsePrefixExpression)
	p.registerPrefix(lexer.IF, p.parseIfExpression)
	p.registerPrefix(lexer.COMPTIME, p.parseComptimeExpression)
	p.registerPrefix(lexer.UNSAFE, p.parseUnsafeExpression)
	p.registerPrefix(lexer.PIPE, p.parseLambda)
	p.registerPrefix(lexer.LT, p.parseAsTraitPathExpression)

	p.infixParseFns = map[lexer.TokenType]infixParseFn{}
	for _, t := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE,
		lexer.AND, lexer.OR,
	} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpression)
	p.registerInfix(lexer.DOT, p.parseDotExpression)
	p.registerInfix(lexer.AS, p.parseCastExpression)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(t lexer.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t lexer.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

// Errors returns every parse error collected so far. Never consulted
// by internal/completion, which only walks the tree this produces.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Errorf(format, args...))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected next token to be %v, got %v instead", t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// span builds an ast.Span from a starting byte offset to the end of
// the token the parser has just consumed (p.curToken, after advancing
// past the construct).
func (p *Parser) spanFrom(start int) ast.Span {
	return ast.Span{Start: start, End: p.curToken.End}
}

// ParseFile parses an entire source file into an *ast.File. Errors
// encountered along the way are collected, not raised; whatever items
// were recovered are still returned.
func ParseFile(path, source string) *ast.File {
	p := New(lexer.New(source))
	items := p.parseItems(lexer.EOF)
	return &ast.File{Path: path, Items: items}
}
