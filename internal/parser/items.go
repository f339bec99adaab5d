package parser

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/lexer"
)

// parseItems parses top-level items until stopToken (EOF for a whole
// file, RBRACE for an inline `mod { ... }` block).
func (p *Parser) parseItems(stopToken lexer.TokenType) []*ast.Item {
	var items []*ast.Item
	for !p.curIs(stopToken) && !p.curIs(lexer.EOF) {
		if item := p.parseItem(); item != nil {
			items = append(items, item)
		}
		p.nextToken()
	}
	return items
}

// parseVisibility consumes a leading `pub` or `pub(crate)` modifier, if
// present, and returns the visibility it names (Private when absent).
// p.curToken is left on the token that follows the modifier either way.
func (p *Parser) parseVisibility() ast.Visibility {
	if !p.curIs(lexer.PUB) {
		return ast.Private
	}
	vis := ast.Public
	if p.peekIs(lexer.LPAREN) {
		p.nextToken() // consume "pub", cur = "("
		p.nextToken() // cur = "crate" (or whatever's inside the parens)
		if p.curToken.Literal == "crate" {
			vis = ast.PublicCrate
		}
		if p.peekIs(lexer.RPAREN) {
			p.nextToken()
		}
	}
	p.nextToken()
	return vis
}

// parseItem parses one top-level item. p.curToken is its first token
// on entry (after skipping a leading `pub`/`pub(crate)`); on return
// p.curToken is its last token.
func (p *Parser) parseItem() *ast.Item {
	start := p.curToken.Start
	vis := p.parseVisibility()

	var item *ast.Item
	switch p.curToken.Type {
	case lexer.USE:
		item = p.parseUseItem(start)
	case lexer.MOD:
		item = p.parseModItem(start)
	case lexer.FN:
		item = &ast.Item{Kind: ast.FuncDecl{Def: p.parseFunctionDef(), Visibility: vis}, Span: p.spanFrom(start)}
	case lexer.TRAIT:
		item = p.parseTraitItem(start)
	case lexer.IMPL:
		item = p.parseImplItem(start)
	case lexer.GLOBAL:
		item = p.parseGlobalItem(start)
	case lexer.TYPE:
		item = p.parseTypeAliasItem(start)
	case lexer.STRUCT:
		item = p.parseStructItem(start)
	default:
		p.errorf("unexpected token at item level: %v", p.curToken.Type)
		return nil
	}
	if item != nil {
		item.Visibility = vis
	}
	return item
}

func (p *Parser) parseUseItem(start int) *ast.Item {
	p.nextToken() // consume "use"
	tree := p.parseUseTree()
	if p.peekIs(lexer.SEMI) {
		p.nextToken()
	}
	return &ast.Item{Kind: ast.ImportItem{Tree: tree}, Span: p.spanFrom(start)}
}

// parseUseTree parses `prefix::{a, b::c}`, `prefix::name`, or
// `prefix::name as alias`. p.curToken is the first segment on entry.
func (p *Parser) parseUseTree() *ast.UseTree {
	var prefixSegments []ast.PathSegment
	prefixKind := ast.PathPlain

	switch p.curToken.Type {
	case lexer.CRATE:
		prefixKind = ast.PathCrate
		p.nextToken()
		if p.curIs(lexer.DCOLON) {
			p.nextToken()
		}
	case lexer.SUPER:
		prefixKind = ast.PathSuper
		p.nextToken()
		if p.curIs(lexer.DCOLON) {
			p.nextToken()
		}
	case lexer.DEP:
		prefixKind = ast.PathDep
		p.nextToken()
		if p.curIs(lexer.DCOLON) {
			p.nextToken()
		}
	}

	for p.curIs(lexer.IDENT) && p.peekIs(lexer.DCOLON) {
		prefixSegments = append(prefixSegments, ast.PathSegment{
			Ident: ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}},
		})
		p.nextToken() // consume ident
		p.nextToken() // consume ::
	}

	prefix := ast.Path{Segments: prefixSegments, Kind: prefixKind}

	if p.curIs(lexer.LBRACE) {
		p.nextToken()
		var trees []*ast.UseTree
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			trees = append(trees, p.parseUseTree())
			if p.peekIs(lexer.COMMA) {
				p.nextToken()
			}
			p.nextToken()
		}
		return &ast.UseTree{Prefix: prefix, Kind: ast.UseTreeList{Trees: trees}}
	}

	ident := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
	var alias *ast.Ident
	if p.peekIs(lexer.AS) {
		p.nextToken()
		p.nextToken()
		a := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
		alias = &a
	}
	return &ast.UseTree{Prefix: prefix, Kind: ast.UseTreePath{Ident: ident, Alias: alias}}
}

func (p *Parser) parseModItem(start int) *ast.Item {
	p.nextToken() // consume "mod"
	name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}

	if p.peekIs(lexer.SEMI) {
		p.nextToken()
		return &ast.Item{Kind: ast.ModuleDeclItem{Name: name}, Span: p.spanFrom(start)}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return &ast.Item{Kind: ast.ModuleDeclItem{Name: name}, Span: p.spanFrom(start)}
	}
	p.nextToken() // move past { into the submodule's items
	contents := p.parseItems(lexer.RBRACE)
	return &ast.Item{Kind: ast.SubmoduleItem{Name: name, Contents: contents}, Span: p.spanFrom(start)}
}

func (p *Parser) parseFunctionDef() ast.FunctionDef {
	defStart := p.curToken.Start
	p.nextToken() // consume "fn"
	name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}

	var generics []ast.UnresolvedGeneric
	if p.peekIs(lexer.LT) {
		p.nextToken()
		generics = p.parseGenerics()
	}

	if !p.expectPeek(lexer.LPAREN) {
		return ast.FunctionDef{Name: name, Generics: generics, Span: p.spanFrom(defStart)}
	}
	p.nextToken()
	var params []ast.Param
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		pattern := p.parsePattern()
		var typ *ast.UnresolvedType
		if p.peekIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			typ = p.parseType()
		}
		params = append(params, ast.Param{Pattern: pattern, Type: typ})
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}

	returnType := p.parseReturnType()

	if p.peekIs(lexer.SEMI) {
		// A trait method signature with no default body.
		p.nextToken()
		return ast.FunctionDef{Name: name, Generics: generics, Parameters: params, ReturnType: returnType, Span: p.spanFrom(defStart)}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return ast.FunctionDef{Name: name, Generics: generics, Parameters: params, ReturnType: returnType, Span: p.spanFrom(defStart)}
	}
	body := p.parseBlockExpression()
	return ast.FunctionDef{Name: name, Generics: generics, Parameters: params, ReturnType: returnType, Body: body, Span: p.spanFrom(defStart)}
}

func (p *Parser) parseStructItem(start int) *ast.Item {
	p.nextToken() // consume "struct"
	name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}

	var generics []ast.UnresolvedGeneric
	if p.peekIs(lexer.LT) {
		p.nextToken()
		generics = p.parseGenerics()
	}

	if !p.expectPeek(lexer.LBRACE) {
		return &ast.Item{Kind: ast.StructDecl{Name: name, Generics: generics}, Span: p.spanFrom(start)}
	}
	p.nextToken()
	var fields []ast.StructField
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		fieldVis := p.parseVisibility()
		fieldName := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
		var typ *ast.UnresolvedType
		if p.peekIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			typ = p.parseType()
		}
		fields = append(fields, ast.StructField{Name: fieldName, Type: typ, Visibility: fieldVis})
		if p.peekIs(lexer.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	return &ast.Item{Kind: ast.StructDecl{Name: name, Generics: generics, Fields: fields}, Span: p.spanFrom(start)}
}

func (p *Parser) parseTraitItem(start int) *ast.Item {
	p.nextToken() // consume "trait"
	name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
	if !p.expectPeek(lexer.LBRACE) {
		return &ast.Item{Kind: ast.TraitDecl{Name: name}, Span: p.spanFrom(start)}
	}
	p.nextToken()
	var items []ast.TraitItem
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if item := p.parseTraitMember(); item != nil {
			items = append(items, item)
		}
		p.nextToken()
	}
	return &ast.Item{Kind: ast.TraitDecl{Name: name, Items: items}, Span: p.spanFrom(start)}
}

func (p *Parser) parseTraitMember() ast.TraitItem {
	switch p.curToken.Type {
	case lexer.FN:
		def := p.parseFunctionDef()
		var body *ast.BlockExpression
		if len(def.Body.Statements) > 0 {
			body = &def.Body
		}
		return ast.TraitItemFunction{
			Name: def.Name, Generics: def.Generics,
			ReturnType: def.ReturnType, Body: body,
			Parameters: paramsToTraitParams(def.Parameters),
		}
	case lexer.GLOBAL:
		p.nextToken()
		name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
		var typ *ast.UnresolvedType
		if p.peekIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			typ = p.parseType()
		}
		var def *ast.Expression
		if p.peekIs(lexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			e := p.parseExpression(LOWEST)
			def = &e
		}
		if p.peekIs(lexer.SEMI) {
			p.nextToken()
		}
		return ast.TraitItemConstant{Name: name, Type: typ, DefaultValue: def}
	case lexer.TYPE:
		p.nextToken()
		name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
		if p.peekIs(lexer.SEMI) {
			p.nextToken()
		}
		return ast.TraitItemAssocType{Name: name}
	default:
		p.errorf("unexpected token in trait body: %v", p.curToken.Type)
		return nil
	}
}

func paramsToTraitParams(params []ast.Param) []ast.TraitItemParam {
	out := make([]ast.TraitItemParam, 0, len(params))
	for _, param := range params {
		name := ast.Ident{}
		if ip, ok := param.Pattern.(ast.IdentPattern); ok {
			name = ip.Ident
		}
		out = append(out, ast.TraitItemParam{Name: name, Type: param.Type})
	}
	return out
}

// parseImplItem parses `impl<T> Type { ... }` or
// `impl<T> Trait<U> for Type { ... }`.
func (p *Parser) parseImplItem(start int) *ast.Item {
	p.nextToken() // consume "impl"

	var generics []ast.UnresolvedGeneric
	if p.curIs(lexer.LT) {
		generics = p.parseGenerics()
		p.nextToken()
	}

	firstType := p.parseType()

	if p.peekIs(lexer.FOR) {
		traitPath := pathFromType(firstType)
		p.nextToken() // move to "for"
		p.nextToken() // move to target type
		target := p.parseType()
		if !p.expectPeek(lexer.LBRACE) {
			return &ast.Item{Kind: ast.TraitImplDecl{ImplGenerics: generics, TraitPath: traitPath, TargetType: target}, Span: p.spanFrom(start)}
		}
		p.nextToken()
		var items []ast.TraitImplItem
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			methodVis := p.parseVisibility()
			if p.curIs(lexer.FN) {
				items = append(items, ast.TraitImplFunction{Func: ast.FuncDecl{Def: p.parseFunctionDef(), Visibility: methodVis}})
			} else if p.curIs(lexer.GLOBAL) {
				p.nextToken()
				name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
				var typ *ast.UnresolvedType
				if p.peekIs(lexer.COLON) {
					p.nextToken()
					p.nextToken()
					typ = p.parseType()
				}
				var value ast.Expression
				if p.peekIs(lexer.ASSIGN) {
					p.nextToken()
					p.nextToken()
					value = p.parseExpression(LOWEST)
				}
				if p.peekIs(lexer.SEMI) {
					p.nextToken()
				}
				items = append(items, ast.TraitImplConstant{Name: name, Type: typ, Value: value})
			} else if p.curIs(lexer.TYPE) {
				p.nextToken()
				name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
				if p.peekIs(lexer.SEMI) {
					p.nextToken()
				}
				items = append(items, ast.TraitImplAssocType{Name: name})
			} else {
				p.errorf("unexpected token in trait impl body: %v", p.curToken.Type)
			}
			p.nextToken()
		}
		return &ast.Item{Kind: ast.TraitImplDecl{ImplGenerics: generics, TraitPath: traitPath, TargetType: target, Items: items}, Span: p.spanFrom(start)}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return &ast.Item{Kind: ast.ImplDecl{Generics: generics, Target: firstType}, Span: p.spanFrom(start)}
	}
	p.nextToken()
	var methods []ast.FuncDecl
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		methodVis := p.parseVisibility()
		if p.curIs(lexer.FN) {
			methods = append(methods, ast.FuncDecl{Def: p.parseFunctionDef(), Visibility: methodVis})
		} else {
			p.errorf("unexpected token in impl body: %v", p.curToken.Type)
		}
		p.nextToken()
	}
	return &ast.Item{Kind: ast.ImplDecl{Generics: generics, Target: firstType, Methods: methods}, Span: p.spanFrom(start)}
}

func pathFromType(typ *ast.UnresolvedType) ast.Path {
	if named, ok := typ.Data.(ast.NamedType); ok {
		return named.Path
	}
	return ast.Path{}
}

// parseGlobalItem parses `global NAME: Type = expr;`. Globals are
// modelled as a LetStatement (matching ItemKind::Global(LetStatement)
// in the original) even though there's no `let` keyword at this
// position — find_in_item routes Global through find_in_let_statement
// with collect_local_variables=false, which is what matters for
// completion (see SPEC_FULL.md's supplemented-features note).
func (p *Parser) parseGlobalItem(start int) *ast.Item {
	p.nextToken() // consume "global"
	pattern := p.parsePattern()
	var typ *ast.UnresolvedType
	if p.peekIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		typ = p.parseType()
	}
	var expr ast.Expression
	if p.peekIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		expr = p.parseExpression(LOWEST)
	}
	if p.peekIs(lexer.SEMI) {
		p.nextToken()
	}
	let := ast.LetStatement{Pattern: pattern, Type: typ, Expression: expr}
	return &ast.Item{Kind: ast.GlobalItem{Let: let}, Span: p.spanFrom(start)}
}

func (p *Parser) parseTypeAliasItem(start int) *ast.Item {
	p.nextToken() // consume "type"
	name := ast.Ident{Name: p.curToken.Literal, Span: ast.Span{Start: p.curToken.Start, End: p.curToken.End}}
	if p.peekIs(lexer.LT) {
		p.nextToken()
		p.parseGenerics()
	}
	if !p.expectPeek(lexer.ASSIGN) {
		return &ast.Item{Kind: ast.TypeAliasDecl{Name: name}, Span: p.spanFrom(start)}
	}
	p.nextToken()
	typ := p.parseType()
	if p.peekIs(lexer.SEMI) {
		p.nextToken()
	}
	return &ast.Item{Kind: ast.TypeAliasDecl{Name: name, Type: typ}, Span: p.spanFrom(start)}
}
