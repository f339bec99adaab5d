package completion

import "orbitlang.org/go/internal/ast"

// findInExpression mirrors find_in_expression, including the
// trailing-dot special case applied after descending into the
// expression's children ("in an expression like `foo & bar.` we want
// to complete for `bar`, not for `foo & bar`").
func (f *Finder) findInExpression(expr ast.Expression) {
	switch kind := expr.Kind.(type) {
	case ast.Literal:
		f.findInLiteral(kind)
	case ast.BlockExpression:
		f.findInBlockExpression(kind)
	case ast.PrefixExpression:
		if kind.RHS != nil {
			f.findInExpression(*kind.RHS)
		}
	case ast.IndexExpression:
		f.findInIndexExpression(kind)
	case ast.CallExpression:
		f.findInCallExpression(kind)
	case ast.MethodCallExpression:
		f.findInMethodCallExpression(kind)
	case ast.ConstructorExpression:
		f.findInConstructorExpression(kind)
	case ast.MemberAccessExpression:
		f.findInMemberAccessExpression(kind)
	case ast.CastExpression:
		f.findInCastExpression(kind)
	case ast.InfixExpression:
		f.findInInfixExpression(kind)
	case ast.IfExpression:
		f.findInIfExpression(kind)
	case ast.Variable:
		f.findInPath(kind.Path, AnyItems)
	case ast.Tuple:
		f.findInExpressions(kind.Elements)
	case ast.Lambda:
		f.findInLambda(kind)
	case ast.Parenthesized:
		if kind.Inner != nil {
			f.findInExpression(*kind.Inner)
		}
	case ast.Comptime:
		oldLocals := f.snapshotLocals()
		f.clearLocals()
		if kind.Block != nil {
			f.findInExpression(*kind.Block)
		}
		f.restoreLocals(oldLocals)
	case ast.Unsafe:
		if kind.Block != nil {
			f.findInExpression(*kind.Block)
		}
	case ast.AsTraitPathExpr:
		f.findInAsTraitPath(kind.Path)
	case ast.Opaque:
		// Quoted code, already-resolved expressions, parse errors.
	}

	// "foo." (no identifier afterwards) parses as the expression left
	// of the dot. If the completion items list is still empty and the
	// cursor sits right after this expression's trailing dot, treat it
	// as a trailing member-access completion with an empty prefix.
	if len(f.items) == 0 && f.byteIs('.') && expr.Span.End == f.byteIndex-1 {
		if typ, ok := f.interner.TypeAtLocation(f.file, expr.Span.Start); ok {
			f.completeTypeFieldsAndMethods(typ, "")
		}
	}
}

func (f *Finder) findInExpressions(exprs []ast.Expression) {
	for _, e := range exprs {
		f.findInExpression(e)
	}
}

func (f *Finder) findInLiteral(lit ast.Literal) {
	switch kind := lit.Kind.(type) {
	case ast.ArrayLiteral:
		f.findInArrayLiteral(kind)
	case ast.SliceLiteral:
		f.findInArrayLiteral(kind.ArrayLiteral)
	case ast.OpaqueLiteral:
		// bool/integer/str/raw str/fmt str/unit: nothing to walk into.
	}
}

func (f *Finder) findInArrayLiteral(lit ast.ArrayLiteral) {
	if lit.Repeated != nil {
		f.findInExpression(*lit.Repeated)
		if lit.Length != nil {
			f.findInExpression(*lit.Length)
		}
		return
	}
	f.findInExpressions(lit.Elements)
}

func (f *Finder) findInIndexExpression(idx ast.IndexExpression) {
	if idx.Collection != nil {
		f.findInExpression(*idx.Collection)
	}
	if idx.Index != nil {
		f.findInExpression(*idx.Index)
	}
}

func (f *Finder) findInCallExpression(call ast.CallExpression) {
	if call.Func != nil {
		f.findInExpression(*call.Func)
	}
	f.findInExpressions(call.Arguments)
}

func (f *Finder) findInMethodCallExpression(call ast.MethodCallExpression) {
	if call.Object != nil {
		f.findInExpression(*call.Object)
	}
	f.findInExpressions(call.Arguments)
}

// findInConstructorExpression mirrors find_in_constructor_expression:
// the type name is completed as a type-only path, field values as
// ordinary expressions.
func (f *Finder) findInConstructorExpression(c ast.ConstructorExpression) {
	f.findInPath(c.TypeName, OnlyTypes)
	for _, field := range c.Fields {
		f.findInExpression(field.Value)
	}
}

// findInMemberAccessExpression mirrors find_in_member_access_expression:
// when the cursor is right after the field identifier, complete the
// LHS expression's type's fields/methods filtered by whatever prefix
// has been typed so far; otherwise recurse into the LHS only (the RHS
// identifier, not yet fully typed, contributes nothing on its own).
func (f *Finder) findInMemberAccessExpression(m ast.MemberAccessExpression) {
	if f.byteIndex == m.RHS.Span.End {
		if m.LHS != nil {
			if typ, ok := f.interner.TypeAtLocation(f.file, m.LHS.Span.Start); ok {
				f.completeTypeFieldsAndMethods(typ, m.RHS.Name)
				return
			}
		}
	}

	if m.LHS != nil {
		f.findInExpression(*m.LHS)
	}
}

func (f *Finder) findInCastExpression(c ast.CastExpression) {
	if c.LHS != nil {
		f.findInExpression(*c.LHS)
	}
}

func (f *Finder) findInInfixExpression(in ast.InfixExpression) {
	if in.LHS != nil {
		f.findInExpression(*in.LHS)
	}
	if in.RHS != nil {
		f.findInExpression(*in.RHS)
	}
}

// findInIfExpression mirrors find_in_if_expression: locals are
// snapshotted/restored independently around each branch so bindings
// from one branch never leak into the other.
func (f *Finder) findInIfExpression(ifExpr ast.IfExpression) {
	if ifExpr.Condition != nil {
		f.findInExpression(*ifExpr.Condition)
	}

	if ifExpr.Consequence != nil {
		oldLocals := f.snapshotLocals()
		f.findInExpression(*ifExpr.Consequence)
		f.restoreLocals(oldLocals)
	}

	if ifExpr.Alternative != nil {
		oldLocals := f.snapshotLocals()
		f.findInExpression(*ifExpr.Alternative)
		f.restoreLocals(oldLocals)
	}
}

// findInLambda mirrors find_in_lambda: parameter types are walked in
// the outer scope, then parameter patterns are bound as locals for
// the body only.
func (f *Finder) findInLambda(lambda ast.Lambda) {
	for _, param := range lambda.Parameters {
		f.findInUnresolvedType(param.Type)
	}

	oldLocals := f.snapshotLocals()
	for _, param := range lambda.Parameters {
		f.collectLocalVariables(param.Pattern)
	}

	if lambda.Body != nil {
		f.findInExpression(*lambda.Body)
	}

	f.restoreLocals(oldLocals)
}

// findInAsTraitPath mirrors find_in_as_trait_path: only the trait path
// is a completion candidate location.
func (f *Finder) findInAsTraitPath(p ast.AsTraitPath) {
	f.findInPath(p.TraitPath, OnlyTypes)
}
