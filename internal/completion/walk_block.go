package completion

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/interner"
)

// findInBlockExpression mirrors find_in_block_expression, including
// the "stop past the cursor" statement-loop optimization.
func (f *Finder) findInBlockExpression(block ast.BlockExpression) {
	oldLocals := f.snapshotLocals()
	for _, stmt := range block.Statements {
		f.findInStatement(stmt)
		if stmt.Span.End > f.byteIndex {
			break
		}
	}
	f.restoreLocals(oldLocals)
}

func (f *Finder) findInStatement(stmt ast.Statement) {
	switch kind := stmt.Kind.(type) {
	case ast.LetStatement:
		f.findInLetStatement(kind, true)
	case ast.ConstrainStatement:
		f.findInConstrainStatement(kind)
	case ast.ExpressionStatement:
		f.findInExpression(kind.Expression)
	case ast.AssignStatement:
		f.findInAssignStatement(kind)
	case ast.ForLoopStatement:
		f.findInForLoopStatement(kind)
	case ast.ComptimeStatement:
		// Entering a comptime statement clears regular locals for its
		// duration (spec.md §4.C).
		oldLocals := f.snapshotLocals()
		f.clearLocals()
		if kind.Statement != nil {
			f.findInStatement(*kind.Statement)
		}
		f.restoreLocals(oldLocals)
	case ast.SemiStatement:
		f.findInExpression(kind.Expression)
	case ast.BreakStatement, ast.ContinueStatement, ast.ErrorStatement:
		// No-op.
	}
}

// findInLetStatement mirrors find_in_let_statement. collectLocals is
// false exactly once: for a top-level global (SPEC_FULL.md §4
// "Global declarations never contribute locals").
func (f *Finder) findInLetStatement(let ast.LetStatement, collectLocals bool) {
	f.findInUnresolvedType(let.Type)
	f.findInExpression(let.Expression)

	if collectLocals {
		f.collectLocalVariables(let.Pattern)
	}
}

func (f *Finder) findInConstrainStatement(c ast.ConstrainStatement) {
	f.findInExpression(c.LHS)
	if c.RHS != nil {
		f.findInExpression(*c.RHS)
	}
}

func (f *Finder) findInAssignStatement(a ast.AssignStatement) {
	f.findInLValue(a.LValue)
	f.findInExpression(a.Expression)
}

func (f *Finder) findInForLoopStatement(loop ast.ForLoopStatement) {
	oldLocals := f.snapshotLocals()
	f.localVariables[loop.Identifier.Name] = loop.Identifier.Span

	f.findInForRange(loop.Range)
	f.findInExpression(loop.Block)

	f.restoreLocals(oldLocals)
}

// findInLValue mirrors find_in_lvalue, including the distinct
// "definition_type of the referenced local" trailing-dot path
// (SPEC_FULL.md §4 "LValue trailing `.`").
func (f *Finder) findInLValue(lv ast.LValue) {
	switch v := lv.(type) {
	case ast.IdentLValue:
		if f.byteIs('.') && v.Ident.Span.End == f.byteIndex-1 {
			if ref, ok := f.interner.FindReferenced(f.file, v.Ident.Span); ok {
				if local, ok := ref.(interner.ReferenceLocal); ok {
					if typ, ok := f.interner.DefinitionType(local.Definition); ok {
						f.completeTypeFieldsAndMethods(typ, "")
					}
				}
			}
		}
	case ast.MemberAccessLValue:
		f.findInLValue(v.Object)
	case ast.IndexLValue:
		f.findInLValue(v.Array)
		f.findInExpression(v.Index)
	case ast.DereferenceLValue:
		f.findInLValue(v.LValue)
	}
}

func (f *Finder) findInForRange(r ast.ForRange) {
	switch rng := r.(type) {
	case ast.RangeForRange:
		f.findInExpression(rng.Start)
		f.findInExpression(rng.End)
	case ast.ArrayForRange:
		f.findInExpression(rng.Array)
	}
}
