// Package binder turns a parsed file into the concrete state
// internal/completion actually walks against: declarations registered
// in a internal/defmap.CrateDefMap, and struct/function shapes and a
// handful of local-binding types recorded in internal/interner.
// NodeInterner. The name resolver and type interner are external
// collaborators that internal/completion calls rather than
// reimplements; this package is the minimal real implementation of
// those collaborators this repository ships, grounded on the shapes
// internal/defmap.go and
// internal/interner.go were already built to be fed (Declare/Import,
// AddStruct/AddFunction/SetDefinitionType/RecordReference) rather than
// on any single present file, since no def-collector source survived
// the retrieval pack alongside completion.rs itself — see DESIGN.md's
// "internal/binder" section.
//
// Binding happens in two passes per module, matching how a real def
// collector can't assume declaration order: the first pass declares
// every name a module introduces (so forward references resolve), the
// second attaches impl/trait-impl methods to the struct they target.
// Function bodies get a best-effort third pass that only ever infers
// enough to drive completion's "detail" field (a let bound to a
// literal or constructor expression) — full expression type inference
// is intentionally not attempted.
package binder

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/fm"
	"orbitlang.org/go/internal/interner"
	"orbitlang.org/go/internal/types"
)

func toItemVisibility(v ast.Visibility) defmap.ItemVisibility {
	switch v {
	case ast.Public:
		return defmap.Public
	case ast.PublicCrate:
		return defmap.PublicCrate
	default:
		return defmap.Private
	}
}

// idAllocator hands out dense, increasing ids for every id type the
// interner/defmap need. A Binder's allocator is shared across every
// BindFile call made on it, and New starts the function, struct and
// type-alias sequences (and the definition-id sequence) after the ids
// the shared interner already holds, so those ids stay unique across a
// crate whose files are each bound by their own Binder. Trait and
// global ids are not recorded in the interner and restart at 0 in
// every Binder.
type idAllocator struct {
	nextStruct int
	nextFunc   int
	nextTrait  int
	nextAlias  int
	nextGlobal int
}

func (a *idAllocator) structID() defmap.StructID {
	id := a.nextStruct
	a.nextStruct++
	return defmap.StructID(id)
}
func (a *idAllocator) funcID() defmap.FuncID {
	id := a.nextFunc
	a.nextFunc++
	return defmap.FuncID(id)
}
func (a *idAllocator) traitID() defmap.TraitID {
	id := a.nextTrait
	a.nextTrait++
	return defmap.TraitID(id)
}
func (a *idAllocator) aliasID() defmap.TypeAliasID {
	id := a.nextAlias
	a.nextAlias++
	return defmap.TypeAliasID(id)
}
func (a *idAllocator) globalID() defmap.GlobalID {
	id := a.nextGlobal
	a.nextGlobal++
	return defmap.GlobalID(id)
}

// Binder accumulates cross-module state (the struct-by-name lookup
// impls need to attach methods, and the shared id allocator) across
// every BindFile call made on it.
type Binder struct {
	defMap         *defmap.CrateDefMap
	interner       *interner.NodeInterner
	file           fm.FileID
	ids            *idAllocator
	nextDefinition int

	// structsByModule indexes declared structs by (module, name) so a
	// same- or later-appearing impl block can find the struct it
	// targets regardless of declaration order.
	structsByModule map[defmap.LocalModuleID]map[string]*types.StructType
	// pendingImpls holds every impl/trait-impl block, resolved in a
	// final pass once all of the file's structs have been declared.
	pendingImpls []pendingImpl
}

type pendingImpl struct {
	module  defmap.LocalModuleID
	target  ast.Path
	trait   *defmap.TraitID // the trait this impl is for, nil for an inherent impl
	items   []ast.TraitImplItem
	methods []ast.FuncDecl
}

// New returns a Binder that declares into defMap and records types
// into in, for source text read from file.
func New(defMap *defmap.CrateDefMap, in *interner.NodeInterner, file fm.FileID) *Binder {
	b := &Binder{
		defMap:          defMap,
		interner:        in,
		file:            file,
		ids:             &idAllocator{},
		structsByModule: make(map[defmap.LocalModuleID]map[string]*types.StructType),
	}
	// Resume each sequence after the ids earlier Binders recorded in in.
	for _, ok := in.FunctionParams(defmap.FuncID(b.ids.nextFunc)); ok; _, ok = in.FunctionParams(defmap.FuncID(b.ids.nextFunc)) {
		b.ids.nextFunc++
	}
	for _, ok := in.GetStruct(defmap.StructID(b.ids.nextStruct)); ok; _, ok = in.GetStruct(defmap.StructID(b.ids.nextStruct)) {
		b.ids.nextStruct++
	}
	for _, ok := in.GetTypeAlias(defmap.TypeAliasID(b.ids.nextAlias)); ok; _, ok = in.GetTypeAlias(defmap.TypeAliasID(b.ids.nextAlias)) {
		b.ids.nextAlias++
	}
	for _, ok := in.DefinitionType(interner.DefinitionID(b.nextDefinition)); ok; _, ok = in.DefinitionType(interner.DefinitionID(b.nextDefinition)) {
		b.nextDefinition++
	}
	return b
}

// BindFile declares every item at a parsed file's root into module
// (conventionally the crate root, or wherever the file manager placed
// it), then resolves impl blocks and walks function bodies for
// best-effort local type inference.
func (b *Binder) BindFile(module defmap.LocalModuleID, file *ast.File) {
	b.declareItems(module, file.Items)
	b.resolvePendingImpls()
	b.bindBodies(module, file.Items)
}

func (b *Binder) structsOf(module defmap.LocalModuleID) map[string]*types.StructType {
	m := b.structsByModule[module]
	if m == nil {
		m = make(map[string]*types.StructType)
		b.structsByModule[module] = m
	}
	return m
}

// declareItems is the first pass: every name a module introduces gets
// a binding, recursing into inline submodules with a freshly AddModule'd
// LocalModuleID.
func (b *Binder) declareItems(module defmap.LocalModuleID, items []*ast.Item) {
	for _, item := range items {
		b.declareItem(module, item)
	}
}

func (b *Binder) declareItem(module defmap.LocalModuleID, item *ast.Item) {
	vis := toItemVisibility(item.Visibility)

	switch kind := item.Kind.(type) {
	case ast.SubmoduleItem:
		child := b.defMap.AddModule(module, kind.Name.Name, defmap.ModuleLocation{File: b.file})
		b.defMap.ModuleData(module).Declare(kind.Name.Name, defmap.TypeNsEntry(defmap.ModuleDefModule{ID: b.defMap.ModuleIDOf(child)}, vis))
		b.declareItems(child, kind.Contents)

	case ast.StructDecl:
		id := b.ids.structID()
		b.defMap.AddStructModule(module, kind.Name.Name, defmap.ModuleLocation{File: b.file})
		st := &types.StructType{
			ID:     id,
			Name:   kind.Name.Name,
			Module: b.defMap.ModuleIDOf(module),
		}
		for _, g := range kind.Generics {
			st.Generics = append(st.Generics, genericName(g))
		}
		for _, f := range kind.Fields {
			st.Fields = append(st.Fields, types.StructField{
				Name:       f.Name.Name,
				Type:       b.resolveType(module, f.Type),
				Visibility: toItemVisibility(f.Visibility),
			})
		}
		b.interner.AddStruct(st)
		b.structsOf(module)[kind.Name.Name] = st
		b.defMap.ModuleData(module).Declare(kind.Name.Name, defmap.TypeNsEntry(defmap.ModuleDefType{ID: id}, vis))

	case ast.FuncDecl:
		id := b.ids.funcID()
		b.interner.AddFunction(id, paramNames(kind.Def.Parameters))
		b.defMap.ModuleData(module).Declare(kind.Def.Name.Name, defmap.ValueNsEntry(defmap.ModuleDefFunction{ID: id}, vis))

	case ast.TraitDecl:
		id := b.ids.traitID()
		b.defMap.ModuleData(module).Declare(kind.Name.Name, defmap.TypeNsEntry(defmap.ModuleDefTrait{ID: id}, vis))

	case ast.TypeAliasDecl:
		id := b.ids.aliasID()
		b.interner.SetTypeAlias(id, b.resolveType(module, kind.Type))
		b.defMap.ModuleData(module).Declare(kind.Name.Name, defmap.TypeNsEntry(defmap.ModuleDefTypeAlias{ID: id}, vis))

	case ast.GlobalItem:
		id := b.ids.globalID()
		if name, ok := identOfPattern(kind.Let.Pattern); ok {
			b.defMap.ModuleData(module).Declare(name.Name, defmap.ValueNsEntry(defmap.ModuleDefGlobal{ID: id}, vis))
		}

	case ast.ImplDecl:
		b.pendingImpls = append(b.pendingImpls, pendingImpl{module: module, target: targetTypePath(kind.Target), methods: kind.Methods})

	case ast.TraitImplDecl:
		pi := pendingImpl{module: module, target: targetTypePath(kind.TargetType), items: kind.Items}
		if name, ok := singleIdentName(kind.TraitPath); ok {
			if perNs, ok := b.defMap.ModuleData(module).FindName(name); ok && perNs.Types != nil {
				if tr, ok := perNs.Types.Def.(defmap.ModuleDefTrait); ok {
					pi.trait = &tr.ID
				}
			}
		}
		b.pendingImpls = append(b.pendingImpls, pi)

	case ast.ImportItem:
		b.declareUseTree(module, kind.Tree, nil)

	case ast.ModuleDeclItem:
		// Points at a file this binder was never given; nothing to declare.
	}
}

// declareUseTree binds the names a (possibly nested) use-tree brings
// into module's scope, resolved against what's already been declared
// in defMap (forward/cross-file imports of not-yet-bound names are
// silently skipped rather than erroring, so completion degrades to an
// empty or partial result instead of failing outright).
func (b *Binder) declareUseTree(module defmap.LocalModuleID, tree *ast.UseTree, prefix []ast.Ident) {
	segments := append(append([]ast.Ident{}, prefix...), tree.Prefix.Idents()...)
	switch kind := tree.Kind.(type) {
	case ast.UseTreePath:
		if kind.Alias != nil {
			return
		}
		full := append(append([]ast.Ident{}, segments...), kind.Ident)
		entry, ok := b.lookupPath(tree.Prefix.Kind, full)
		if !ok {
			return
		}
		b.defMap.ModuleData(module).Import(kind.Ident.Name, entry)
	case ast.UseTreeList:
		for _, sub := range kind.Trees {
			b.declareUseTree(module, sub, segments)
		}
	}
}

// lookupPath resolves a use-tree's fully qualified segment list
// against this crate's def map, always starting from the crate root
// (only crate-rooted and bare-name use-trees resolve here; a
// super-relative or dep:: prefix targets a module or crate this
// binder has no way to locate from a single file, so those are
// skipped instead of guessed at).
func (b *Binder) lookupPath(kind ast.PathKind, idents []ast.Ident) (defmap.PerNs, bool) {
	if len(idents) == 0 || kind == ast.PathDep || kind == ast.PathSuper {
		return defmap.PerNs{}, false
	}
	current := b.defMap.Root()
	for i, ident := range idents {
		data := b.defMap.ModuleData(current)
		perNs, ok := data.FindName(ident.Name)
		if !ok {
			return defmap.PerNs{}, false
		}
		if i == len(idents)-1 {
			return perNs, true
		}
		modDef, ok := modDefModule(perNs)
		if !ok {
			return defmap.PerNs{}, false
		}
		current = modDef.Local
	}
	return defmap.PerNs{}, false
}

func modDefModule(p defmap.PerNs) (defmap.ModuleID, bool) {
	if p.Types == nil {
		return defmap.ModuleID{}, false
	}
	m, ok := p.Types.Def.(defmap.ModuleDefModule)
	if !ok {
		return defmap.ModuleID{}, false
	}
	return m.ID, true
}

// resolvePendingImpls attaches every collected impl/trait-impl's
// methods to the struct it targets, once every struct in the crate
// has been declared.
func (b *Binder) resolvePendingImpls() {
	for _, pi := range b.pendingImpls {
		name, ok := singleIdentName(pi.target)
		if !ok {
			continue
		}
		st, ok := b.structsOf(pi.module)[name]
		if !ok {
			continue
		}
		for _, m := range pi.methods {
			st.Methods = append(st.Methods, b.bindMethod(m))
		}
		for _, item := range pi.items {
			if fn, ok := item.(ast.TraitImplFunction); ok {
				method := b.bindMethod(fn.Func)
				if pi.trait != nil {
					method.FromTrait = pi.trait
				}
				st.Methods = append(st.Methods, method)
			}
		}
	}
}

func (b *Binder) bindMethod(fn ast.FuncDecl) types.Method {
	id := b.ids.funcID()
	b.interner.AddFunction(id, paramNames(fn.Def.Parameters))
	return types.Method{
		Name:       fn.Def.Name.Name,
		FuncID:     id,
		Visibility: toItemVisibility(fn.Visibility),
	}
}

// resolveType converts a syntactic type into internal/types.Type,
// looking structs up by name in module's own declarations (the only
// cross-reference completion's field/method enumeration ever needs);
// anything else becomes an Opaque carrying its written name, which is
// all completion's own callers ever render it as (a `detail` string).
func (b *Binder) resolveType(module defmap.LocalModuleID, t *ast.UnresolvedType) types.Type {
	if t == nil {
		return types.Opaque{Name: "_"}
	}
	switch d := t.Data.(type) {
	case ast.NamedType:
		if name, ok := singleIdentName(d.Path); ok {
			if st, ok := b.structsOf(module)[name]; ok {
				return types.Struct{Def: st}
			}
			return types.Opaque{Name: name}
		}
		return types.Opaque{Name: "?"}
	case ast.MutableReferenceType:
		return types.Reference{Mutable: true, Element: b.resolveType(module, d.Inner)}
	case ast.ArrayType:
		return types.Array{Element: b.resolveType(module, d.Element)}
	case ast.SliceType:
		return types.Slice{Element: b.resolveType(module, d.Element)}
	case ast.TupleType:
		elems := make([]types.Type, len(d.Elements))
		for i, e := range d.Elements {
			elems[i] = b.resolveType(module, e)
		}
		return types.Tuple{Elements: elems}
	case ast.OpaqueType:
		return types.Opaque{Name: d.Name}
	default:
		return types.Opaque{Name: "?"}
	}
}

func genericName(g ast.UnresolvedGeneric) string {
	switch gg := g.(type) {
	case ast.GenericVariable:
		return gg.Ident.Name
	case ast.NumericGeneric:
		return gg.Ident.Name
	case ast.ResolvedGeneric:
		return gg.Ident.Name
	default:
		return ""
	}
}

func paramNames(params []ast.Param) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		if ident, ok := identOfPattern(p.Pattern); ok {
			names = append(names, ident.Name)
		} else {
			names = append(names, "_")
		}
	}
	return names
}

func identOfPattern(p ast.Pattern) (ast.Ident, bool) {
	switch pp := p.(type) {
	case ast.IdentPattern:
		return pp.Ident, true
	case ast.MutablePattern:
		return identOfPattern(pp.Pattern)
	default:
		return ast.Ident{}, false
	}
}

func singleIdentName(p ast.Path) (string, bool) {
	idents := p.Idents()
	if len(idents) != 1 {
		return "", false
	}
	return idents[0].Name, true
}

func targetTypePath(t *ast.UnresolvedType) ast.Path {
	if t == nil {
		return ast.Path{}
	}
	if named, ok := t.Data.(ast.NamedType); ok {
		return named.Path
	}
	return ast.Path{}
}

// bindBodies is the third, best-effort pass: it walks every function
// body in the file, including nested blocks and if/else branches,
// binding parameters and `let` statements and recording the types of
// variable uses it can place, so that a local bound to a literal or a
// known struct's constructor
// renders a non-empty `detail` in local-variable completion (as in
// "let foo = 1; let bar = f|"). It intentionally does not attempt
// full expression type inference (binary ops, calls, generics) —
// anything it can't place a confident type on is simply
// left unrecorded, and completion already tolerates a binding with no
// recorded type (empty detail).
func (b *Binder) bindBodies(module defmap.LocalModuleID, items []*ast.Item) {
	for _, item := range items {
		switch kind := item.Kind.(type) {
		case ast.SubmoduleItem:
			child, ok := b.defMap.ModuleData(module).Children[kind.Name.Name]
			if ok {
				b.bindBodies(child, kind.Contents)
			}
		case ast.FuncDecl:
			b.bindFunctionBody(module, kind.Def)
		case ast.ImplDecl:
			for _, m := range kind.Methods {
				b.bindFunctionBody(module, m.Def)
			}
		case ast.TraitImplDecl:
			for _, it := range kind.Items {
				if fn, ok := it.(ast.TraitImplFunction); ok {
					b.bindFunctionBody(module, fn.Func.Def)
				}
			}
		}
	}
}

func (b *Binder) bindFunctionBody(module defmap.LocalModuleID, fn ast.FunctionDef) {
	locals := make(map[string]types.Type)
	for _, param := range fn.Parameters {
		ident, ok := identOfPattern(param.Pattern)
		if !ok {
			continue
		}
		id := b.nextDefinitionID()
		b.interner.RecordReference(b.file, ident.Span, interner.ReferenceLocal{Definition: id})
		typ := b.resolveType(module, param.Type)
		b.interner.SetDefinitionType(id, typ)
		locals[ident.Name] = typ
	}
	b.bindStatements(module, fn.Body.Statements, locals)
}

func (b *Binder) bindStatements(module defmap.LocalModuleID, stmts []ast.Statement, locals map[string]types.Type) {
	for _, stmt := range stmts {
		switch kind := stmt.Kind.(type) {
		case ast.LetStatement:
			b.bindLet(module, kind, locals)
		case ast.ComptimeStatement:
			if kind.Statement != nil {
				b.bindStatements(module, []ast.Statement{*kind.Statement}, locals)
			}
		case ast.ExpressionStatement:
			b.bindExpression(module, kind.Expression, locals)
		case ast.SemiStatement:
			b.bindExpression(module, kind.Expression, locals)
		case ast.ConstrainStatement:
			b.bindExpression(module, kind.LHS, locals)
			if kind.RHS != nil {
				b.bindExpression(module, *kind.RHS, locals)
			}
		case ast.AssignStatement:
			b.bindExpression(module, kind.Expression, locals)
		}
	}
}

func (b *Binder) bindLet(module defmap.LocalModuleID, let ast.LetStatement, locals map[string]types.Type) {
	b.bindExpression(module, let.Expression, locals)

	ident, ok := identOfPattern(let.Pattern)
	if !ok {
		return
	}
	typ, ok := b.inferExpressionType(module, let.Expression)
	if !ok && let.Type != nil {
		typ, ok = b.resolveType(module, let.Type), true
	}
	if !ok {
		return
	}
	id := b.nextDefinitionID()
	b.interner.RecordReference(b.file, ident.Span, interner.ReferenceLocal{Definition: id})
	b.interner.SetDefinitionType(id, typ)
	locals[ident.Name] = typ
}

// bindExpression is the binder's best-effort expression walk: it
// exists only to feed internal/interner.NodeInterner.TypeAtLocation,
// by recording a known local's type at every span where that local is
// referenced as a bare variable (the "s" in "s.field", "s.method()",
// and similar). It does not attempt to infer or propagate types
// through calls, operators or field/method results — only what a
// plain variable reference already carries from its binding let or
// parameter, matching bindLet/bindFunctionBody's own minimal scope.
func (b *Binder) bindExpression(module defmap.LocalModuleID, expr ast.Expression, locals map[string]types.Type) {
	switch kind := expr.Kind.(type) {
	case ast.Variable:
		if name, ok := singleIdentName(kind.Path); ok {
			if typ, ok := locals[name]; ok {
				b.interner.RecordTypeLocation(b.file, expr.Span, typ)
			}
		}
	case ast.MemberAccessExpression:
		if kind.LHS != nil {
			b.bindExpression(module, *kind.LHS, locals)
		}
	case ast.MethodCallExpression:
		if kind.Object != nil {
			b.bindExpression(module, *kind.Object, locals)
		}
		for _, arg := range kind.Arguments {
			b.bindExpression(module, arg, locals)
		}
	case ast.CallExpression:
		if kind.Func != nil {
			b.bindExpression(module, *kind.Func, locals)
		}
		for _, arg := range kind.Arguments {
			b.bindExpression(module, arg, locals)
		}
	case ast.IndexExpression:
		if kind.Collection != nil {
			b.bindExpression(module, *kind.Collection, locals)
		}
		if kind.Index != nil {
			b.bindExpression(module, *kind.Index, locals)
		}
	case ast.InfixExpression:
		if kind.LHS != nil {
			b.bindExpression(module, *kind.LHS, locals)
		}
		if kind.RHS != nil {
			b.bindExpression(module, *kind.RHS, locals)
		}
	case ast.PrefixExpression:
		if kind.RHS != nil {
			b.bindExpression(module, *kind.RHS, locals)
		}
	case ast.CastExpression:
		if kind.LHS != nil {
			b.bindExpression(module, *kind.LHS, locals)
		}
	case ast.Parenthesized:
		if kind.Inner != nil {
			b.bindExpression(module, *kind.Inner, locals)
		}
	case ast.Tuple:
		for _, e := range kind.Elements {
			b.bindExpression(module, e, locals)
		}
	case ast.BlockExpression:
		inner := make(map[string]types.Type, len(locals))
		for k, v := range locals {
			inner[k] = v
		}
		b.bindStatements(module, kind.Statements, inner)
	case ast.IfExpression:
		if kind.Condition != nil {
			b.bindExpression(module, *kind.Condition, locals)
		}
		if kind.Consequence != nil {
			b.bindExpression(module, *kind.Consequence, locals)
		}
		if kind.Alternative != nil {
			b.bindExpression(module, *kind.Alternative, locals)
		}
	}
}

// inferExpressionType is the entire "type inference" this binder
// performs: literals get their obvious builtin type, and a
// constructor expression resolves to the struct it names when that
// struct was declared in module. Everything else returns false.
func (b *Binder) inferExpressionType(module defmap.LocalModuleID, expr ast.Expression) (types.Type, bool) {
	switch kind := expr.Kind.(type) {
	case ast.Literal:
		return inferLiteralType(kind.Kind)
	case ast.ConstructorExpression:
		name, ok := singleIdentName(kind.TypeName)
		if !ok {
			return nil, false
		}
		if st, ok := b.structsOf(module)[name]; ok {
			return types.Struct{Def: st}, true
		}
		return nil, false
	case ast.Parenthesized:
		if kind.Inner == nil {
			return nil, false
		}
		return b.inferExpressionType(module, *kind.Inner)
	default:
		return nil, false
	}
}

func inferLiteralType(lit ast.LiteralKind) (types.Type, bool) {
	opaque, ok := lit.(ast.OpaqueLiteral)
	if !ok {
		return nil, false
	}
	switch opaque.Kind {
	case "integer":
		return types.Opaque{Name: "Field"}, true
	case "str", "raw str", "fmt str":
		return types.Opaque{Name: "str"}, true
	case "bool":
		return types.Opaque{Name: "bool"}, true
	case "unit":
		return types.Opaque{Name: "()"}, true
	default:
		return nil, false
	}
}

func (b *Binder) nextDefinitionID() interner.DefinitionID {
	id := b.nextDefinition
	b.nextDefinition++
	return interner.DefinitionID(id)
}
