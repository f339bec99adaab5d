package completion

// Builtin vocabulary: the handful of names the language defines rather
// than a module, so they never show up in any def map and must be
// offered directly whenever a single bare segment is being completed
// (findInPath's isSingleSegment branch). Reconstructed from the
// primitive/intrinsic vocabulary threaded through original_source's
// frontend and LSP crates (no builtins submodule survived the
// retrieval pack alongside completion.rs itself).

var builtinFunctionNames = []string{
	"assert",
	"assert_eq",
	"println",
	"print",
}

var builtinValueNames = []string{
	"true",
	"false",
}

var builtinTypeNames = []string{
	"Field",
	"bool",
	"str",
	"u1",
	"u8",
	"u16",
	"u32",
	"u64",
	"u128",
	"i8",
	"i16",
	"i32",
	"i64",
}

// builtinFunctionsCompletion mirrors builtin_functions_completion.
func (f *Finder) builtinFunctionsCompletion(prefix string) {
	for _, name := range builtinFunctionNames {
		if prefixMatches(name, prefix) {
			f.emit(simpleItem(name, KindFunction, ""))
		}
	}
}

// builtinValuesCompletion mirrors builtin_values_completion.
func (f *Finder) builtinValuesCompletion(prefix string) {
	for _, name := range builtinValueNames {
		if prefixMatches(name, prefix) {
			f.emit(simpleItem(name, KindKeyword, ""))
		}
	}
}

// builtinTypesCompletion mirrors builtin_types_completion.
func (f *Finder) builtinTypesCompletion(prefix string) {
	for _, name := range builtinTypeNames {
		if prefixMatches(name, prefix) {
			f.emit(simpleItem(name, KindStruct, ""))
		}
	}
}
