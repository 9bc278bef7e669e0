// env.go: lexical environments.
//
// An Env is one frame of the scope chain. Writes always land in the frame they
// are issued on; reads walk the parent chain. Frames are shared by reference,
// never copied: a closure keeps its defining frame alive simply by pointing
// at it.
//
// The parser reuses the same type as a symbol table when it checks parameter
// lists for duplicate names.
package mylang

// Env is a frame mapping names to values with an optional parent.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame whose reads fall back to parent (which may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Parent returns the enclosing frame, or nil for the outermost one.
func (e *Env) Parent() *Env { return e.parent }

// Define binds name to v in this frame, shadowing any outer binding. It does
// not check for an existing local binding; callers that must reject
// redeclaration check HasOwn first.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// HasOwn reports whether name is bound in this frame, ignoring ancestors.
func (e *Env) HasOwn(name string) bool {
	_, ok := e.table[name]
	return ok
}

// Lookup returns the nearest visible binding of name.
func (e *Env) Lookup(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Absent, false
}

// Get is Lookup that reports a missing name as a SymbolNotFound error.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.Lookup(name); ok {
		return v, nil
	}
	return Absent, rtError(KindSymbolNotFound, "%s symbol does not exist", name)
}

// Names returns the names bound in this frame, in no particular order.
func (e *Env) Names() []string {
	out := make([]string, 0, len(e.table))
	for k := range e.table {
		out = append(out, k)
	}
	return out
}
