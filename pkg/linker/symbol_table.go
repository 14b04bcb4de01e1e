package linker

import "sort"

// SymbolTable maps symbol names to their defining section. The first
// definition registered for a name wins; later ones are ignored, matching
// archive search semantics where the earliest definition is silently
// preferred.
type SymbolTable struct {
	defs map[string]*Section
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		defs: make(map[string]*Section),
	}
}

func (t *SymbolTable) Defined(name string) bool {
	return t.defs[name] != nil
}

// Define registers sec as the definition of name and reports whether the
// registration took effect (false when an earlier definition exists).
func (t *SymbolTable) Define(name string, sec *Section) bool {
	if t.defs[name] != nil {
		return false
	}
	t.defs[name] = sec
	return true
}

func (t *SymbolTable) Resolve(name string) (*Section, error) {
	sec := t.defs[name]
	if sec == nil {
		return nil, &UndefinedSymbolError{Name: name}
	}
	return sec, nil
}

// ReferencesOf returns the names directly referenced by the definition of
// name, empty for leaf symbols.
func (t *SymbolTable) ReferencesOf(name string) ([]string, error) {
	sec, err := t.Resolve(name)
	if err != nil {
		return nil, err
	}
	for _, sym := range sec.Symbols {
		if sym.Name == name {
			return sym.Refs, nil
		}
	}
	return nil, nil
}

// Names returns every defined symbol name, sorted.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.defs))
	for name := range t.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
