package linker

// Symbol is a named definition plus the names of the symbols its body
// references. The defining section back-pointer is set by NewSection;
// a symbol belongs to exactly one section.
type Symbol struct {
	Name    string
	Section *Section
	Refs    []string
}

func NewSymbol(name string, refs ...string) *Symbol {
	return &Symbol{
		Name: name,
		Refs: refs,
	}
}
