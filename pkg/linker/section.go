package linker

// Section is the atomic unit of inclusion: if the linker needs any symbol
// defined here, every symbol in the section comes along. Sections are
// compared by identity and never mutated after construction.
type Section struct {
	ID      string
	Object  string // owning object or archive member name
	Symbols []*Symbol
}

func NewSection(id string, object string, syms ...*Symbol) *Section {
	s := &Section{
		ID:      id,
		Object:  object,
		Symbols: syms,
	}
	for _, sym := range syms {
		sym.Section = s
	}
	return s
}

func (s *Section) DefinesSymbol(name string) bool {
	for _, sym := range s.Symbols {
		if sym.Name == name {
			return true
		}
	}
	return false
}
