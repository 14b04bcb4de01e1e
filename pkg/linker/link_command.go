package linker

// LinkCommand is the root request: an ordered list of link units plus the
// initially required symbol names (e.g. "main", or a shared library's public
// API). It is read-only input; all resolution state is per Resolve call.
type LinkCommand struct {
	Units []LinkUnit
	Roots []string

	// PropagateArchiveDeps mirrors ordinary static-library linking: each
	// archive's declared dependency archives are added to the search list
	// before resolution starts. When false, only archives named in Units are
	// searched, reproducing the object-library transitive-dependency defect.
	PropagateArchiveDeps bool

	// AllowUnresolved downgrades undefined symbols from a fatal error to
	// entries in Result.Unresolved, for modeling a library rather than an
	// executable.
	AllowUnresolved bool

	// MaxSteps caps closure iterations (queue pops). Zero means unlimited.
	MaxSteps int
}

// FunctionSections returns a deep copy of the command in which every
// multi-symbol section is split into one section per symbol, modeling
// -ffunction-sections. Split section ids are suffixed with the symbol name.
// The receiver is left untouched.
func (c *LinkCommand) FunctionSections() *LinkCommand {
	out := &LinkCommand{
		Units:                make([]LinkUnit, 0, len(c.Units)),
		Roots:                append([]string(nil), c.Roots...),
		PropagateArchiveDeps: c.PropagateArchiveDeps,
		AllowUnresolved:      c.AllowUnresolved,
		MaxSteps:             c.MaxSteps,
	}

	// Archives can be shared between units and dep lists; copy each once.
	copied := make(map[*Archive]*Archive)
	var copyArchive func(a *Archive) *Archive
	copyArchive = func(a *Archive) *Archive {
		if dup, ok := copied[a]; ok {
			return dup
		}
		dup := NewArchive(a.Name, splitSections(a.Sections)...)
		copied[a] = dup
		for _, dep := range a.Deps {
			dup.AddDep(copyArchive(dep))
		}
		return dup
	}

	for _, unit := range c.Units {
		switch u := unit.(type) {
		case *RawObject:
			out.Units = append(out.Units, NewRawObject(u.Name, splitSections(u.Sections)...))
		case *ArchiveRef:
			out.Units = append(out.Units, &ArchiveRef{Archive: copyArchive(u.Archive)})
		case *WholeArchiveRef:
			out.Units = append(out.Units, &WholeArchiveRef{Archive: copyArchive(u.Archive)})
		}
	}
	return out
}

func splitSections(secs []*Section) []*Section {
	out := make([]*Section, 0, len(secs))
	for _, sec := range secs {
		if len(sec.Symbols) == 1 {
			sym := sec.Symbols[0]
			out = append(out, NewSection(sec.ID, sec.Object, NewSymbol(sym.Name, sym.Refs...)))
			continue
		}
		for _, sym := range sec.Symbols {
			out = append(out, NewSection(sec.ID+"."+sym.Name, sec.Object,
				NewSymbol(sym.Name, sym.Refs...)))
		}
	}
	return out
}
