package linker

// Archive is a static library: an ordered sequence of sections searched
// lazily for needed symbols. Deps lists the archives this archive's members
// depend on; the resolver only consults it when dependency propagation is
// enabled on the link command.
type Archive struct {
	Name     string
	Sections []*Section
	Deps     []*Archive
}

func NewArchive(name string, sections ...*Section) *Archive {
	return &Archive{
		Name:     name,
		Sections: sections,
	}
}

func (a *Archive) AddDep(dep *Archive) {
	a.Deps = append(a.Deps, dep)
}

// FindDefining returns the first section in archive order defining name,
// or nil. It is stateless; single-pass search bookkeeping lives in the
// resolver so archives can be shared across concurrent resolutions.
func (a *Archive) FindDefining(name string) *Section {
	for _, sec := range a.Sections {
		if sec.DefinesSymbol(name) {
			return sec
		}
	}
	return nil
}
