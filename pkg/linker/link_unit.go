package linker

// LinkUnit is one entry of a link command. Exactly three kinds exist and the
// resolver dispatches over them exhaustively:
//
//	RawObject       an object file, every section included unconditionally
//	ArchiveRef      an archive searched only for needed symbols
//	WholeArchiveRef an archive forced in whole (--whole-archive semantics)
type LinkUnit interface {
	UnitName() string
}

type RawObject struct {
	Name     string
	Sections []*Section
}

func NewRawObject(name string, sections ...*Section) *RawObject {
	return &RawObject{
		Name:     name,
		Sections: sections,
	}
}

func (o *RawObject) UnitName() string {
	return o.Name
}

func (o *RawObject) AllSections() []*Section {
	return o.Sections
}

type ArchiveRef struct {
	Archive *Archive
}

func (r *ArchiveRef) UnitName() string {
	return r.Archive.Name
}

type WholeArchiveRef struct {
	Archive *Archive
}

func (r *WholeArchiveRef) UnitName() string {
	return r.Archive.Name
}

func (r *WholeArchiveRef) AllSections() []*Section {
	return r.Archive.Sections
}
