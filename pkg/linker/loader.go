package linker

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Model is the on-disk description of a link scenario. The schema is
// round-trippable: LoadModel(m.Marshal()) reproduces m.
//
//	objects:
//	  - name: main.o
//	    sections:
//	      - id: main.text
//	        symbols:
//	          - name: main
//	            refs: [staticLib1a]
//	archives:
//	  - name: StaticLib
//	    deps: [StaticLibChild]
//	    sections: ...
//	link:
//	  units:
//	    - object: main.o
//	    - archive: StaticLib
//	  roots: [main]
type Model struct {
	Objects  []ObjectSpec  `yaml:"objects,omitempty"`
	Archives []ArchiveSpec `yaml:"archives,omitempty"`
	Link     LinkSpec      `yaml:"link"`
}

type ObjectSpec struct {
	Name     string        `yaml:"name"`
	Sections []SectionSpec `yaml:"sections"`
}

type ArchiveSpec struct {
	Name     string        `yaml:"name"`
	Deps     []string      `yaml:"deps,omitempty"`
	Sections []SectionSpec `yaml:"sections"`
}

type SectionSpec struct {
	ID      string       `yaml:"id"`
	Symbols []SymbolSpec `yaml:"symbols"`
}

type SymbolSpec struct {
	Name string   `yaml:"name"`
	Refs []string `yaml:"refs,omitempty"`
}

type LinkSpec struct {
	Units                []UnitSpec `yaml:"units"`
	Roots                []string   `yaml:"roots,omitempty"`
	PropagateArchiveDeps bool       `yaml:"propagate-archive-deps,omitempty"`
	AllowUnresolved      bool       `yaml:"allow-unresolved,omitempty"`
	MaxSteps             int        `yaml:"max-steps,omitempty"`
}

// UnitSpec names exactly one of the three link unit kinds.
type UnitSpec struct {
	Object       string `yaml:"object,omitempty"`
	Archive      string `yaml:"archive,omitempty"`
	WholeArchive string `yaml:"whole-archive,omitempty"`
}

func LoadModel(data []byte) (*Model, error) {
	m := &Model{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse link model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

func (m *Model) validate() error {
	objects := make(map[string]bool)
	for _, o := range m.Objects {
		if objects[o.Name] {
			return fmt.Errorf("object %s declared twice", o.Name)
		}
		objects[o.Name] = true
		if err := validateSections(o.Name, o.Sections); err != nil {
			return err
		}
	}

	archives := make(map[string]bool)
	for _, a := range m.Archives {
		if archives[a.Name] {
			return fmt.Errorf("archive %s declared twice", a.Name)
		}
		archives[a.Name] = true
		if err := validateSections(a.Name, a.Sections); err != nil {
			return err
		}
	}
	for _, a := range m.Archives {
		for _, dep := range a.Deps {
			if !archives[dep] {
				return fmt.Errorf("archive %s depends on unknown archive %s", a.Name, dep)
			}
		}
	}

	for i, u := range m.Link.Units {
		named := 0
		for _, name := range []string{u.Object, u.Archive, u.WholeArchive} {
			if name != "" {
				named++
			}
		}
		if named != 1 {
			return fmt.Errorf("link unit %d must name exactly one of object, archive, whole-archive", i)
		}
		if u.Object != "" && !objects[u.Object] {
			return fmt.Errorf("link unit %d references unknown object %s", i, u.Object)
		}
		if u.Archive != "" && !archives[u.Archive] {
			return fmt.Errorf("link unit %d references unknown archive %s", i, u.Archive)
		}
		if u.WholeArchive != "" && !archives[u.WholeArchive] {
			return fmt.Errorf("link unit %d references unknown archive %s", i, u.WholeArchive)
		}
	}
	return nil
}

func validateSections(owner string, secs []SectionSpec) error {
	for _, sec := range secs {
		if sec.ID == "" {
			return fmt.Errorf("%s has a section without an id", owner)
		}
		if len(sec.Symbols) == 0 {
			return fmt.Errorf("section %s(%s) defines no symbols", owner, sec.ID)
		}
		for _, sym := range sec.Symbols {
			if sym.Name == "" {
				return fmt.Errorf("section %s(%s) has a symbol without a name", owner, sec.ID)
			}
		}
	}
	return nil
}

// BuildCommand materializes the model into an immutable LinkCommand ready
// for Resolve.
func (m *Model) BuildCommand() (*LinkCommand, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	objects := make(map[string]*RawObject)
	for _, o := range m.Objects {
		objects[o.Name] = NewRawObject(o.Name, buildSections(o.Name, o.Sections)...)
	}

	archives := make(map[string]*Archive)
	for _, a := range m.Archives {
		archives[a.Name] = NewArchive(a.Name, buildSections(a.Name, a.Sections)...)
	}
	for _, a := range m.Archives {
		for _, dep := range a.Deps {
			archives[a.Name].AddDep(archives[dep])
		}
	}

	cmd := &LinkCommand{
		Roots:                append([]string(nil), m.Link.Roots...),
		PropagateArchiveDeps: m.Link.PropagateArchiveDeps,
		AllowUnresolved:      m.Link.AllowUnresolved,
		MaxSteps:             m.Link.MaxSteps,
	}
	for _, u := range m.Link.Units {
		switch {
		case u.Object != "":
			cmd.Units = append(cmd.Units, objects[u.Object])
		case u.Archive != "":
			cmd.Units = append(cmd.Units, &ArchiveRef{Archive: archives[u.Archive]})
		case u.WholeArchive != "":
			cmd.Units = append(cmd.Units, &WholeArchiveRef{Archive: archives[u.WholeArchive]})
		}
	}
	return cmd, nil
}

func buildSections(owner string, specs []SectionSpec) []*Section {
	secs := make([]*Section, 0, len(specs))
	for _, spec := range specs {
		syms := make([]*Symbol, 0, len(spec.Symbols))
		for _, s := range spec.Symbols {
			syms = append(syms, NewSymbol(s.Name, s.Refs...))
		}
		secs = append(secs, NewSection(spec.ID, owner, syms...))
	}
	return secs
}
