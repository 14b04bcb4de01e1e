package linker

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// InclusionReason records why a symbol ended up in the output.
type InclusionReason uint8

const (
	// ReasonUnconditional: defined in a RawObject or WholeArchiveRef section.
	ReasonUnconditional InclusionReason = iota
	// ReasonRoot: named in the command's root required set.
	ReasonRoot
	// ReasonTransitive: referenced by an already included symbol.
	ReasonTransitive
	// ReasonSibling: defined in the same section as a needed symbol.
	ReasonSibling
)

func (r InclusionReason) String() string {
	switch r {
	case ReasonUnconditional:
		return "unconditional"
	case ReasonRoot:
		return "root"
	case ReasonTransitive:
		return "transitive reference"
	case ReasonSibling:
		return "same-section sibling"
	}
	return "unknown"
}

// UnresolvedRef is an undefined symbol recorded instead of failing, in
// allow-unresolved mode.
type UnresolvedRef struct {
	Name      string `json:"name"`
	Requester string `json:"requester,omitempty"`
}

// Result is the outcome of a successful resolution.
type Result struct {
	// IncludedSections in inclusion order: seed sections in command order,
	// then archive sections in the order closure pulled them in.
	IncludedSections []*Section

	// Reasons maps every included symbol name to why it was included.
	Reasons map[string]InclusionReason

	// Unresolved is non-empty only in allow-unresolved mode.
	Unresolved []UnresolvedRef

	// Table resolves included symbol names to their defining section.
	Table *SymbolTable
}

// IncludedSymbols returns the names defined by the included sections,
// sorted for order-independent comparison.
func (r *Result) IncludedSymbols() []string {
	names := make([]string, 0)
	for _, sec := range r.IncludedSections {
		for _, sym := range sec.Symbols {
			names = append(names, sym.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (r *Result) HasSection(id string) bool {
	for _, sec := range r.IncludedSections {
		if sec.ID == id {
			return true
		}
	}
	return false
}

func (r *Result) HasSymbol(name string) bool {
	_, ok := r.Reasons[name]
	return ok
}

// Report renders the result for humans. With why set, each symbol carries
// its inclusion reason.
func (r *Result) Report(why bool) string {
	var b strings.Builder
	b.WriteString("included sections:\n")
	for _, sec := range r.IncludedSections {
		if !why {
			names := make([]string, 0, len(sec.Symbols))
			for _, sym := range sec.Symbols {
				names = append(names, sym.Name)
			}
			fmt.Fprintf(&b, "  %s(%s): %s\n", sec.Object, sec.ID, strings.Join(names, " "))
			continue
		}
		fmt.Fprintf(&b, "  %s(%s):\n", sec.Object, sec.ID)
		for _, sym := range sec.Symbols {
			fmt.Fprintf(&b, "    %-24s %s\n", sym.Name, r.Reasons[sym.Name])
		}
	}
	if len(r.Unresolved) > 0 {
		b.WriteString("unresolved:\n")
		for _, u := range r.Unresolved {
			if u.Requester == "" {
				fmt.Fprintf(&b, "  %s (root)\n", u.Name)
			} else {
				fmt.Fprintf(&b, "  %s (referenced by %s)\n", u.Name, u.Requester)
			}
		}
	}
	return b.String()
}

type jsonSymbol struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type jsonSection struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Symbols []jsonSymbol `json:"symbols"`
}

type jsonReport struct {
	Sections   []jsonSection   `json:"sections"`
	Unresolved []UnresolvedRef `json:"unresolved,omitempty"`
}

// JSON renders the result as an indented JSON report. Sections and symbols
// keep inclusion order; each symbol carries its inclusion reason.
func (r *Result) JSON() ([]byte, error) {
	report := jsonReport{
		Sections:   make([]jsonSection, 0, len(r.IncludedSections)),
		Unresolved: r.Unresolved,
	}
	for _, sec := range r.IncludedSections {
		js := jsonSection{
			ID:      sec.ID,
			Object:  sec.Object,
			Symbols: make([]jsonSymbol, 0, len(sec.Symbols)),
		}
		for _, sym := range sec.Symbols {
			js.Symbols = append(js.Symbols, jsonSymbol{
				Name:   sym.Name,
				Reason: r.Reasons[sym.Name].String(),
			})
		}
		report.Sections = append(report.Sections, js)
	}
	return json.MarshalIndent(report, "", "  ")
}
