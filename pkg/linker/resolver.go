package linker

import (
	"go.uber.org/zap"
)

// need is one pending entry of the closure worklist: a symbol name plus the
// symbol whose reference put it there (empty for root needs).
type need struct {
	name      string
	requester string
}

// resolver holds the working sets of a single resolution. Everything here is
// per call; the model itself is never mutated, so independent commands may be
// resolved concurrently.
type resolver struct {
	cmd *LinkCommand
	log *zap.Logger

	// search list: ArchiveRef archives in command order, extended with
	// declared dependencies when propagation is on.
	archives []*Archive

	included []*Section
	table    *SymbolTable
	pending  []need

	reasons        map[string]InclusionReason
	unresolved     []UnresolvedRef
	unresolvedSeen map[string]bool
	steps          int
}

// Resolve computes which sections and symbols a link of cmd would include.
func Resolve(cmd *LinkCommand) (*Result, error) {
	return ResolveWithLogger(cmd, zap.NewNop())
}

func ResolveWithLogger(cmd *LinkCommand, log *zap.Logger) (*Result, error) {
	r := &resolver{
		cmd:            cmd,
		log:            log,
		table:          NewSymbolTable(),
		reasons:        make(map[string]InclusionReason),
		unresolvedSeen: make(map[string]bool),
	}

	if err := r.seed(); err != nil {
		return nil, err
	}
	if err := r.closure(); err != nil {
		return nil, err
	}

	return &Result{
		IncludedSections: r.included,
		Reasons:          r.reasons,
		Unresolved:       r.unresolved,
		Table:            r.table,
	}, nil
}

// seed includes every section of every unconditional unit (RawObject and
// WholeArchiveRef), builds the archive search list, and fills the pending
// queue with the roots followed by the unsatisfied references of the seeded
// sections. Queue order is command order, then section order, then symbol
// order, then reference order, so output is reproducible.
func (r *resolver) seed() error {
	r.buildSearchList()

	for _, unit := range r.cmd.Units {
		r.log.Debug("link unit", zap.String("unit", unit.UnitName()))
		switch u := unit.(type) {
		case *RawObject:
			for _, sec := range u.AllSections() {
				if err := r.includeUnconditional(sec); err != nil {
					return err
				}
			}
		case *WholeArchiveRef:
			for _, sec := range u.AllSections() {
				if err := r.includeUnconditional(sec); err != nil {
					return err
				}
			}
		case *ArchiveRef:
			// searched lazily during closure
		}
	}

	for _, root := range r.cmd.Roots {
		r.pending = append(r.pending, need{name: root})
	}
	for _, sec := range r.included {
		r.enqueueRefs(sec)
	}
	return nil
}

func (r *resolver) includeUnconditional(sec *Section) error {
	for _, sym := range sec.Symbols {
		if prev, _ := r.table.Resolve(sym.Name); prev != nil {
			// Both definitions live in unconditionally included sections:
			// the hard object-level duplicate, unlike archive collisions.
			return &DuplicateSymbolError{Name: sym.Name, First: prev, Second: sec}
		}
		r.table.Define(sym.Name, sec)
		r.reasons[sym.Name] = ReasonUnconditional
	}
	r.included = append(r.included, sec)
	r.log.Debug("seeded section",
		zap.String("object", sec.Object),
		zap.String("section", sec.ID))
	return nil
}

// closure drains the pending queue. Each popped symbol that no included
// section defines yet is searched across the archive list in order; the
// first defining section wins and is included whole, which may enqueue
// further needs. Termination: every pop either discards or defines at least
// one new symbol, and definitions are bounded by the symbol universe.
func (r *resolver) closure() error {
	for len(r.pending) > 0 {
		n := r.pending[0]
		r.pending = r.pending[1:]

		r.steps++
		if r.cmd.MaxSteps > 0 && r.steps > r.cmd.MaxSteps {
			return &BudgetExceededError{Limit: r.cmd.MaxSteps}
		}

		if r.table.Defined(n.name) {
			// Already satisfied. A sibling that turns out to be genuinely
			// referenced is upgraded, so reasons reflect real need.
			if r.reasons[n.name] == ReasonSibling {
				r.reasons[n.name] = reasonFor(n)
			}
			continue
		}

		sec := r.search(n.name)
		if sec == nil {
			if r.cmd.AllowUnresolved {
				if !r.unresolvedSeen[n.name] {
					r.unresolvedSeen[n.name] = true
					r.unresolved = append(r.unresolved, UnresolvedRef{Name: n.name, Requester: n.requester})
				}
				continue
			}
			return &UndefinedSymbolError{Name: n.name, Requester: n.requester}
		}

		r.includeFromArchive(sec, n)
		r.enqueueRefs(sec)
	}
	return nil
}

func (r *resolver) includeFromArchive(sec *Section, n need) {
	for _, sym := range sec.Symbols {
		if !r.table.Define(sym.Name, sec) {
			// earlier definition wins; the section still comes in whole
			continue
		}
		if sym.Name == n.name {
			r.reasons[sym.Name] = reasonFor(n)
		} else {
			r.reasons[sym.Name] = ReasonSibling
		}
	}
	r.included = append(r.included, sec)
	r.log.Debug("pulled section from archive",
		zap.String("object", sec.Object),
		zap.String("section", sec.ID),
		zap.String("needed", n.name))
}

func (r *resolver) enqueueRefs(sec *Section) {
	for _, sym := range sec.Symbols {
		for _, ref := range sym.Refs {
			if !r.table.Defined(ref) {
				r.pending = append(r.pending, need{name: ref, requester: sym.Name})
			}
		}
	}
}

// search scans the archive list in command order; the first section found
// wins, mirroring single-pass left-to-right archive search.
func (r *resolver) search(name string) *Section {
	for _, a := range r.archives {
		if sec := a.FindDefining(name); sec != nil {
			return sec
		}
	}
	return nil
}

// buildSearchList collects ArchiveRef archives in command order. With
// dependency propagation on, declared deps are appended breadth-first
// strictly behind every command-listed archive, so a command-listed
// definition always beats an auto-added one. Whole-archive units contribute
// their deps too (their own sections are already forced in).
func (r *resolver) buildSearchList() {
	depQueue := make([]*Archive, 0)
	seen := make(map[*Archive]bool)

	for _, unit := range r.cmd.Units {
		switch u := unit.(type) {
		case *ArchiveRef:
			if seen[u.Archive] {
				continue
			}
			seen[u.Archive] = true
			r.archives = append(r.archives, u.Archive)
			if r.cmd.PropagateArchiveDeps {
				depQueue = append(depQueue, u.Archive.Deps...)
			}
		case *WholeArchiveRef:
			if r.cmd.PropagateArchiveDeps {
				depQueue = append(depQueue, u.Archive.Deps...)
			}
		}
	}

	for len(depQueue) > 0 {
		a := depQueue[0]
		depQueue = depQueue[1:]
		if seen[a] {
			continue
		}
		seen[a] = true
		r.archives = append(r.archives, a)
		depQueue = append(depQueue, a.Deps...)
	}
}

func reasonFor(n need) InclusionReason {
	if n.requester == "" {
		return ReasonRoot
	}
	return ReasonTransitive
}
