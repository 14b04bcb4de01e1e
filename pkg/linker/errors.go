package linker

import "fmt"

// DuplicateSymbolError reports two unconditionally included sections both
// defining the same symbol name. Archive search never raises this; there the
// first definition silently wins.
type DuplicateSymbolError struct {
	Name   string
	First  *Section
	Second *Section
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %s: defined in %s(%s) and %s(%s)",
		e.Name, e.First.Object, e.First.ID, e.Second.Object, e.Second.ID)
}

// UndefinedSymbolError reports a needed symbol no reachable section defines.
// Requester is the symbol whose reference needed it, empty when the symbol
// was required directly by the command's root set.
type UndefinedSymbolError struct {
	Name      string
	Requester string
}

func (e *UndefinedSymbolError) Error() string {
	if e.Requester == "" {
		return fmt.Sprintf("undefined symbol %s: required by the link root set", e.Name)
	}
	return fmt.Sprintf("undefined symbol %s: referenced by %s", e.Name, e.Requester)
}

// BudgetExceededError reports that closure resolution passed the configured
// MaxSteps cap, which indicates malformed input: correct models terminate
// well within the total symbol count. Limit is the cap that was exceeded.
type BudgetExceededError struct {
	Limit int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("resolution step budget of %d exceeded", e.Limit)
}
