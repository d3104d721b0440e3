package lint

import (
	"cmp"
	"slices"
)

// SortDiagnostics orders diagnostics by ascending offset. The sort is
// stable, so diagnostics at one offset keep rule execution order.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
}
