package rules

import "github.com/yaklabco/mdstyle/pkg/lint"

// Catalog returns the built-in rule definitions in execution order.
func Catalog() []lint.Definition {
	return []lint.Definition{
		NewHeadingIncrementRule(),         // MD001
		NewFirstHeadingRule(),             // MD002
		NewHeadingStyleRule(),             // MD003
		NewUnorderedListStyleRule(),       // MD004
		NewListIndentRule(),               // MD005
		NewULStartLeftRule(),              // MD006
		NewULIndentRule(),                 // MD007
		NewTrailingSpacesRule(),           // MD009
		NewHardTabsRule(),                 // MD010
		NewReversedLinkRule(),             // MD011
		NewMultipleBlankLinesRule(),       // MD012
		NewLineLengthRule(),               // MD013
		NewNoMissingSpaceATXRule(),        // MD018
		NewNoMultipleSpaceATXRule(),       // MD019
		NewNoMissingSpaceClosedATXRule(),  // MD020
		NewNoMultipleSpaceClosedATXRule(), // MD021
		NewBlanksAroundHeadingsRule(),     // MD022
		NewHeadingStartLeftRule(),         // MD023
		NewNoDuplicateHeadingRule(),       // MD024
		NewSingleH1Rule(),                 // MD025
		NewNoTrailingPunctuationRule(),    // MD026
		NewMultipleSpaceBlockquoteRule(),  // MD027
		NewNoBlanksBlockquoteRule(),       // MD028
		NewOrderedListPrefixRule(),        // MD029
		NewListMarkerSpaceRule(),          // MD030
	}
}

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	for _, def := range Catalog() {
		registry.MustRegister(def)
	}
}

func init() {
	RegisterAll(lint.DefaultRegistry)
}
