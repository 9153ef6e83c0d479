package types

// Dominance order, strongest first. Nil and Any never dominate.
var dominance = []Type{Function, List, Object, String, Number, Boolean}

// Dominant scans the dominance order from strongest to weakest and returns
// the first type held by any of sets, or dflt if none match.
func Dominant(dflt Type, sets ...Set) Type {
	var all Set
	for _, s := range sets {
		all = all.Union(s)
	}
	for _, t := range dominance {
		if all.Has(t) {
			return t
		}
	}
	return dflt
}

// Weakest scans the dominance order from weakest to strongest and returns
// the first type in set, or Nil if none match.
//
// This is used to pick a single default value for a variable that has been
// observed holding several kinds.
func Weakest(set Set) Type {
	for i := len(dominance) - 1; i >= 0; i-- {
		if set.Has(dominance[i]) {
			return dominance[i]
		}
	}
	return Nil
}
