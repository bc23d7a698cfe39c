package layers

import "strconv"

// Rank is the tensor dimensionality expected at a layer boundary, excluding
// the batch dimension.
type Rank int

// RankAny accepts or preserves whatever rank is currently in flow.
const RankAny Rank = -1

// IsAny reports whether r is the wildcard rank.
func (r Rank) IsAny() bool {
	return r == RankAny
}

func (r Rank) String() string {
	if r.IsAny() {
		return "any"
	}
	return strconv.Itoa(int(r))
}
