package search

// Sort selects the result ordering.
type Sort string

// Sort mode constants.
const (
	// SortRelevance orders by the relevance score when query text is present;
	// with an empty query the input order is kept untouched.
	SortRelevance Sort = "relevance"
	SortRating    Sort = "rating"
	SortRank      Sort = "rank"
	SortYear      Sort = "year"
	SortTime      Sort = "time"
	SortName      Sort = "name"
)

// IsValid checks if the sort is one of the supported modes.
func (s Sort) IsValid() bool {
	switch s {
	case SortRelevance, SortRating, SortRank, SortYear, SortTime, SortName:
		return true
	}
	return false
}
