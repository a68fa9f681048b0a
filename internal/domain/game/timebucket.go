package game

// TimeBucket is a named play-duration interval used for filtering.
type TimeBucket struct {
	ID    string
	Label string
	Min   int
	Max   int
}

// TimeBuckets is the fixed set of duration buckets, non-overlapping by
// convention. IDs are stable and appear in API query parameters.
var TimeBuckets = []TimeBucket{
	{ID: "u30", Label: "< 30m", Min: 0, Max: 29},
	{ID: "30-60", Label: "30–60m", Min: 30, Max: 60},
	{ID: "60-90", Label: "60–90m", Min: 61, Max: 90},
	{ID: "90+", Label: "90m+", Min: 91, Max: 999},
}

// BucketByID looks up a time bucket by its stable identifier.
func BucketByID(id string) (TimeBucket, bool) {
	for _, b := range TimeBuckets {
		if b.ID == id {
			return b, true
		}
	}
	return TimeBucket{}, false
}

// Overlaps reports whether the given time range intersects the bucket.
func (b TimeBucket) Overlaps(r Range) bool {
	return r.Max >= b.Min && r.Min <= b.Max
}

// Contains reports whether the given time range lies fully inside the bucket.
func (b TimeBucket) Contains(r Range) bool {
	return r.Min >= b.Min && r.Max <= b.Max
}
