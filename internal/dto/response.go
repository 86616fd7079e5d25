package dto

// ── store write results ──

// UpdateResult mirrors the counts of an update-by-filter.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the count of a delete-by-filter.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// CountResponse a single count.
type CountResponse struct {
	Count int64 `json:"count"`
}

// ExistsResponse a single existence flag.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
