package domain

// Tag is a read-only label that posts reference by ID. There is no tag
// creation API in this scope; tags are seeded by migration.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
