package domain

// Category is a node in the catalog taxonomy tree.
type Category struct {
	ID       int64
	Name     string
	ParentID int64 // 0 for root categories
	Depth    int
}

// CategoryCandidate is a keyword-search hit with its human-readable path
// from the taxonomy root, e.g. "Electronics > Cameras".
type CategoryCandidate struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Brand is a catalog brand.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Condition is an item condition grade (1 = new .. 5 = scratched/dirty).
type Condition struct {
	ID        int64
	Name      string
	SortOrder int
}
