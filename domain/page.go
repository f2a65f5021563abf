package domain

// SortOrder selects the direction of a relationship listing.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// PageRequest is either a FirstPage or a NextPage. The two cases carry
// different data, so they are modelled as a sealed union instead of an
// optional cursor field; consumers switch on the concrete type and must
// handle both.
type PageRequest interface {
	isPageRequest()
}

// FirstPage requests the first Take edges of a listing.
type FirstPage struct {
	Take int `json:"take"`
}

// NextPage requests the Take edges strictly after the edge identified by
// Cursor, in the listing's sort order.
type NextPage struct {
	Cursor string `json:"cursor"`
	Take   int    `json:"take"`
}

func (FirstPage) isPageRequest() {}
func (NextPage) isPageRequest()  {}

// EdgeNode carries the identifying fields of a single relationship edge.
// Relation payloads (the full Space or User) are resolved separately by
// key, not inlined into pages.
type EdgeNode struct {
	ID      string `json:"id,omitempty"`
	SpaceID string `json:"space_id"`
	UserID  string `json:"user_id"`
}

// Edge pairs a node with the cursor that resumes the listing after it.
type Edge struct {
	Cursor string   `json:"cursor"`
	Node   EdgeNode `json:"node"`
}

// PageInfo describes a page's position in the full listing. HasNextPage is
// a heuristic: it is true whenever the page came back full, even if the
// next page would turn out empty. A false value is authoritative.
type PageInfo struct {
	EndCursor   string `json:"end_cursor,omitempty"`
	HasNextPage bool   `json:"has_next_page"`
}

// Page is one ordered slice of a relationship listing.
type Page struct {
	Edges    []Edge   `json:"edges"`
	PageInfo PageInfo `json:"page_info"`
}
