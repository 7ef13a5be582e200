package order

// QueryOrdersModel represents filter parameters for fetching orders from the
// order service.
type QueryOrdersModel struct {
	Role   string `json:"role,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
