package orderrequest

type CreateOrderRequest struct {
	Items   []string `json:"items" binding:"required,min=1,max=50,dive,max=200"`
	Details string   `json:"details" binding:"max=2000"`
	Reason  string   `json:"reason" binding:"max=2000"`
}

type ListOrdersQuery struct {
	Ordered *bool `form:"ordered"`
}

type OrderResponse struct {
	ID            string   `json:"id"`
	RequesterID   string   `json:"requester_id"`
	RequesterName string   `json:"requester_name,omitempty"`
	Items         []string `json:"items"`
	Details       string   `json:"details,omitempty"`
	Reason        string   `json:"reason,omitempty"`
	Ordered       bool     `json:"ordered"`
	OrderedBy     string   `json:"ordered_by,omitempty"`
	OrderedAt     string   `json:"ordered_at,omitempty"`
	CreatedAt     string   `json:"created_at"`
}
