package order

// CheckoutRequest payload for submitting the items of an open cart.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	Customer
}

// SubmitOrderItem one catalog item and how many of it.
// swagger:model SubmitOrderItem
type SubmitOrderItem struct {
	MenuItemID string `json:"menu_item_id" binding:"required"             example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity   int    `json:"quantity"     binding:"required,min=1,max=99" example:"2"`
}

// SubmitOrderRequest payload for placing an order without a cart session.
// Prices are always taken from the catalog.
// swagger:model SubmitOrderRequest
type SubmitOrderRequest struct {
	Customer
	Items []SubmitOrderItem `json:"items" binding:"dive"`
}

// CompleteResponse result of marking an order completed.
// swagger:model CompleteResponse
type CompleteResponse struct {
	Order            *Order `json:"order"`
	AlreadyCompleted bool   `json:"alreadyCompleted"`
}

// ListResponse wraps order listings.
// swagger:model OrderListResponse
type ListResponse struct {
	Items []Order `json:"items"`
}
