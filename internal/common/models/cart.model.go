package models

// Variation is the chosen size/variant of a cart item.
type Variation struct {
	ID    string  `json:"id"`
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price,omitempty"`
}

type AddOn struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
}

type PromotionOption struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name"`
}

type Promotion struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Options []PromotionOption `json:"options" binding:"dive"`
}

// CartItem is a line handed over by the upstream cart. The checkout flow
// only reads it.
type CartItem struct {
	ID                   string         `json:"id" binding:"required"`
	Name                 string         `json:"name" binding:"required"`
	TotalPrice           float64        `json:"totalPrice" binding:"gte=0"`
	Quantity             int            `json:"quantity" binding:"gte=1"`
	SelectedVariation    *Variation     `json:"selectedVariation,omitempty"`
	SelectedAddOns       []AddOn        `json:"selectedAddOns,omitempty" binding:"omitempty,dive"`
	Promotion            *Promotion     `json:"promotion,omitempty"`
	SelectedPromoOptions map[string]int `json:"selectedPromoOptions"`
}
