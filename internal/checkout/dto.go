package checkout

// ShippingInfo is the contact and address block collected at checkout.
type ShippingInfo struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Address string  `json:"address" validate:"required,min=1,max=400"`
	City    string  `json:"city" validate:"required,min=1,max=120"`
	State   string  `json:"state" validate:"required,min=1,max=120"`
	Zip     string  `json:"zip" validate:"required,min=1,max=20"`
	Country string  `json:"country,omitempty" validate:"omitempty,max=120"`
}

// CheckoutInput is the full checkout payload.
type CheckoutInput struct {
	Shipping       ShippingInfo `json:"shipping" validate:"required"`
	DeliveryMethod string       `json:"delivery_method" validate:"required"`
	Notes          *string      `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
