package enums

// DeliveryMethod selects the shipping tier at checkout. Unrecognized methods
// fall through to free shipping, matching the storefront's permissive intake.
type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
)
