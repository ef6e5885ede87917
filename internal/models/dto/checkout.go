package dto

type CheckoutRequest struct {
	Title string  `json:"title" validate:"required"`
	Price float64 `json:"price" validate:"gt=0"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
