package model

// Product is one row of the sales catalog the data tools query.
// Prices are INR, mirroring the Amazon India dataset the tools emulate.
type Product struct {
	ID                 string  `json:"product_id"`
	Name               string  `json:"product_name"`
	Category           string  `json:"category"`
	DiscountedPrice    float64 `json:"discounted_price"`
	ActualPrice        float64 `json:"actual_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Rating             float64 `json:"rating"`
	RatingCount        int     `json:"rating_count"`
	About              string  `json:"about_product"`
}

// Review is a customer review attached to a product.
type Review struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"review_title"`
	Content   string  `json:"review_content"`
	Rating    float64 `json:"rating"`
}
