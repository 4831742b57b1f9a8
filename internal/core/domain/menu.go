package domain

// MenuItem is a dish on the restaurant menu. The backend owns these; the
// gateway holds read replicas plus in-flight edits.
type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"isAvailable"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}
