package domain

// Listing is a candidate vehicle record. Listings are read-only for the
// duration of a search; the store owns their lifecycle.
type Listing struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Make         string    `json:"make"`
	Model        string    `json:"model,omitempty"`
	Year         int       `json:"year"`
	Price        float64   `json:"price"`
	Mileage      *float64  `json:"mileage,omitempty"` // nil = unknown
	FuelType     string    `json:"fuel_type,omitempty"`
	Transmission string    `json:"transmission,omitempty"`
	BodyType     string    `json:"body_type,omitempty"`
	Location     string    `json:"location,omitempty"`
	Images       []string  `json:"images,omitempty"`
	Embedding    []float32 `json:"-"`
}
