package provider

import "github.com/shopspring/decimal"

// Provider is a directory listing. The directory is reference data loaded
// from a seed file at startup and is read-only at runtime.
type Provider struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	ImageURL    string     `json:"imageUrl"`
	Location    string     `json:"location"`
	Rating      float64    `json:"rating"`
	About       string     `json:"about"`
	ServiceType string     `json:"serviceType"` // lower-case category tag
	Services    []Offering `json:"services"`
	Reviews     []Review   `json:"reviews"`
}

type Offering struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type Review struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
