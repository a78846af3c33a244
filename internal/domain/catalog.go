package domain

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         int64    `json:"price"`
	Unit          UnitKind `json:"unit"`
	PackageWeight int      `json:"packageWeight,omitempty"`
	Category      string   `json:"category"`
	Image         string   `json:"image,omitempty"`
}

// Catalog mirrors the products.json layout served to the web client.
type Catalog struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}
