package models

// Product represents a product entity in the inventory.
// Name is the identity of the record within the collection.
type Product struct {
	Name      string  `json:"name" bson:"name" csv:"name"`
	Category  string  `json:"category" bson:"category" csv:"category"`
	Quantity  int     `json:"quantity" bson:"quantity" csv:"quantity"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price" csv:"unit_price"`
}
