package models

// CartItem associates a customer with a product in their cart. There is no
// quantity and no checkout; the pair itself is the whole record.
type CartItem struct {
	CustomerID uint `json:"customer_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID  uint `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
}

// TableName keeps the original carts table name.
func (CartItem) TableName() string { return "carts" }

// Like marks that a customer has liked a product.
type Like struct {
	CustomerID uint `json:"customer_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID  uint `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
}
