package models

// Customer is the profile attached to a non-admin Account. The unique index
// on AccountID enforces the one-to-one relationship at the store level
// rather than by call-order discipline.
type Customer struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	AccountID  uint    `json:"account_id" gorm:"uniqueIndex"`
	Account    Account `json:"account" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	FirstName  string  `json:"fname" gorm:"column:fname;type:varchar(100)"`
	LastName   string  `json:"lname" gorm:"column:lname;type:varchar(100)"`
	Email      string  `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Address    string  `json:"address" gorm:"type:varchar(255)"`
	City       string  `json:"city" gorm:"type:varchar(100)"`
	PostalCode string  `json:"postal_code" gorm:"column:postal_code;type:varchar(5)"`
}
