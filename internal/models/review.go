package models

// ReviewDateLayout is the calendar-day granularity used for review dates.
const ReviewDateLayout = "2006-01-02"

// Review is a customer's rating of a product. The composite primary key
// guarantees at most one review per (customer, product) pair; a second
// submission overwrites the first.
type Review struct {
	CustomerID uint   `json:"customer_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID  uint   `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	Date       string `json:"date" gorm:"type:varchar(10)"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}
