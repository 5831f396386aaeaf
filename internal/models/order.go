package models

import "time"

// Status tracks kitchen progress on an order. The sequence is linear:
// pending -> preparing -> ready -> delivered.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
)

var Statuses = []string{
	string(StatusPending), string(StatusPreparing),
	string(StatusReady), string(StatusDelivered),
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered:
		return true
	}
	return false
}

// NextStatus returns the successor in the kitchen sequence. Delivered is
// terminal and has no successor.
func NextStatus(s Status) (Status, bool) {
	switch s {
	case StatusPending:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusDelivered, true
	}
	return "", false
}

// Order references up to one item of each catalog kind. At least one of the
// three references must be set; deleting a referenced catalog item nulls the
// reference but keeps the order.
type Order struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ClientName   string    `gorm:"size:100;not null" json:"clientName"`
	PlateID      *uint     `json:"plateId"`
	Plate        *Plate    `gorm:"constraint:OnDelete:SET NULL" json:"plate"`
	BeverageID   *uint     `json:"beverageId"`
	Beverage     *Beverage `gorm:"constraint:OnDelete:SET NULL" json:"beverage"`
	DessertID    *uint     `json:"dessertId"`
	Dessert      *Dessert  `gorm:"constraint:OnDelete:SET NULL" json:"dessert"`
	IsPaid       bool      `gorm:"not null;default:false" json:"isPaid"`
	Status       Status    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Observations *string   `gorm:"type:text" json:"observations"`
	Total        float64   `gorm:"-" json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasItem reports whether at least one catalog reference is set.
func (o *Order) HasItem() bool {
	return o.PlateID != nil || o.BeverageID != nil || o.DessertID != nil
}

// ComputeTotal sums the prices of the loaded relations into Total. The value
// is derived on read and never stored.
func (o *Order) ComputeTotal() float64 {
	total := 0.0
	if o.Plate != nil {
		total += o.Plate.Price
	}
	if o.Beverage != nil {
		total += o.Beverage.Price
	}
	if o.Dessert != nil {
		total += o.Dessert.Price
	}
	o.Total = total
	return total
}
