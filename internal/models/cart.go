package models

// CartLine is one product row in a customer's cart for a single drop.
type CartLine struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	ImageRef  string  `json:"imageRef,omitempty"`
}

// Cart is the full per-event cart as stored in redis.
type Cart struct {
	EventID    string     `json:"eventId"`
	CustomerID string     `json:"customerId"`
	Lines      []CartLine `json:"lines"`
}

func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// ContactProfile is the checkout contact card, saved once per customer
// and reused across drops.
type ContactProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
