package slip

// Customer holds the recipient details printed on a packing slip.
// Username is the internal grouping key and may be synthetic
// (e.g. "order_X123" when no buyer username could be resolved).
type Customer struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
}

// Item is a single order line on a packing slip. Items are created once per
// CSV row and never mutated afterwards.
type Item struct {
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	SellerSKU string  `json:"sellerSku"`
	Quantity  int     `json:"quantity"`
	Weight    float64 `json:"weight"`
	OrderID   string  `json:"orderId"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

// Document represents one printable packing slip: all line items for one
// resolved customer identity. Items keep their row encounter order and
// TotalWeight is maintained incrementally as items are appended, so at any
// point it equals the sum of weight*quantity over the items added so far.
type Document struct {
	OrderNumber string   `json:"orderNumber"`
	Customer    Customer `json:"customer"`
	Items       []Item   `json:"items"`
	TotalWeight float64  `json:"totalWeight"`
}

// NewDocument creates an empty packing slip for the given order and customer.
// The caller is expected to append at least one item before handing the
// document out.
func NewDocument(orderNumber string, customer Customer) *Document {
	return &Document{
		OrderNumber: orderNumber,
		Customer:    customer,
		Items:       make([]Item, 0, 4),
	}
}

// AddItem appends an item and folds its weight contribution into TotalWeight.
func (d *Document) AddItem(item Item) {
	d.Items = append(d.Items, item)
	d.TotalWeight += item.Weight * float64(item.Quantity)
}

// ItemCount returns the number of line items on the slip.
func (d *Document) ItemCount() int {
	return len(d.Items)
}

// TotalQuantity returns the summed quantity across all items.
func (d *Document) TotalQuantity() int {
	total := 0
	for _, item := range d.Items {
		total += item.Quantity
	}
	return total
}
