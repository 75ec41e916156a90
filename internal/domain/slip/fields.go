package slip

// LogicalField identifies one of the order-data fields a CSV column can supply.
// The set is fixed: every import maps each logical field to at most one
// physical column header.
type LogicalField string

const (
	FieldOrderID       LogicalField = "orderId"
	FieldProductName   LogicalField = "productName"
	FieldSKU           LogicalField = "sku"
	FieldSellerSKU     LogicalField = "sellerSku"
	FieldQuantity      LogicalField = "quantity"
	FieldBuyerUsername LogicalField = "buyerUsername"
	FieldRecipientName LogicalField = "recipientName"
	FieldPhoneNumber   LogicalField = "phoneNumber"
	FieldAddressLine1  LogicalField = "addressLine1"
	FieldAddressLine2  LogicalField = "addressLine2"
	FieldCity          LogicalField = "city"
	FieldState         LogicalField = "state"
	FieldPostalCode    LogicalField = "postalCode"
	FieldWeight        LogicalField = "weight"
)

// AllFields returns every logical field in a stable order.
func AllFields() []LogicalField {
	return []LogicalField{
		FieldOrderID, FieldProductName, FieldSKU, FieldSellerSKU,
		FieldQuantity, FieldBuyerUsername, FieldRecipientName,
		FieldPhoneNumber, FieldAddressLine1, FieldAddressLine2,
		FieldCity, FieldState, FieldPostalCode, FieldWeight,
	}
}

// IsValid checks whether f is one of the known logical fields.
func (f LogicalField) IsValid() bool {
	for _, known := range AllFields() {
		if f == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the field
func (f LogicalField) String() string {
	return string(f)
}

// Unmapped is the sentinel value used when no physical column supplies a
// logical field.
const Unmapped = ""

// FieldMapping associates logical fields with the physical CSV headers that
// supply their values. A missing key and an Unmapped value are equivalent.
// The mapping is built once per import and treated as read-only afterwards.
type FieldMapping map[LogicalField]string

// NewFieldMapping returns a mapping with every logical field unmapped.
func NewFieldMapping() FieldMapping {
	m := make(FieldMapping, len(AllFields()))
	for _, f := range AllFields() {
		m[f] = Unmapped
	}
	return m
}

// Header returns the physical header mapped to f, or Unmapped.
func (m FieldMapping) Header(f LogicalField) string {
	return m[f]
}

// IsMapped reports whether f has a concrete column assigned.
func (m FieldMapping) IsMapped(f LogicalField) bool {
	return m[f] != Unmapped
}

// Clone returns an independent copy of the mapping.
func (m FieldMapping) Clone() FieldMapping {
	out := make(FieldMapping, len(m))
	for f, h := range m {
		out[f] = h
	}
	return out
}

// MappedCount returns the number of fields with a concrete column assigned.
func (m FieldMapping) MappedCount() int {
	n := 0
	for _, f := range AllFields() {
		if m.IsMapped(f) {
			n++
		}
	}
	return n
}
