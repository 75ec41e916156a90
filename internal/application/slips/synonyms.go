package slips

import "github.com/slipdesk/backend/internal/domain/slip"

// fieldSynonyms maps each logical field to the header names commonly seen
// in generic storefront exports. Order matters: earlier entries win when
// several headers could serve the same field.
var fieldSynonyms = map[slip.LogicalField][]string{
	slip.FieldOrderID: {
		"order id", "orderid", "order number", "order #", "order no", "order_id", "id",
	},
	slip.FieldProductName: {
		"product name", "product", "item name", "title", "product title",
		"product_name", "item_name", "name",
	},
	slip.FieldSKU: {
		"sku", "product id", "item id", "product code",
		"product_id", "item_id", "product_code",
	},
	slip.FieldSellerSKU: {
		"seller sku", "seller id", "merchant sku", "your sku",
		"seller_sku", "merchant_sku", "your_sku",
	},
	slip.FieldQuantity: {
		"quantity", "qty", "amount", "count", "item count", "item_count",
	},
	slip.FieldBuyerUsername: {
		"buyer username", "buyer", "customer username", "username",
		"buyer_username", "customer_username", "user",
		"customer id", "customer_id", "buyer id", "buyer_id",
		"email", "customer email", "buyer email", "customer_email", "buyer_email",
	},
	slip.FieldRecipientName: {
		"recipient name", "recipient", "customer name", "name", "buyer name",
		"recipient_name", "customer_name", "buyer_name",
		"ship to name", "shipping name",
	},
	slip.FieldPhoneNumber: {
		"phone number", "phone", "tel", "telephone", "contact number",
		"phone_number", "contact_number",
	},
	slip.FieldAddressLine1: {
		"address line 1", "address1", "address line", "street address",
		"address_line_1", "address_1", "street_address",
		"address", "shipping address",
	},
	slip.FieldAddressLine2: {
		"address line 2", "address2", "apartment", "suite", "unit",
		"address_line_2", "address_2", "apt", "suite_number",
	},
	slip.FieldCity: {
		"city", "town", "municipality",
	},
	slip.FieldState: {
		"state", "province", "region", "county",
	},
	slip.FieldPostalCode: {
		"postal code", "zip", "zip code", "postcode", "postal_code", "zip_code",
	},
	slip.FieldWeight: {
		"weight", "weight (kg)", "weight kg", "package weight", "item weight", "total weight",
	},
}

// marketplaceHeaders maps each logical field to the exact header names used
// by marketplace (TikTok Shop style) order exports.
var marketplaceHeaders = map[slip.LogicalField][]string{
	slip.FieldOrderID:       {"Order ID"},
	slip.FieldProductName:   {"Product Name"},
	slip.FieldSKU:           {"SKU ID"},
	slip.FieldSellerSKU:     {"Seller SKU"},
	slip.FieldQuantity:      {"Quantity"},
	slip.FieldBuyerUsername: {"Buyer Username"},
	slip.FieldRecipientName: {"Recipient"},
	slip.FieldPhoneNumber:   {"Phone #"},
	slip.FieldAddressLine1:  {"Street Name"},
	slip.FieldAddressLine2:  {"House Name or Number"},
	slip.FieldCity:          {"City"},
	slip.FieldState:         {"Province", "Autonomous Community"},
	slip.FieldPostalCode:    {"Zipcode"},
	slip.FieldWeight:        {"Weight (Kg)", "Weight", "Package Weight"},
}

// Synonyms returns the generic synonym list for a field
func Synonyms(field slip.LogicalField) []string {
	return fieldSynonyms[field]
}
