package slips

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/slipdesk/backend/internal/domain/slip"
	"github.com/slipdesk/backend/internal/infrastructure/ingest"
)

// ErrEmptyInput is returned when aggregation is invoked with no rows
var ErrEmptyInput = errors.New("no rows to aggregate")

// NoValidOrdersError is returned when every row was skipped and no document
// could be built. It carries the pass counters for caller-side reporting.
type NoValidOrdersError struct {
	Stats AggregationStats
}

func (e *NoValidOrdersError) Error() string {
	return fmt.Sprintf("no valid orders found: %d rows total, %d processed, %d skipped",
		e.Stats.TotalRows, e.Stats.ProcessedRows, e.Stats.SkippedRows)
}

// AggregationStats counts what happened to each row during one pass
type AggregationStats struct {
	TotalRows               int `json:"totalRows"`
	ProcessedRows           int `json:"processedRows"`
	SkippedRows             int `json:"skippedRows"`
	SynthesizedIdentityRows int `json:"synthesizedIdentityRows"`
	MappingIssueRows        int `json:"mappingIssueRows"`
	DocumentCount           int `json:"documentCount"`
}

// Fallback headers tried when a field is unmapped. These are the direct
// marketplace export names, so a file processed without auto-mapping still
// yields usable slips.
var (
	fallbackOrderID     = []string{"Order ID"}
	fallbackRecipient   = []string{"Recipient"}
	fallbackPhone       = []string{"Phone #"}
	fallbackSKU         = []string{"SKU ID"}
	fallbackSellerSKU   = []string{"Seller SKU"}
	fallbackProductName = []string{"Product Name"}
	fallbackQuantity    = []string{"Quantity"}
	fallbackWeight      = []string{"Weight(kg)"}
	fallbackCity        = []string{"City"}
	fallbackState       = []string{"Province", "Autonomous Community"}
	fallbackPostalCode  = []string{"Zipcode"}
)

var shippingInfoPattern = regexp.MustCompile(`(?i)shipping\s*information`)

// Aggregate groups rows into packing slip documents keyed by resolved
// customer identity. Documents come back in first-seen order; a bad row is
// counted and skipped, never fatal.
func Aggregate(rows []*ingest.Row, mapping slip.FieldMapping, skuImages map[string]string) ([]*slip.Document, AggregationStats, error) {
	stats := AggregationStats{TotalRows: len(rows)}

	if len(rows) == 0 {
		return nil, stats, ErrEmptyInput
	}

	if mapping == nil {
		mapping = slip.NewFieldMapping()
	}

	docs := make(map[string]*slip.Document)
	var order []string

	usernameHeader := mapping.Header(slip.FieldBuyerUsername)
	orderIDHeader := mapping.Header(slip.FieldOrderID)
	recipientHeader := mapping.Header(slip.FieldRecipientName)

	var mappedHeaders []string
	for _, field := range slip.AllFields() {
		if h := mapping.Header(field); h != slip.Unmapped {
			mappedHeaders = append(mappedHeaders, h)
		}
	}

	for i, row := range rows {
		processed := func() (ok bool) {
			defer func() {
				if r := recover(); r != nil {
					ok = false
				}
			}()

			// A mapped column absent from the file is worth flagging, but
			// the row still processes on fallbacks and defaults.
			for _, h := range mappedHeaders {
				if !row.Has(h) {
					stats.MappingIssueRows++
					break
				}
			}

			identity, synthesized := ResolveIdentity(row, usernameHeader, orderIDHeader, recipientHeader, i)
			if synthesized {
				stats.SynthesizedIdentityRows++
			}

			key := IdentityKey(identity)
			doc, exists := docs[key]
			if !exists {
				customer := slip.Customer{
					Name:     fieldValue(row, mapping, slip.FieldRecipientName, fallbackRecipient, "Unknown"),
					Address:  buildAddress(row, mapping),
					Phone:    fieldValue(row, mapping, slip.FieldPhoneNumber, fallbackPhone, "Unknown"),
					Username: identity,
				}
				orderNumber := fieldValue(row, mapping, slip.FieldOrderID, fallbackOrderID, "Unknown")
				doc = slip.NewDocument(orderNumber, customer)
				docs[key] = doc
				order = append(order, key)
			}

			sku := fieldValue(row, mapping, slip.FieldSKU, fallbackSKU, "")
			sellerSKU := fieldValue(row, mapping, slip.FieldSellerSKU, fallbackSellerSKU, "")
			quantity := ParseQuantity(fieldValue(row, mapping, slip.FieldQuantity, fallbackQuantity, ""))
			weight := ParseWeight(fieldValue(row, mapping, slip.FieldWeight, fallbackWeight, ""))

			imageURL := skuImages[sku]
			if imageURL == "" {
				imageURL = skuImages[sellerSKU]
			}

			doc.AddItem(slip.Item{
				Name:      fieldValue(row, mapping, slip.FieldProductName, fallbackProductName, "Unknown Product"),
				SKU:       sku,
				SellerSKU: sellerSKU,
				Quantity:  quantity,
				Weight:    weight,
				OrderID:   fieldValue(row, mapping, slip.FieldOrderID, fallbackOrderID, "Unknown"),
				ImageURL:  imageURL,
			})

			return true
		}()

		if processed {
			stats.ProcessedRows++
		} else {
			stats.SkippedRows++
		}
	}

	if len(order) == 0 {
		return nil, stats, &NoValidOrdersError{Stats: stats}
	}

	result := make([]*slip.Document, 0, len(order))
	for _, key := range order {
		result = append(result, docs[key])
	}
	stats.DocumentCount = len(result)

	return result, stats, nil
}

// fieldValue reads a row cell through the mapping, then through the direct
// fallback headers, then defaults.
func fieldValue(row *ingest.Row, mapping slip.FieldMapping, field slip.LogicalField, fallbacks []string, def string) string {
	if header := mapping.Header(field); header != slip.Unmapped {
		if v := strings.TrimSpace(row.Get(header)); v != "" {
			return v
		}
	}
	for _, h := range fallbacks {
		if v := strings.TrimSpace(row.Get(h)); v != "" {
			return v
		}
	}
	return def
}

// buildAddress assembles the shipping address. When no address-line fields
// are mapped it looks for a single free-text "Shipping Information" style
// column; otherwise it joins the mapped parts, skipping empties.
func buildAddress(row *ingest.Row, mapping slip.FieldMapping) string {
	addr1Mapped := mapping.IsMapped(slip.FieldAddressLine1)
	addr2Mapped := mapping.IsMapped(slip.FieldAddressLine2)

	if !addr1Mapped && !addr2Mapped {
		for _, h := range row.Headers {
			if shippingInfoPattern.MatchString(h) {
				if v := strings.TrimSpace(row.Get(h)); v != "" {
					return v
				}
			}
		}
	}

	parts := []string{
		fieldValue(row, mapping, slip.FieldAddressLine1, nil, ""),
		fieldValue(row, mapping, slip.FieldAddressLine2, nil, ""),
		fieldValue(row, mapping, slip.FieldCity, fallbackCity, ""),
		fieldValue(row, mapping, slip.FieldState, fallbackState, ""),
		fieldValue(row, mapping, slip.FieldPostalCode, fallbackPostalCode, ""),
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	return strings.Join(nonEmpty, ", ")
}
