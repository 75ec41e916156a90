package slips

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/slipdesk/backend/internal/domain/slip"
)

var exportHeader = []string{
	"Order Number", "Customer Name", "Username", "Phone", "Address",
	"Product Name", "SKU", "Seller SKU", "Quantity", "Weight (kg)", "Order ID",
}

// ExportCSV writes aggregated documents as a flat CSV, one line per item.
// The output round-trips through the generic synonym tables, so a file
// exported here can be re-imported without manual mapping.
func ExportCSV(w io.Writer, docs []*slip.Document) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, doc := range docs {
		for _, item := range doc.Items {
			record := []string{
				doc.OrderNumber,
				doc.Customer.Name,
				doc.Customer.Username,
				doc.Customer.Phone,
				doc.Customer.Address,
				item.Name,
				item.SKU,
				item.SellerSKU,
				strconv.Itoa(item.Quantity),
				strconv.FormatFloat(item.Weight, 'f', -1, 64),
				item.OrderID,
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write export row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
