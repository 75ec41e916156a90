package slips

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slipdesk/backend/internal/infrastructure/ingest"
)

func rowFrom(pairs ...string) *ingest.Row {
	row := &ingest.Row{LineNumber: 2, Values: make(map[string]string)}
	for i := 0; i+1 < len(pairs); i += 2 {
		row.Headers = append(row.Headers, pairs[i])
		row.Values[pairs[i]] = pairs[i+1]
	}
	return row
}

func TestResolveIdentity(t *testing.T) {
	t.Run("mapped username column wins", func(t *testing.T) {
		row := rowFrom("Member", "alice", "Buyer Username", "bob")
		identity, synthesized := ResolveIdentity(row, "Member", "", "", 0)
		assert.Equal(t, "alice", identity)
		assert.False(t, synthesized)
	})

	t.Run("well-known header when mapping empty", func(t *testing.T) {
		row := rowFrom("Buyer Username", "bob")
		identity, synthesized := ResolveIdentity(row, "", "", "", 0)
		assert.Equal(t, "bob", identity)
		assert.False(t, synthesized)
	})

	t.Run("well-known header when mapped value empty", func(t *testing.T) {
		row := rowFrom("Member", "", "Username", "carol")
		identity, _ := ResolveIdentity(row, "Member", "", "", 0)
		assert.Equal(t, "carol", identity)
	})

	t.Run("fuzzy customer-ish header", func(t *testing.T) {
		row := rowFrom("Product", "Widget", "Account Holder", "dave")
		identity, synthesized := ResolveIdentity(row, "", "", "", 0)
		assert.Equal(t, "dave", identity)
		assert.False(t, synthesized)
	})

	t.Run("email header fallback", func(t *testing.T) {
		row := rowFrom("Product", "Widget", "Contact E-Mail Address", "")
		row.Headers = append(row.Headers, "Email Address")
		row.Values["Email Address"] = "a@example.com"
		identity, synthesized := ResolveIdentity(row, "", "", "", 0)
		assert.Equal(t, "a@example.com", identity)
		assert.False(t, synthesized)
	})

	t.Run("order id synthesis", func(t *testing.T) {
		row := rowFrom("Order Number", "X123", "Product", "Widget")
		identity, synthesized := ResolveIdentity(row, "", "Order Number", "", 0)
		assert.Equal(t, "order_X123", identity)
		assert.True(t, synthesized)
	})

	t.Run("recipient name synthesis replaces whitespace", func(t *testing.T) {
		row := rowFrom("Ship To", "Jane  Q Doe")
		identity, synthesized := ResolveIdentity(row, "", "", "Ship To", 0)
		assert.Equal(t, "customer_Jane_Q_Doe", identity)
		assert.True(t, synthesized)
	})

	t.Run("detected order id column synthesis", func(t *testing.T) {
		row := rowFrom("Marketplace OrderID", "Z9")
		identity, synthesized := ResolveIdentity(row, "", "", "", 0)
		assert.Equal(t, "order_Z9", identity)
		assert.True(t, synthesized)
	})

	t.Run("row index fallback", func(t *testing.T) {
		row := rowFrom("Product", "Widget")
		identity, synthesized := ResolveIdentity(row, "", "", "", 7)
		assert.Equal(t, "unknown_7", identity)
		assert.True(t, synthesized)
	})

	t.Run("values are trimmed", func(t *testing.T) {
		row := rowFrom("Buyer Username", "  eve  ")
		identity, _ := ResolveIdentity(row, "", "", "", 0)
		assert.Equal(t, "eve", identity)
	})
}

func TestIdentityKey(t *testing.T) {
	assert.Equal(t, IdentityKey("Jane"), IdentityKey("jane"))
	assert.Equal(t, "order_x123", IdentityKey("order_X123"))
}
