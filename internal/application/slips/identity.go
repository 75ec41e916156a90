package slips

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/slipdesk/backend/internal/infrastructure/ingest"
)

// wellKnownUsernameHeaders are tried verbatim before any fuzzy matching
var wellKnownUsernameHeaders = []string{
	"Buyer Username", "buyer username", "BuyerUsername", "Username", "username",
}

// identityPatterns are matched case-insensitively as header substrings
var identityPatterns = []string{"user", "buyer", "customer", "account"}

var (
	orderIDHeaderPattern = regexp.MustCompile(`(?i)order\s*id`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// ResolveIdentity derives a customer identity key for one row. It never
// fails: the fallback chain bottoms out at a per-row synthetic key so
// unrelated rows cannot merge. The second return value reports whether the
// identity was synthesized rather than read from a customer-ish column.
func ResolveIdentity(row *ingest.Row, usernameHeader, orderIDHeader, recipientHeader string, rowIndex int) (string, bool) {
	// 1. Explicitly mapped username column
	if usernameHeader != "" {
		if v := strings.TrimSpace(row.Get(usernameHeader)); v != "" {
			return v, false
		}
	}

	// 2. Well-known username headers, exact
	for _, h := range wellKnownUsernameHeaders {
		if v := strings.TrimSpace(row.Get(h)); v != "" {
			return v, false
		}
	}

	// 3. Any header that looks like a user/buyer/customer/account column
	for _, h := range row.Headers {
		lower := strings.ToLower(h)
		for _, pattern := range identityPatterns {
			if strings.Contains(lower, pattern) {
				if v := strings.TrimSpace(row.Get(h)); v != "" {
					return v, false
				}
				break
			}
		}
	}

	// 4. Any email-ish header
	for _, h := range row.Headers {
		if strings.Contains(strings.ToLower(h), "email") {
			if v := strings.TrimSpace(row.Get(h)); v != "" {
				return v, false
			}
		}
	}

	// 5. Mapped order id
	if orderIDHeader != "" {
		if v := strings.TrimSpace(row.Get(orderIDHeader)); v != "" {
			return "order_" + v, true
		}
	}

	// 6. Mapped recipient name
	if recipientHeader != "" {
		if v := strings.TrimSpace(row.Get(recipientHeader)); v != "" {
			return "customer_" + whitespacePattern.ReplaceAllString(v, "_"), true
		}
	}

	// 7. Any header that looks like an order id column
	for _, h := range row.Headers {
		if orderIDHeaderPattern.MatchString(h) {
			if v := strings.TrimSpace(row.Get(h)); v != "" {
				return "order_" + v, true
			}
		}
	}

	// 8. Per-row synthetic key
	return fmt.Sprintf("unknown_%d", rowIndex), true
}

// IdentityKey returns the grouping key for a resolved identity. Keys are
// case-insensitive; display names keep first-seen casing.
func IdentityKey(identity string) string {
	return strings.ToLower(identity)
}
