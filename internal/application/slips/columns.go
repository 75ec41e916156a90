package slips

import (
	"strings"

	"github.com/slipdesk/backend/internal/domain/slip"
)

// IsMarketplaceExport reports whether the headers look like a marketplace
// order export rather than a generic storefront CSV. Those files carry a
// fixed header set, so a couple of signature headers are enough.
func IsMarketplaceExport(headers []string) bool {
	hasPhone := false
	for _, h := range headers {
		if h == "Phone #" {
			hasPhone = true
			break
		}
	}

	for _, h := range headers {
		if h == "Buyer Username" || h == "Order ID" {
			return true
		}
		if h == "Recipient" && hasPhone {
			return true
		}
	}

	return false
}

// ResolveColumn finds the header that best matches a logical field, trying
// exact match first, then case-insensitive, then bidirectional substring.
// Returns slip.Unmapped when nothing matches.
func ResolveColumn(field slip.LogicalField, headers []string) string {
	synonyms := fieldSynonyms[field]

	// Tier 1: exact match
	for _, syn := range synonyms {
		for _, h := range headers {
			if h == syn {
				return h
			}
		}
	}

	// Tier 2: case-insensitive match
	for _, syn := range synonyms {
		for _, h := range headers {
			if strings.EqualFold(h, syn) {
				return h
			}
		}
	}

	// Tier 3: substring match either direction
	for _, syn := range synonyms {
		lowerSyn := strings.ToLower(syn)
		for _, h := range headers {
			lowerHeader := strings.ToLower(h)
			if strings.Contains(lowerHeader, lowerSyn) || strings.Contains(lowerSyn, lowerHeader) {
				return h
			}
		}
	}

	return slip.Unmapped
}

// ResolveColumnMapping builds a complete field mapping for the given
// headers. Fields already mapped in existing are preserved untouched.
// Marketplace exports resolve against their fixed header table; generic
// exports fall through the tiered synonym resolution.
func ResolveColumnMapping(headers []string, existing slip.FieldMapping) slip.FieldMapping {
	mapping := slip.NewFieldMapping()
	for field, header := range existing {
		if header != slip.Unmapped {
			mapping[field] = header
		}
	}

	marketplace := IsMarketplaceExport(headers)

	for _, field := range slip.AllFields() {
		if mapping.IsMapped(field) {
			continue
		}

		if marketplace {
			if header := resolveMarketplaceColumn(field, headers); header != slip.Unmapped {
				mapping[field] = header
				continue
			}
		}

		if header := ResolveColumn(field, headers); header != slip.Unmapped {
			mapping[field] = header
		}
	}

	return mapping
}

// resolveMarketplaceColumn matches a field against the fixed marketplace
// header table, exact matches only.
func resolveMarketplaceColumn(field slip.LogicalField, headers []string) string {
	for _, candidate := range marketplaceHeaders[field] {
		for _, h := range headers {
			if h == candidate {
				return h
			}
		}
	}
	return slip.Unmapped
}
