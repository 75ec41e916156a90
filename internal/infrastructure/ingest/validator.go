package ingest

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// FieldType represents the expected type of a field
type FieldType string

const (
	TypeString FieldType = "string"
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeURL    FieldType = "url"
)

// FieldRule defines validation rules for a field
type FieldRule struct {
	Column      string
	Type        FieldType
	Required    bool
	MaxLength   int
	Pattern     *regexp.Regexp
	PatternDesc string
	Unique      bool
}

// FieldRuleBuilder helps build field rules fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field creates a new field rule builder
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{
		rule: FieldRule{
			Column: column,
			Type:   TypeString,
		},
	}
}

// Required marks the field as required
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int sets the field type to integer
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Float sets the field type to float
func (b *FieldRuleBuilder) Float() *FieldRuleBuilder {
	b.rule.Type = TypeFloat
	return b
}

// URL sets the field type to URL
func (b *FieldRuleBuilder) URL() *FieldRuleBuilder {
	b.rule.Type = TypeURL
	return b
}

// MaxLength sets the maximum length
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// Pattern sets a regex pattern for validation
func (b *FieldRuleBuilder) Pattern(pattern, description string) *FieldRuleBuilder {
	b.rule.Pattern = regexp.MustCompile(pattern)
	b.rule.PatternDesc = description
	return b
}

// Unique marks the field as unique within the file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Build returns the built field rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator validates rows against a set of field rules
type FieldValidator struct {
	rules       []FieldRule
	uniqueCheck map[string]map[string]int // column -> value -> first row number
	errors      *ErrorCollection
}

// NewFieldValidator creates a new field validator
func NewFieldValidator(rules []FieldRule, maxErrors int) *FieldValidator {
	return &FieldValidator{
		rules:       rules,
		uniqueCheck: make(map[string]map[string]int),
		errors:      NewErrorCollection(maxErrors),
	}
}

// ValidateRow validates all fields in a row
func (v *FieldValidator) ValidateRow(row *Row) bool {
	hasError := false

	for _, rule := range v.rules {
		value := row.Get(rule.Column)

		if rule.Required && value == "" {
			v.errors.AddRequiredError(row.LineNumber, rule.Column)
			hasError = true
			continue
		}

		// Skip further validation for empty optional fields
		if value == "" {
			continue
		}

		if err := validateType(value, rule.Type); err != nil {
			v.errors.AddFormatError(row.LineNumber, rule.Column, string(rule.Type), value)
			hasError = true
			continue
		}

		if rule.MaxLength > 0 && len(value) > rule.MaxLength {
			v.errors.AddLengthError(row.LineNumber, rule.Column, rule.MaxLength)
			hasError = true
		}

		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			v.errors.AddFormatError(row.LineNumber, rule.Column, rule.PatternDesc, value)
			hasError = true
		}

		if rule.Unique {
			if v.uniqueCheck[rule.Column] == nil {
				v.uniqueCheck[rule.Column] = make(map[string]int)
			}
			key := strings.ToLower(value)
			if firstRow, exists := v.uniqueCheck[rule.Column][key]; exists {
				v.errors.Add(NewRowErrorWithValue(row.LineNumber, rule.Column, ErrCodeIngestDuplicate,
					fmt.Sprintf("duplicate value '%s' (first seen in row %d)", value, firstRow), value))
				hasError = true
			} else {
				v.uniqueCheck[rule.Column][key] = row.LineNumber
			}
		}
	}

	return !hasError
}

// validateType validates a value against the expected type
func validateType(value string, fieldType FieldType) error {
	switch fieldType {
	case TypeString:
		return nil
	case TypeInt:
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	case TypeFloat:
		_, err := strconv.ParseFloat(value, 64)
		return err
	case TypeURL:
		u, err := url.Parse(value)
		if err != nil {
			return err
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("URL must use http or https scheme")
		}
		if u.Host == "" {
			return fmt.Errorf("URL missing host")
		}
		return nil
	}
	return nil
}

// Errors returns the error collection
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}

// Reset clears the validator state for reuse
func (v *FieldValidator) Reset() {
	v.uniqueCheck = make(map[string]map[string]int)
	v.errors.Clear()
}
