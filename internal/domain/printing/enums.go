package printing

// PaperSize represents the paper size for rendering
type PaperSize string

const (
	PaperSizeA4          PaperSize = "A4"           // 210mm x 297mm
	PaperSizeA5          PaperSize = "A5"           // 148mm x 210mm
	PaperSizeLetter      PaperSize = "LETTER"       // 216mm x 279mm
	PaperSizeReceipt80MM PaperSize = "RECEIPT_80MM" // 80mm thermal receipt
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeA4, PaperSizeA5, PaperSizeLetter, PaperSizeReceipt80MM:
		return true
	}
	return false
}

// String returns the string representation of PaperSize
func (p PaperSize) String() string {
	return string(p)
}

// IsReceipt returns true for thermal receipt paper
func (p PaperSize) IsReceipt() bool {
	return p == PaperSizeReceipt80MM
}

// Dimensions returns the paper dimensions in millimeters (width, height).
// Receipt paper has variable height.
func (p PaperSize) Dimensions() (width, height int) {
	switch p {
	case PaperSizeA4:
		return 210, 297
	case PaperSizeA5:
		return 148, 210
	case PaperSizeLetter:
		return 216, 279
	case PaperSizeReceipt80MM:
		return 80, 0
	default:
		return 210, 297
	}
}

// Orientation represents the page orientation
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// IsValid checks if the Orientation is a valid value
func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// String returns the string representation of Orientation
func (o Orientation) String() string {
	return string(o)
}

// Margins represents page margins in millimeters
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DefaultMargins returns the standard margins for sheet paper
func DefaultMargins() Margins {
	return Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}
}

// ReceiptMargins returns minimal margins for receipt paper
func ReceiptMargins() Margins {
	return Margins{Top: 2, Right: 2, Bottom: 2, Left: 2}
}

// Equals compares two margin sets
func (m Margins) Equals(other Margins) bool {
	return m.Top == other.Top && m.Right == other.Right &&
		m.Bottom == other.Bottom && m.Left == other.Left
}

// IsValid checks that no margin is negative
func (m Margins) IsValid() bool {
	return m.Top >= 0 && m.Right >= 0 && m.Bottom >= 0 && m.Left >= 0
}

// TemplateStatus represents the lifecycle state of a template
type TemplateStatus string

const (
	TemplateStatusActive   TemplateStatus = "ACTIVE"
	TemplateStatusInactive TemplateStatus = "INACTIVE"
)

// IsValid checks if the TemplateStatus is a valid value
func (s TemplateStatus) IsValid() bool {
	return s == TemplateStatusActive || s == TemplateStatusInactive
}
