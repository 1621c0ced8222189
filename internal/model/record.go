// Package model defines the core domain models used throughout the application.
package model

// Spreadsheet column names every record row must carry.
const (
	FieldDesign   = "DESIGN"
	FieldArticle  = "ARTICLE"
	FieldQuality  = "QUALITY"
	FieldQuantity = "QTY"
)

// RequiredFields lists the columns BuildIndex reads from each row.
var RequiredFields = []string{FieldDesign, FieldQuality, FieldArticle, FieldQuantity}

// RawRow is a single spreadsheet row keyed by header name.
type RawRow map[string]string

// Record is one spreadsheet row as used for naming.
// Values keep the formatting they had in the source sheet.
type Record struct {
	Design   string
	Article  string
	Quality  string
	Quantity string
}
