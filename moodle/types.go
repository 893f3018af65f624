package moodle

// TextFormat is the format code of a rich text field such as a description
type TextFormat int

// Text formats understood by Moodle
const (
	FormatMoodle   TextFormat = 0
	FormatHTML     TextFormat = 1
	FormatPlain    TextFormat = 2
	FormatWiki     TextFormat = 3
	FormatMarkdown TextFormat = 4
)

// Warning is a non-fatal problem reported alongside a result
type Warning struct {
	Item        string `json:"item"`
	ItemID      int    `json:"itemid"`
	WarningCode string `json:"warningcode"`
	Message     string `json:"message"`
}

// Ptr returns a pointer to v, for filling optional fields
func Ptr[T any](v T) *T {
	return &v
}
