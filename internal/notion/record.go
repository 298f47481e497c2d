package notion

// PropertyNames holds the display names of the properties the bot reads and
// writes in the transactions database.
type PropertyNames struct {
	Title    string
	Date     string
	Amount   string
	Category string
}

// Record is one normalized expense entry pending categorisation. All fields
// are display-ready strings; Title, Date and Amount carry placeholders when
// the underlying property is absent. Records are built per fetch and
// discarded after rendering.
type Record struct {
	// ID is the Notion page ID of the expense record.
	ID string

	// Title is the record's title, or "(untitled)".
	Title string

	// Date is the ISO start date, or an em dash.
	Date string

	// Amount is the stringified amount, or an em dash.
	Amount string

	// URL is the deep link back into Notion. May be empty.
	URL string

	// HasCategory is always false for records returned by the fetch filter,
	// which only matches rows with an empty category relation.
	HasCategory bool
}
