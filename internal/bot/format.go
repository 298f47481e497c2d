package bot

import (
	"fmt"
	"html"
	"strings"

	"github.com/dvloznov/expense-bot/internal/notion"
)

// formatRecord renders one record as an HTML message body: bold title, then
// date, amount and a Notion deep link when present.
func formatRecord(rec notion.Record) string {
	parts := []string{fmt.Sprintf("<b>%s</b>", html.EscapeString(rec.Title))}
	if rec.Date != "" {
		parts = append(parts, "Date: "+html.EscapeString(rec.Date))
	}
	if rec.Amount != "" {
		parts = append(parts, "Amount: "+html.EscapeString(rec.Amount))
	}
	if rec.URL != "" {
		parts = append(parts, fmt.Sprintf(`<a href="%s">Open in Notion</a>`, rec.URL))
	}
	return strings.Join(parts, "\n")
}
