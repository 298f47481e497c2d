package notion

import (
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"github.com/shopspring/decimal"
)

const (
	untitledPlaceholder = "(untitled)"
	emptyPlaceholder    = "—"
)

// normalizePage flattens a Notion page's heterogeneous property bag into a
// display-ready Record. Title comes from whichever property is title-typed;
// date and amount prefer the configured property names when their type
// matches and otherwise fall back to the first property of the expected type
// anywhere in the bag.
func normalizePage(page *notionapi.Page, props PropertyNames) Record {
	bag := page.Properties

	var title string
	for _, p := range bag {
		if tp, ok := p.(*notionapi.TitleProperty); ok {
			title = joinRichText(tp.Title)
			break
		}
	}

	var date string
	if dp, ok := bag[props.Date].(*notionapi.DateProperty); ok {
		date = propertyText(dp)
	} else {
		date = firstOfType(bag, func(p notionapi.Property) bool {
			_, ok := p.(*notionapi.DateProperty)
			return ok
		})
	}

	var amount string
	if np, ok := bag[props.Amount].(*notionapi.NumberProperty); ok {
		amount = propertyText(np)
	} else {
		amount = firstOfType(bag, func(p notionapi.Property) bool {
			_, ok := p.(*notionapi.NumberProperty)
			return ok
		})
	}

	return Record{
		ID:          string(page.ID),
		Title:       orPlaceholder(title, untitledPlaceholder),
		Date:        orPlaceholder(date, emptyPlaceholder),
		Amount:      orPlaceholder(amount, emptyPlaceholder),
		URL:         page.URL,
		HasCategory: false, // guaranteed by the fetch filter
	}
}

// propertyText renders a property value as plain text. Each Notion property
// carries a type tag and a value shaped by that type; this is the single
// switch over the supported variants. Unknown types render as the empty
// string so new Notion property types never break normalization.
func propertyText(prop notionapi.Property) string {
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		return joinRichText(p.Title)
	case *notionapi.RichTextProperty:
		return joinRichText(p.RichText)
	case *notionapi.SelectProperty:
		return p.Select.Name
	case *notionapi.MultiSelectProperty:
		names := make([]string, 0, len(p.MultiSelect))
		for _, opt := range p.MultiSelect {
			names = append(names, opt.Name)
		}
		return strings.Join(names, ", ")
	case *notionapi.DateProperty:
		return dateText(p.Date)
	case *notionapi.NumberProperty:
		return numberText(p.Number)
	case *notionapi.CheckboxProperty:
		if p.Checkbox {
			return "true"
		}
		return "false"
	case *notionapi.FormulaProperty:
		return formulaText(p.Formula)
	case *notionapi.URLProperty:
		return p.URL
	default:
		return ""
	}
}

func formulaText(f notionapi.Formula) string {
	switch string(f.Type) {
	case "string":
		return f.String
	case "number":
		return numberText(f.Number)
	case "boolean":
		if f.Boolean {
			return "true"
		}
		return "false"
	case "date":
		return dateText(f.Date)
	default:
		return ""
	}
}

func joinRichText(parts []notionapi.RichText) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.PlainText)
	}
	return b.String()
}

func dateText(d *notionapi.DateObject) string {
	if d == nil || d.Start == nil {
		return ""
	}
	return time.Time(*d.Start).Format("2006-01-02")
}

// numberText renders a Notion number without binary float artifacts.
func numberText(n float64) string {
	return decimal.NewFromFloat(n).String()
}

func firstOfType(bag notionapi.Properties, match func(notionapi.Property) bool) string {
	for _, p := range bag {
		if match(p) {
			return propertyText(p)
		}
	}
	return ""
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
