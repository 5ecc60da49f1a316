package market

import (
	"fmt"
	"strings"
)

// FormatReport renders ranked instruments as a multi-line report: one
// header line naming the data source (plus the quote date and time when the
// first item carries them), then one line per instrument. The change
// indicator prefers percent change over the absolute change and is omitted
// when neither is present. Output is fully determined by input order.
func FormatReport(source string, items []Item) string {
	var b strings.Builder

	b.WriteString("📊 ")
	b.WriteString(source)
	if len(items) > 0 && items[0].Date != "" {
		stamp := items[0].Date
		if items[0].Time != "" {
			stamp += " " + items[0].Time
		}
		fmt.Fprintf(&b, " (%s)", stamp)
	}

	for _, item := range items {
		b.WriteString("\n")

		name := item.Name
		if name == "" {
			name = item.NameEn
		}
		b.WriteString(name)
		if item.Symbol != "" {
			fmt.Fprintf(&b, " (%s)", item.Symbol)
		}
		b.WriteString(": ")
		b.WriteString(item.Price)
		if item.Unit != "" {
			b.WriteString(" ")
			b.WriteString(item.Unit)
		}

		switch {
		case item.ChangePercent != "":
			fmt.Fprintf(&b, " | %s%%", item.ChangePercent)
		case item.ChangeValue != "":
			fmt.Fprintf(&b, " | %s", item.ChangeValue)
		}
	}

	return b.String()
}
