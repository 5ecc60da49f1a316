// Package market implements the market-data side of the bot: fetching the
// instrument catalog, fuzzy-ranking instruments against a free-text query,
// and rendering the result as a readable report.
package market

// Item is one quoted market instrument (currency, coin, commodity) as
// returned by the market-data service. Items are value objects produced
// fresh on each fetch; no identity persists between fetches.
//
// Numeric fields stay strings because the upstream feed quotes them as
// strings with locale formatting; the bot never does arithmetic on them.
type Item struct {
	Name          string `json:"name"`
	NameEn        string `json:"name_en"`
	Symbol        string `json:"symbol"`
	Price         string `json:"price"`
	Unit          string `json:"unit"`
	ChangeValue   string `json:"change_value"`
	ChangePercent string `json:"change_percent"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
