package quote

// Quote is one security's observation from the Nordic market screener.
// Numeric fields keep "no data" distinct from zero; string classification
// fields default to empty. Field names match both the upstream listing
// (case-insensitive) and the published snapshot files (camelCase).
type Quote struct {
	FullName         string  `json:"fullName"`
	Symbol           string  `json:"symbol"`
	Currency         string  `json:"currency"`
	NetChange        Decimal `json:"netChange"`
	PercentageChange string  `json:"percentageChange"`
	BidPrice         Decimal `json:"bidPrice"`
	AskPrice         Decimal `json:"askPrice"`
	LastSalePrice    Decimal `json:"lastSalePrice"`
	High             Decimal `json:"high"`
	Low              Decimal `json:"low"`
	Volume           Integer `json:"volume"`
	Turnover         Decimal `json:"turnover"`
	OrderbookID      string  `json:"orderbookId"`
	AssetClass       string  `json:"assetClass"`
	Sector           string  `json:"sector"`
	Isin             string  `json:"isin"`
	DeltaIndicator   string  `json:"deltaIndicator"`
}
