package models

import "github.com/shopspring/decimal"

func init() {
	// amounts are written as JSON numbers, as clients already expect
	decimal.MarshalJSONWithoutQuotes = true
}
