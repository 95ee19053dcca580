package currency

import "github.com/shopspring/decimal"

// RateTable holds exchange rates relative to a single reference
// currency. The outer key is the reference currency code, and
// table[ref][code] is the value of one unit of code expressed in the
// reference currency. All codes are lower-cased.
type RateTable map[string]map[string]decimal.Decimal
