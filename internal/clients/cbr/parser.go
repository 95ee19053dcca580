package cbr

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// The feed quotes every currency as an XML record of the form
// <CharCode>USD</CharCode><Nominal>1</Nominal>...<Value>90,55</Value>,
// i.e. "Nominal units of CharCode cost Value rubles" with a comma as
// the decimal separator. This grammar is the upstream wire contract.
var ratePattern = regexp.MustCompile(
	`<CharCode>(\w+)</CharCode><Nominal>(\d+)</Nominal>.*?<Value>([\d,]+)</Value>`)

// parseRates extracts per-unit rates from the feed body. A body
// without a single rate record yields an empty table; a rate record
// with a malformed value fails the whole extraction.
func parseRates(body string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)

	for _, match := range ratePattern.FindAllStringSubmatch(body, -1) {
		code, rawNominal, rawValue := match[1], match[2], match[3]

		value, err := decimal.NewFromString(strings.ReplaceAll(rawValue, ",", "."))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing value of %s", code)
		}
		if value.IsZero() {
			return nil, errors.Errorf("zero value of %s", code)
		}

		nominal, err := decimal.NewFromString(rawNominal)
		if err != nil || nominal.IsZero() {
			return nil, errors.Errorf("bad nominal %q of %s", rawNominal, code)
		}

		rates[strings.ToLower(code)] = value.Div(nominal)
	}

	return rates, nil
}
