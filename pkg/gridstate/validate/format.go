package validate

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// currencySymbols maps ISO codes to the prefix rendered before the amount.
// Codes not listed render as "CODE ".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"CAD": "CA$",
	"AUD": "A$",
	"MXN": "MX$",
	"BRL": "R$",
}

var dateLayouts = map[string]string{
	models.DatePatternUS:  "01/02/2006",
	models.DatePatternEU:  "02/01/2006",
	models.DatePatternISO: "2006-01-02",
}

// MaxDecimals caps the fraction digits of number columns.
const MaxDecimals = 20

// roundHalfAway rounds n to decimals places with ties away from zero, the way
// locale formatters do. The x/text printer alone rounds ties to even.
// The tie is judged on the shortest decimal form of n, so 1.005 rounds to 1.01.
func roundHalfAway(n float64, decimals int) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return n
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(n, 'g', -1, 64))
	if !ok {
		return n
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))

	half := big.NewRat(1, 2)
	if r.Sign() < 0 {
		r.Sub(r, half)
	} else {
		r.Add(r, half)
	}
	q := new(big.Int).Quo(r.Num(), r.Denom()) // truncates toward zero
	out, _ := new(big.Rat).SetFrac(q, scale).Float64()
	return out
}

// formatNumber renders n with thousands grouping and a fixed number of decimals.
func formatNumber(n float64, decimals int) string {
	return printer.Sprint(number.Decimal(roundHalfAway(n, decimals), number.Scale(decimals)))
}

// formatPercentage renders n with one decimal followed by a percent sign.
func formatPercentage(n float64) string {
	return strconv.FormatFloat(roundHalfAway(n, 1), 'f', 1, 64) + "%"
}

// formatCurrency renders n as an amount of the given ISO currency.
// Unknown codes fall back to USD.
func formatCurrency(n float64, code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		unit = currency.USD
	}
	scale, _ := currency.Standard.Rounding(unit)

	iso := unit.String()
	symbol, found := currencySymbols[iso]
	if !found {
		symbol = iso + " "
	}

	sign := ""
	if n < 0 {
		sign = "-"
	}
	return sign + symbol + printer.Sprint(number.Decimal(roundHalfAway(math.Abs(n), scale), number.Scale(scale)))
}

// formatDate renders t with one of the models.DatePattern constants.
func formatDate(t time.Time, pattern string) string {
	layout, found := dateLayouts[pattern]
	if !found {
		layout = dateLayouts[models.DatePatternUS]
	}
	return t.Format(layout)
}
