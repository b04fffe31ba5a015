// Package validate parses, validates and formats cell input per column type,
// and infers column types from raw samples.
package validate

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
)

// Error messages reported for invalid input.
const (
	MsgNumber     = "Must be a valid number"
	MsgCurrency   = "Must be a valid currency amount"
	MsgPercentage = "Must be a valid percentage"
	MsgDate       = "Must be a valid date"
	MsgEmail      = "Must be a valid email address"
	MsgURL        = "Must be a valid URL"
	MsgBoolean    = "Must be true/false, yes/no, or 1/0"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:[^0-9]`)
)

// Result is the outcome of validating one value.
type Result struct {
	// Valid reports whether the input conforms to the column type.
	Valid bool `json:"valid"`
	// FormattedValue is the canonical rendering of valid input.
	FormattedValue string `json:"formatted_value,omitempty"`
	// Error describes why the input is invalid.
	Error string `json:"error,omitempty"`
}

func ok(formatted string) Result { return Result{Valid: true, FormattedValue: formatted} }

func fail(msg string) Result { return Result{Error: msg} }

// Settings holds the defaults applied when a column format leaves a field unset.
type Settings struct {
	// Decimals is the default fraction digits for number columns.
	Decimals int
	// CurrencyCode is the default ISO 4217 code for currency columns.
	CurrencyCode string
	// DatePattern is the default rendering for date columns.
	DatePattern string
	// Threshold is the match fraction a category must exceed during inference.
	Threshold float64
}

// DefaultSettings returns the stock defaults.
func DefaultSettings() Settings {
	return Settings{
		Decimals:     2,
		CurrencyCode: "USD",
		DatePattern:  models.DatePatternUS,
		Threshold:    0.70,
	}
}

// Service validates and formats values using its Settings as defaults.
// A Service holds no mutable state and is safe for concurrent use.
type Service struct {
	settings Settings
}

// New creates a Service. Zero fields in s fall back to DefaultSettings.
func New(s Settings) *Service {
	def := DefaultSettings()
	if s.Decimals < 0 {
		s.Decimals = def.Decimals
	}
	if s.CurrencyCode == "" {
		s.CurrencyCode = def.CurrencyCode
	}
	if s.DatePattern == "" {
		s.DatePattern = def.DatePattern
	}
	if s.Threshold <= 0 || s.Threshold >= 1 {
		s.Threshold = def.Threshold
	}
	return &Service{settings: s}
}

// Default is the Service used by the package-level functions.
var Default = New(DefaultSettings())

// Validate validates value against typ using the default Service.
func Validate(value string, typ models.ColumnType, format models.ColumnFormat) Result {
	return Default.Validate(value, typ, format)
}

// Settings returns the effective settings.
func (s *Service) Settings() Settings {
	return s.settings
}

// Validate checks value against typ and returns its formatted rendering.
// Empty input is always valid with an empty formatted value.
func (s *Service) Validate(value string, typ models.ColumnType, format models.ColumnFormat) Result {
	if strings.TrimSpace(value) == "" {
		return ok("")
	}

	switch typ {
	case models.TypeNumber:
		n, err := parseFloat(value)
		if err != nil {
			return fail(MsgNumber)
		}
		decimals := s.settings.Decimals
		if format.Decimals != nil && *format.Decimals >= 0 {
			decimals = *format.Decimals
		}
		return ok(formatNumber(n, min(max(decimals, 0), MaxDecimals)))

	case models.TypeCurrency:
		cleaned := strings.NewReplacer("$", "", ",", "").Replace(value)
		n, err := parseFloat(cleaned)
		if err != nil {
			return fail(MsgCurrency)
		}
		code := format.CurrencyCode
		if code == "" {
			code = s.settings.CurrencyCode
		}
		return ok(formatCurrency(n, code))

	case models.TypePercentage:
		n, err := parseFloat(strings.ReplaceAll(value, "%", ""))
		if err != nil {
			return fail(MsgPercentage)
		}
		return ok(formatPercentage(n))

	case models.TypeDate:
		t, err := parseDate(strings.TrimSpace(value))
		if err != nil {
			return fail(MsgDate)
		}
		pattern := format.DatePattern
		if pattern == "" {
			pattern = s.settings.DatePattern
		}
		return ok(formatDate(t, pattern))

	case models.TypeEmail:
		if !emailPattern.MatchString(value) {
			return fail(MsgEmail)
		}
		return ok(strings.ToLower(value))

	case models.TypeURL:
		candidate := strings.TrimSpace(value)
		if !schemePattern.MatchString(candidate) {
			candidate = "https://" + candidate
		}
		if !isAbsoluteURL(candidate) {
			return fail(MsgURL)
		}
		return ok(candidate)

	case models.TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "1":
			return ok("Yes")
		case "false", "no", "0":
			return ok("No")
		}
		return fail(MsgBoolean)
	}

	// text and unknown types pass through unmodified
	return ok(value)
}

// parseFloat parses a finite decimal number, ignoring surrounding whitespace.
func parseFloat(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

// parseDate parses a calendar date in any common layout. Month-first is
// preferred; an ambiguous date whose month overflows is retried day-first.
func parseDate(s string) (time.Time, error) {
	return dateparse.ParseAny(s, dateparse.RetryAmbiguousDateWithSwap(true))
}

// isAbsoluteURL reports whether s parses as a URL with a scheme and either a
// host or an opaque part (mailto:, urn:).
func isAbsoluteURL(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && (u.Host != "" || u.Opaque != "")
}
