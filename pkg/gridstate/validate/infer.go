package validate

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"golang.org/x/net/publicsuffix"
)

var (
	currencySample = regexp.MustCompile(`^\$[\d,]+\.?\d*$`)
	domainSample   = regexp.MustCompile(`(?i)^(www\.)?([a-z0-9-]+\.)+[a-z]{2,}(/\S*)?$`)
)

var booleanSamples = map[string]bool{
	"true": true, "false": true, "yes": true, "no": true, "1": true, "0": true,
}

// Infer guesses the column type of values using the default Service.
func Infer(values []string) models.ColumnType {
	return Default.Infer(values)
}

// Infer guesses the column type of a set of raw samples.
// Empty samples are ignored; with no samples left the result is text.
// Categories are tried in a fixed order and the first whose match fraction
// exceeds the threshold wins. Number is special: every sample must match.
func (s *Service) Infer(values []string) models.ColumnType {
	samples := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			samples = append(samples, v)
		}
	}
	if len(samples) == 0 {
		return models.TypeText
	}

	fraction := func(match func(string) bool) float64 {
		n := 0
		for _, v := range samples {
			if match(v) {
				n++
			}
		}
		return float64(n) / float64(len(samples))
	}

	if fraction(currencySample.MatchString) > s.settings.Threshold {
		return models.TypeCurrency
	}
	if fraction(func(v string) bool { return strings.Contains(v, "%") }) > s.settings.Threshold {
		return models.TypePercentage
	}
	if fraction(isPlainNumber) == 1 {
		return models.TypeNumber
	}
	if fraction(isDateSample) > s.settings.Threshold {
		return models.TypeDate
	}
	if fraction(emailPattern.MatchString) > s.settings.Threshold {
		return models.TypeEmail
	}
	if fraction(isURLSample) > s.settings.Threshold {
		return models.TypeURL
	}
	if fraction(func(v string) bool { return booleanSamples[strings.ToLower(v)] }) > s.settings.Threshold {
		return models.TypeBoolean
	}
	return models.TypeText
}

func isPlainNumber(v string) bool {
	_, err := parseFloat(v)
	return err == nil
}

// isDateSample accepts strings longer than four characters that parse as a date
// and are not plain numbers, grouped or not.
func isDateSample(v string) bool {
	if len(v) <= 4 || isPlainNumber(strings.ReplaceAll(v, ",", "")) {
		return false
	}
	_, err := parseDate(v)
	return err == nil
}

// isURLSample accepts absolute URLs and bare domains under an ICANN suffix.
func isURLSample(v string) bool {
	if schemePattern.MatchString(v) {
		return isAbsoluteURL(v)
	}
	if !domainSample.MatchString(v) {
		return false
	}
	u, err := url.Parse("https://" + v)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	suffix, icann := publicsuffix.PublicSuffix(host)
	return icann && suffix != host
}
