package validate

import (
	"testing"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected models.ColumnType
	}{
		{"empty", nil, models.TypeText},
		{"only blanks", []string{"", "  "}, models.TypeText},
		{"currency", []string{"$100", "$200", "$300"}, models.TypeCurrency},
		{"currency with grouping", []string{"$1,000.50", "$20", "", "$3"}, models.TypeCurrency},
		{"percentage", []string{"50%", "75%", "100%"}, models.TypePercentage},
		{"number", []string{"123", "456", "789"}, models.TypeNumber},
		{"number needs every sample", []string{"1", "2", "3", "4", "x"}, models.TypeText},
		{"date", []string{"2024-01-15", "2024-02-01", "2023-12-31"}, models.TypeDate},
		{"dotted dates", []string{"12.03.2024", "13.03.2024", "14.03.2024"}, models.TypeDate},
		{"grouped numbers are not dates", []string{"1,234", "5,678", "9,012"}, models.TypeText},
		{"email", []string{"a@example.com", "b@example.org", "c@example.net"}, models.TypeEmail},
		{"url absolute", []string{"https://go.dev", "http://example.com/x", "https://a.org"}, models.TypeURL},
		{"url bare domain", []string{"example.com", "www.golang.org", "news.bbc.co.uk"}, models.TypeURL},
		{"url unknown tld", []string{"foo.notarealtld", "bar.notarealtld", "baz.notarealtld"}, models.TypeText},
		{"boolean", []string{"yes", "no", "Yes", "true"}, models.TypeBoolean},
		{"below threshold", []string{"$1", "$2", "x", "y"}, models.TypeText},
		{"text", []string{"apple", "banana", "cherry"}, models.TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(tt.values); got != tt.expected {
				t.Errorf("Infer(%q) = %s, expected %s", tt.values, got, tt.expected)
			}
		})
	}
}
