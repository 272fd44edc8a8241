package common

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PathID returns the {id} route parameter and whether it is a canonical
// hyphenated UUID.
func PathID(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	return id, len(id) == 36 && uuid.Validate(id) == nil
}

// DecimalText accepts a JSON number or a JSON string and returns its text.
func DecimalText(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return strings.Trim(text, `"`)
}

// ParseDecimal parses a currency value from a request, bounded in length and
// exponent.
func ParseDecimal(value string) (decimal.Decimal, error) {
	return cyclesdomain.ParseMoney(value)
}

func ParseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
