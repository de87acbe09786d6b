package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Order parsing errors.
var (
	ErrEmptyOrder        = errors.New("empty order expression")
	ErrInvalidOrderSpec  = errors.New("invalid order format: use 'field' or 'field:order' (e.g. 'created_at:desc')")
	ErrInvalidOrderDir   = errors.New("order direction must be 'asc' or 'desc'")
	ErrInvalidOrderField = errors.New("invalid order field")
)

// orderPartsMax is the maximum number of parts in an order string (field:direction).
const orderPartsMax = 2

// ParseOrder parses an order expression in the format "field" or
// "field:direction". A bare field name sorts ascending.
func ParseOrder(expr string) (field string, desc bool, err error) {
	if strings.TrimSpace(expr) == "" {
		return "", false, ErrEmptyOrder
	}

	parts := strings.Split(expr, ":")
	if len(parts) > orderPartsMax {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidOrderSpec, expr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", false, ErrEmptyOrder
	}

	if len(parts) == orderPartsMax {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
			desc = false
		case "desc":
			desc = true
		default:
			return "", false, fmt.Errorf("%w: got %q", ErrInvalidOrderDir, parts[1])
		}
	}

	return field, desc, nil
}
