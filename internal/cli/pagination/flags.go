package pagination

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

// Validation limits.
const (
	// MaxLimit caps a single explicit page fetch.
	MaxLimit = 1000
)

// Common validation errors.
var (
	ErrInvalidOffset = errors.New("offset must be non-negative")
	ErrInvalidLimit  = fmt.Errorf("limit must be between 0 and %d", MaxLimit)
)

// Params holds the listing flags shared by paginated admin commands.
// A zero Limit selects interactive paging sized to the terminal; an
// explicit Limit fetches exactly one page.
type Params struct {
	// Offset is the number of results to skip.
	Offset int

	// Limit is the page size, 0 for terminal-sized interactive paging.
	Limit int

	// Filter is a manager-side query filter expression, passed through.
	Filter string

	// Order is the raw order expression ("field" or "field:desc").
	Order string
}

// Register adds the listing flags to a command's flag set.
func (p *Params) Register(flags *pflag.FlagSet) {
	flags.IntVar(&p.Offset, "offset", 0, "number of results to skip")
	flags.IntVar(&p.Limit, "limit", 0, "page size (0 = fit to terminal, interactive paging)")
	flags.StringVar(&p.Filter, "filter", "", "server-side filter expression")
	flags.StringVar(&p.Order, "order", "", "sort order: FIELD or FIELD:desc")
}

// Validate checks the flag values for consistency.
func (p Params) Validate() error {
	if p.Offset < 0 {
		return ErrInvalidOffset
	}
	if p.Limit < 0 || p.Limit > MaxLimit {
		return ErrInvalidLimit
	}
	return nil
}

// OrderExpression validates the order flag against the fields the manager
// accepts for the command and returns the expression in manager syntax
// ("field" ascending, "-field" descending).
func (p Params) OrderExpression(validFields ...string) (string, error) {
	if p.Order == "" {
		return "", nil
	}
	field, desc, err := ParseOrder(p.Order)
	if err != nil {
		return "", err
	}
	if len(validFields) > 0 && !contains(validFields, field) {
		return "", fmt.Errorf("%w: %q (valid: %v)", ErrInvalidOrderField, field, validFields)
	}
	if desc {
		return "-" + field, nil
	}
	return field, nil
}

func contains(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
