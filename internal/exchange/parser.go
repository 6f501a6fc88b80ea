package exchange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xtrntr/stockbroker/internal/models"
)

var (
	// ErrFormat is returned when a line does not have exactly 4 tokens
	ErrFormat = errors.New("invalid command format")
	// ErrParse is returned when price or volume is not numeric
	ErrParse = errors.New("invalid number")
)

const lineFields = 4

// MaxLineLength bounds a single command line in bytes
const MaxLineLength = 64 * 1024

// ParseLine splits "<action> <stock> <price> <volume>" into a trade. The
// trade is not validated.
func ParseLine(line string) (models.Trade, error) {
	if len(line) > MaxLineLength {
		return models.Trade{}, fmt.Errorf("%w: line exceeds %d bytes", ErrFormat, MaxLineLength)
	}
	parts := strings.Fields(line)
	if len(parts) != lineFields {
		return models.Trade{}, fmt.Errorf("%w: got %d fields", ErrFormat, len(parts))
	}

	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		return models.Trade{}, fmt.Errorf("%w: price %q", ErrParse, parts[2])
	}
	// Out of range volumes come back clamped to the int64 bounds and are
	// left for the validator to reject.
	volume, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return models.Trade{}, fmt.Errorf("%w: volume %q", ErrParse, parts[3])
	}

	return models.Trade{
		Action: models.Action(parts[0]),
		Stock:  parts[1],
		Price:  price,
		Volume: volume,
	}, nil
}
