package domain

import (
	"strconv"
	"strings"
	"time"

	"smartpay/internal/finance/errors"
)

// ParsePeriod splits a "YYYY-MM" period token into its calendar year and
// month. Budgets and spending aggregation are scoped by this pair only, never
// by day range or timezone.
func ParsePeriod(period string) (int, time.Month, error) {
	parts := strings.Split(period, "-")
	if len(parts) != 2 {
		return 0, 0, errors.ErrInvalidPeriod
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.ErrInvalidPeriod
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.ErrInvalidPeriod
	}

	return year, time.Month(month), nil
}
