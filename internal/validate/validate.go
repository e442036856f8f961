package validate

import (
	"strconv"
	"strings"

	"aquastock/internal/domain"
)

var orderStatuses = map[string]bool{
	domain.StatusPending:    true,
	domain.StatusProcessing: true,
	domain.StatusShipped:    true,
	domain.StatusDelivered:  true,
	domain.StatusCancelled:  true,
}

var categories = map[string]bool{
	domain.CategoryWater:        true,
	domain.CategoryJuices:       true,
	domain.CategoryCustomised:   true,
	domain.CategoryDistillation: true,
	domain.CategoryIce:          true,
}

var availabilityStatuses = map[string]bool{
	domain.AvailAvailable:  true,
	domain.AvailOutOfStock: true,
	domain.AvailPreOrder:   true,
}

// ID parses a positive integer identifier.
func ID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil && n > 0
}

// OrderStatus checks the closed order-status set.
func OrderStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, orderStatuses[s]
}

// Category checks the closed product-category set.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, categories[s]
}

// AvailabilityStatus checks the closed availability set.
func AvailabilityStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, availabilityStatuses[s]
}

// SplitName splits a display name on the first space: "Jane Doe" becomes
// ("Jane","Doe"), "Madonna" becomes ("Madonna",""), and everything after the
// first space stays in the last name.
func SplitName(name string) (first, last string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}
