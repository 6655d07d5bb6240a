package application

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/bizdesk/go-business-records/internal/domains/orders/application/types"
)

// fingerprint hashes the submission payload so a reused idempotency key can
// be checked against the original request. Cart lines are sorted first; the
// same cart in a different order is the same request.
func fingerprint(input types.PlaceOrderInput) string {
	lines := make([]string, 0, len(input.Lines))
	for _, line := range input.Lines {
		lines = append(lines, strings.TrimSpace(line.ProductID)+"x"+strings.TrimSpace(line.Quantity))
	}
	sort.Strings(lines)

	h := sha256.New()
	for _, field := range []string{
		input.Customer.FirstName,
		input.Customer.LastName,
		input.Customer.Email,
		input.Customer.Province,
		input.Customer.City,
		input.Customer.Street,
		input.Customer.PhoneNumber,
	} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
