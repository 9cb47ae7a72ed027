package helper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GeneratePaymentReference builds the globally-unique reference shared with
// the gateway for one checkout attempt. Timestamp plus random suffix makes
// collision practically impossible; the DB unique index still enforces it.
func GeneratePaymentReference() string {
	return fmt.Sprintf("PAY_%s_%s", time.Now().Format("20060102150405"),
		strings.ToUpper(uuid.New().String()[:8]))
}

// GenerateConfirmationCode builds the customer-facing code printed on one
// ticket.
func GenerateConfirmationCode() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}
