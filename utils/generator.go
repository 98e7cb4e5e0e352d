package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ContactTicketNumber builds the human-facing reference for a contact
// message, e.g. CONTACT-00042.
func ContactTicketNumber(id uint) string {
	return fmt.Sprintf("CONTACT-%05d", id)
}

// OrderReceipt generates an opaque receipt identifier for payment-gateway
// orders.
func OrderReceipt() string {
	return "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}
