package sheets

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// Record identifier prefixes, one per worksheet.
const (
	prefixOrder     = "ORD"
	prefixOrderItem = "OITM"
	prefixPayment   = "PAY"
	prefixProduct   = "PRD"
	prefixClient    = "CLI"
	prefixAudit     = "AUD"
)

// newID produces a prefixed, lexicographically sortable identifier. The ULID
// timestamp part keeps rows roughly insertion-ordered when sorted by id.
func newID(prefix string) string {
	return prefix + "-" + ulid.MustNew(ulid.Now(), rand.Reader).String()
}
