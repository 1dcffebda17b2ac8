package operations

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Reference prefixes for each document type.
const (
	ReceiptPrefix    = "REC"
	DeliveryPrefix   = "DO"
	TransferPrefix   = "TRF"
	AdjustmentPrefix = "ADJ"
)

const referenceSuffixLen = 6

var referenceCharset = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// GenerateReference builds a document reference of the form
// PREFIX-YYYYMMDDHHMMSS-XXXXXX where the suffix is random. The reference
// column carries a unique index; a collision surfaces as a conflict the
// caller may retry.
func GenerateReference(prefix string, now time.Time) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("prefix is required")
	}

	buf := make([]byte, referenceSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reference suffix: %w", err)
	}
	for i := range buf {
		buf[i] = referenceCharset[int(buf[i])%len(referenceCharset)]
	}

	return fmt.Sprintf("%s-%s-%s", prefix, now.UTC().Format("20060102150405"), buf), nil
}
