package operations

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateReferenceFormat(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	ref, err := GenerateReference(ReceiptPrefix, now)
	if err != nil {
		t.Fatalf("generate reference: %v", err)
	}

	pattern := regexp.MustCompile(`^REC-20260314092653-[A-Z0-9]{6}$`)
	if !pattern.MatchString(ref) {
		t.Fatalf("reference %q does not match expected format", ref)
	}
}

func TestGenerateReferenceVaries(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref, err := GenerateReference(TransferPrefix, now)
		if err != nil {
			t.Fatalf("generate reference: %v", err)
		}
		seen[ref] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected random suffixes, got %d distinct of 50", len(seen))
	}
}

func TestGenerateReferenceRequiresPrefix(t *testing.T) {
	if _, err := GenerateReference("", time.Now()); err == nil {
		t.Fatal("expected error for empty prefix")
	}
}
