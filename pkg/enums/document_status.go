package enums

import "fmt"

// DocumentStatus describes the lifecycle state of a transaction document header.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusWaiting  DocumentStatus = "waiting"
	DocumentStatusReady    DocumentStatus = "ready"
	DocumentStatusDone     DocumentStatus = "done"
	DocumentStatusCanceled DocumentStatus = "canceled"
)

var validDocumentStatuses = []DocumentStatus{
	DocumentStatusDraft,
	DocumentStatusWaiting,
	DocumentStatusReady,
	DocumentStatusDone,
	DocumentStatusCanceled,
}

// IsValid reports whether the value matches the canonical document status enum.
func (d DocumentStatus) IsValid() bool {
	for _, candidate := range validDocumentStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDocumentStatus converts the raw string to DocumentStatus.
func ParseDocumentStatus(value string) (DocumentStatus, error) {
	for _, candidate := range validDocumentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document status %q", value)
}
