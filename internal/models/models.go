package models

// Status describes where an application sits in the pipeline.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusOffer     Status = "offer"
)

// Valid reports whether s is one of the four pipeline stages.
func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInterview, StatusRejected, StatusOffer:
		return true
	}
	return false
}

// Statuses lists every pipeline stage, in pipeline order.
func Statuses() []Status {
	return []Status{StatusSubmitted, StatusInterview, StatusRejected, StatusOffer}
}

// Application is one tracked job application. ID is assigned at creation and
// never changes; every other field is mutable through an edit.
type Application struct {
	ID        string `json:"id"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	OfferLink string `json:"offer_link,omitempty"`
	Status    Status `json:"status"`
	Date      string `json:"date"` // YYYY-MM-DD, the sort key
	Notes     string `json:"notes,omitempty"`
}

// Draft is the transient form state: the fields of an application being
// created or edited. EditingID empty means a new application is being created.
// Drafts are never persisted.
type Draft struct {
	EditingID string `json:"editing_id,omitempty"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	OfferLink string `json:"offer_link"`
	Status    Status `json:"status"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
}

// Editing reports whether the draft targets an existing application.
func (d Draft) Editing() bool { return d.EditingID != "" }

// SchemaVersion is the version of the persisted document layout.
const SchemaVersion = 1

// Document is the serialized shape stored in the key-value store: the full
// collection plus an explicit schema version so future layouts can migrate
// instead of duck-typing whatever was last written.
type Document struct {
	SchemaVersion int           `json:"schema_version"`
	Applications  []Application `json:"applications"`
}
