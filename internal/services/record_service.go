package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jobtracker-app/jobtracker/internal/database"
	"github.com/jobtracker-app/jobtracker/internal/models"
)

// ApplicationsKey is the key-value entry holding the serialized collection.
const ApplicationsKey = "jobtracker:applications"

// DraftNotifier lets the record store clear the active form draft when its
// target disappears.
type DraftNotifier interface {
	ClearIfEditing(id string)
	Clear()
}

// RecordService owns the in-memory collection of tracked applications. It is
// hydrated from the key-value store at construction and persists the full
// collection after every mutation. A failed persist keeps the in-memory
// mutation and is reported to the caller; the next successful mutation writes
// the whole collection again.
type RecordService struct {
	mu      sync.Mutex
	kv      *database.KV
	records []models.Application
	drafts  DraftNotifier
}

func NewRecordService(ctx context.Context, kv *database.KV) *RecordService {
	s := &RecordService{kv: kv}
	s.records = hydrate(kv.Load(ctx, ApplicationsKey, nil))
	return s
}

// SetDraftNotifier wires the form controller in after construction; the two
// services reference each other.
func (s *RecordService) SetDraftNotifier(n DraftNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = n
}

// hydrate decodes the persisted document. Absent or corrupt values, and
// documents written by an unknown schema version, yield an empty collection.
func hydrate(raw []byte) []models.Application {
	if len(raw) == 0 {
		return nil
	}
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("[records] corrupt persisted value, starting empty: %v", err)
		return nil
	}
	if doc.SchemaVersion != models.SchemaVersion {
		log.Printf("[records] unknown schema version %d, starting empty", doc.SchemaVersion)
		return nil
	}
	return doc.Applications
}

// List returns a copy of the collection in insertion order.
func (s *RecordService) List() []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Application, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the application with the given id.
func (s *RecordService) Get(id string) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.records {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Application{}, ErrNotFound
}

// Create validates the draft, assigns a fresh id, appends and persists.
func (s *RecordService) Create(ctx context.Context, d models.Draft) (models.Application, error) {
	app, err := fromDraft(d)
	if err != nil {
		return models.Application{}, err
	}
	app.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, app)
	return app, s.persistLocked(ctx)
}

// Update replaces every mutable field of the matching record; the id never
// changes. Other records are untouched.
func (s *RecordService) Update(ctx context.Context, id string, d models.Draft) (models.Application, error) {
	app, err := fromDraft(d)
	if err != nil {
		return models.Application{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.ID == id {
			app.ID = existing.ID
			s.records[i] = app
			return app, s.persistLocked(ctx)
		}
	}
	return models.Application{}, ErrNotFound
}

// Delete removes exactly the matching record. It requires an upfront
// confirmation; declining leaves state unchanged. Deleting the active edit
// target clears the form draft.
func (s *RecordService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	s.mu.Lock()
	drafts := s.drafts
	found := false
	kept := s.records[:0]
	for _, a := range s.records {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	s.records = kept
	var err error
	if found {
		err = s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	if drafts != nil {
		drafts.ClearIfEditing(id)
	}
	return err
}

// ClearAll empties the collection after confirmation and clears any active
// draft.
func (s *RecordService) ClearAll(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	s.mu.Lock()
	drafts := s.drafts
	s.records = nil
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	if drafts != nil {
		drafts.Clear()
	}
	return err
}

// persistLocked serializes the full collection and overwrites the stored
// value. Callers hold s.mu.
func (s *RecordService) persistLocked(ctx context.Context) error {
	doc := models.Document{
		SchemaVersion: models.SchemaVersion,
		Applications:  s.records,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.kv.Save(ctx, ApplicationsKey, raw); err != nil {
		log.Printf("[records] persist failed, in-memory state retained: %v", err)
		return err
	}
	return nil
}

// fromDraft trims and validates the required fields and normalizes the
// status. The id is left for the caller.
func fromDraft(d models.Draft) (models.Application, error) {
	company := strings.TrimSpace(d.Company)
	position := strings.TrimSpace(d.Position)
	date := strings.TrimSpace(d.Date)
	if company == "" || position == "" || date == "" {
		return models.Application{}, validationErr("company, position and date are required")
	}

	status := d.Status
	if status == "" {
		status = models.StatusSubmitted
	}
	if !status.Valid() {
		return models.Application{}, validationErr("unknown status " + string(status))
	}

	return models.Application{
		Company:   company,
		Position:  position,
		OfferLink: strings.TrimSpace(d.OfferLink),
		Status:    status,
		Date:      date,
		Notes:     strings.TrimSpace(d.Notes),
	}, nil
}
