package services

import (
	"context"
	"sync"

	"github.com/jobtracker-app/jobtracker/internal/models"
)

// FormService manages the create/edit form's draft state. It runs in one of
// two modes: creating (no target id) and editing (target id set). Submit
// validates the required fields and dispatches create or update into the
// record store, then resets to creating.
type FormService struct {
	mu      sync.Mutex
	records *RecordService
	draft   models.Draft
}

func NewFormService(records *RecordService) *FormService {
	return &FormService{
		records: records,
		draft:   emptyDraft(),
	}
}

func emptyDraft() models.Draft {
	return models.Draft{Status: models.StatusSubmitted}
}

// Draft returns the current draft.
func (f *FormService) Draft() models.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// StartEdit copies the target record's fields into the draft and switches to
// editing mode.
func (f *FormService) StartEdit(id string) (models.Draft, error) {
	app, err := f.records.Get(id)
	if err != nil {
		return models.Draft{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.Draft{
		EditingID: app.ID,
		Company:   app.Company,
		Position:  app.Position,
		OfferLink: app.OfferLink,
		Status:    app.Status,
		Date:      app.Date,
		Notes:     app.Notes,
	}
	return f.draft, nil
}

// SetFields replaces the draft's field values with the form's current state.
// The editing target is kept; the form cannot retarget an edit this way.
func (f *FormService) SetFields(d models.Draft) models.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.EditingID = f.draft.EditingID
	if d.Status == "" {
		d.Status = models.StatusSubmitted
	}
	f.draft = d
	return f.draft
}

// Reset clears the draft and returns to creating mode.
func (f *FormService) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = emptyDraft()
}

// Submit dispatches create or update per the current mode. On validation
// failure no mutation is performed and the draft is kept so the user can fix
// it; on success the draft resets to creating.
func (f *FormService) Submit(ctx context.Context) (models.Application, error) {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	var (
		app models.Application
		err error
	)
	if draft.Editing() {
		app, err = f.records.Update(ctx, draft.EditingID, draft)
	} else {
		app, err = f.records.Create(ctx, draft)
	}
	if err != nil {
		return models.Application{}, err
	}

	f.Reset()
	return app, nil
}

// ClearIfEditing resets the draft when the deleted record was its target.
func (f *FormService) ClearIfEditing(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft.EditingID == id {
		f.draft = emptyDraft()
	}
}

// Clear unconditionally resets the draft.
func (f *FormService) Clear() {
	f.Reset()
}
