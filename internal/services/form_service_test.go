package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtracker-app/jobtracker/internal/models"
)

func newTestForm(t *testing.T) (*FormService, *RecordService) {
	t.Helper()
	svc := NewRecordService(context.Background(), newTestKVStore(t))
	form := NewFormService(svc)
	svc.SetDraftNotifier(form)
	return form, svc
}

func TestFormService_StartsInCreatingMode(t *testing.T) {
	form, _ := newTestForm(t)

	d := form.Draft()
	assert.False(t, d.Editing())
	assert.Equal(t, models.StatusSubmitted, d.Status)
}

func TestFormService_SubmitEmptyCompanyIsValidationError(t *testing.T) {
	form, svc := newTestForm(t)

	form.SetFields(models.Draft{Position: "Dev", Date: "2024-01-02"})
	_, err := form.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, svc.List(), "collection size unchanged")
	assert.Equal(t, "Dev", form.Draft().Position, "draft kept so the user can fix it")
}

func TestFormService_SubmitCreatesThenResets(t *testing.T) {
	form, svc := newTestForm(t)

	form.SetFields(models.Draft{
		Company:  "Acme",
		Position: "Dev",
		Date:     "2024-01-02",
		Status:   models.StatusInterview,
	})
	app, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, models.StatusInterview, app.Status)

	require.Len(t, svc.List(), 1)
	d := form.Draft()
	assert.False(t, d.Editing())
	assert.Empty(t, d.Company)
}

func TestFormService_StartEditCopiesFields(t *testing.T) {
	form, svc := newTestForm(t)

	created, err := svc.Create(context.Background(), models.Draft{
		Company:  "Acme",
		Position: "Dev",
		Date:     "2024-01-02",
		Status:   models.StatusOffer,
		Notes:    "good vibes",
	})
	require.NoError(t, err)

	d, err := form.StartEdit(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, d.EditingID)
	assert.Equal(t, "Acme", d.Company)
	assert.Equal(t, models.StatusOffer, d.Status)
	assert.Equal(t, "good vibes", d.Notes)
}

func TestFormService_StartEditMissingID(t *testing.T) {
	form, _ := newTestForm(t)

	_, err := form.StartEdit("absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormService_SetFieldsKeepsEditingTarget(t *testing.T) {
	form, svc := newTestForm(t)

	created, err := svc.Create(context.Background(), models.Draft{
		Company: "Acme", Position: "Dev", Date: "2024-01-02",
	})
	require.NoError(t, err)
	_, err = form.StartEdit(created.ID)
	require.NoError(t, err)

	d := form.SetFields(models.Draft{
		EditingID: "someone-else", // ignored
		Company:   "Acme",
		Position:  "Senior Dev",
		Date:      "2024-01-02",
	})
	assert.Equal(t, created.ID, d.EditingID)
}

func TestFormService_SubmitInEditingModeUpdates(t *testing.T) {
	form, svc := newTestForm(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Draft{
		Company: "Acme", Position: "Dev", Date: "2024-01-02",
	})
	require.NoError(t, err)

	_, err = form.StartEdit(created.ID)
	require.NoError(t, err)
	form.SetFields(models.Draft{
		Company:  "Acme",
		Position: "Dev",
		Date:     "2024-01-02",
		Status:   models.StatusRejected,
	})

	app, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, app.ID)
	assert.Equal(t, models.StatusRejected, app.Status)

	require.Len(t, svc.List(), 1, "update, not create")
	assert.False(t, form.Draft().Editing())
}

func TestFormService_CancelReturnsToCreating(t *testing.T) {
	form, svc := newTestForm(t)

	created, err := svc.Create(context.Background(), models.Draft{
		Company: "Acme", Position: "Dev", Date: "2024-01-02",
	})
	require.NoError(t, err)
	_, err = form.StartEdit(created.ID)
	require.NoError(t, err)

	form.Reset()
	d := form.Draft()
	assert.False(t, d.Editing())
	assert.Empty(t, d.Company)
}
