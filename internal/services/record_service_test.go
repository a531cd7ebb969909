package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtracker-app/jobtracker/internal/database"
	"github.com/jobtracker-app/jobtracker/internal/models"
)

func newTestKVStore(t *testing.T) *database.KV {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "records.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	kv := database.NewKV(db)
	require.NoError(t, kv.Migrate(context.Background()))
	return kv
}

func validDraft() models.Draft {
	return models.Draft{
		Company:  "Groupe Tech",
		Position: "Backend Engineer",
		Date:     "2024-03-01",
		Status:   models.StatusSubmitted,
	}
}

func TestRecordService_CreatePersistsAcrossHydration(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()

	svc := NewRecordService(ctx, kv)
	created, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// A fresh service over the same store sees exactly one more record with
	// the submitted fields.
	reloaded := NewRecordService(ctx, kv)
	got := reloaded.List()
	require.Len(t, got, 1)
	assert.Equal(t, created, got[0])
}

func TestRecordService_CreateAssignsUniqueIDs(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()
	svc := NewRecordService(ctx, kv)

	a, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)
	b, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecordService_CreateTrimsAndValidates(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()
	svc := NewRecordService(ctx, kv)

	d := validDraft()
	d.Company = "   "
	_, err := svc.Create(ctx, d)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, svc.List(), "no mutation on validation failure")

	d = validDraft()
	d.Company = "  Acme  "
	d.Notes = " call back Monday "
	created, err := svc.Create(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Company)
	assert.Equal(t, "call back Monday", created.Notes)
}

func TestRecordService_CreateRejectsUnknownStatus(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()
	svc := NewRecordService(ctx, kv)

	d := validDraft()
	d.Status = "ghosted"
	_, err := svc.Create(ctx, d)
	assert.True(t, IsValidation(err))
}

func TestRecordService_UpdateChangesOnlyTarget(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()
	svc := NewRecordService(ctx, kv)

	first, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)
	second, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)

	d := validDraft()
	d.Position = "Staff Engineer"
	d.Status = models.StatusInterview
	updated, err := svc.Update(ctx, second.ID, d)
	require.NoError(t, err)

	assert.Equal(t, second.ID, updated.ID, "id is immutable")
	assert.Equal(t, "Staff Engineer", updated.Position)
	assert.Equal(t, models.StatusInterview, updated.Status)

	got, err := svc.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got, "other records untouched")
}

func TestRecordService_UpdateMissingID(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()
	svc := NewRecordService(ctx, kv)

	_, err := svc.Update(ctx, "absent", validDraft())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordService_DeleteRequiresConfirmation(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()
	svc := NewRecordService(ctx, kv)

	created, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Len(t, svc.List(), 1, "declining leaves state unchanged")

	require.NoError(t, svc.Delete(ctx, created.ID, true))
	assert.Empty(t, svc.List())
}

func TestRecordService_DeleteRemovesExactlyOne(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()
	svc := NewRecordService(ctx, kv)

	keep, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)
	drop, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, drop.ID, true))
	got := svc.List()
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].ID)

	assert.ErrorIs(t, svc.Delete(ctx, drop.ID, true), ErrNotFound)
}

func TestRecordService_DeleteClearsActiveEditDraft(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()
	svc := NewRecordService(ctx, kv)
	form := NewFormService(svc)
	svc.SetDraftNotifier(form)

	created, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)

	_, err = form.StartEdit(created.ID)
	require.NoError(t, err)
	require.True(t, form.Draft().Editing())

	require.NoError(t, svc.Delete(ctx, created.ID, true))
	assert.False(t, form.Draft().Editing(), "deleting the edit target resets to creating mode")
	assert.Empty(t, form.Draft().Company)
}

func TestRecordService_ClearAll(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()
	svc := NewRecordService(ctx, kv)
	form := NewFormService(svc)
	svc.SetDraftNotifier(form)

	_, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)
	created, err := svc.Create(ctx, validDraft())
	require.NoError(t, err)
	_, err = form.StartEdit(created.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ClearAll(ctx, false), ErrConfirmationRequired)
	assert.Len(t, svc.List(), 2)

	require.NoError(t, svc.ClearAll(ctx, true))
	assert.Empty(t, svc.List())
	assert.False(t, form.Draft().Editing())

	reloaded := NewRecordService(ctx, kv)
	assert.Empty(t, reloaded.List())
}

func TestRecordService_CorruptPersistedValueStartsEmpty(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Save(ctx, ApplicationsKey, []byte("{not json")))
	svc := NewRecordService(ctx, kv)
	assert.Empty(t, svc.List())
}

func TestRecordService_UnknownSchemaVersionStartsEmpty(t *testing.T) {
	kv := newTestKVStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Save(ctx, ApplicationsKey,
		[]byte(`{"schema_version":99,"applications":[{"id":"x"}]}`)))
	svc := NewRecordService(ctx, kv)
	assert.Empty(t, svc.List())
}
