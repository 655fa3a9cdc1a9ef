package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadstack/qcatalog-backend/internal/model"
	"github.com/acadstack/qcatalog-backend/internal/storage"
	"github.com/acadstack/qcatalog-backend/internal/store"
)

func newTestService(t *testing.T) *CatalogService {
	t.Helper()
	gateway := storage.NewFileGateway(filepath.Join(t.TempDir(), "data.json"), zerolog.Nop())
	catalog, err := NewCatalogService(context.Background(), gateway, zerolog.Nop())
	require.NoError(t, err)
	return catalog
}

func TestCatalogLifecycle(t *testing.T) {
	catalog := newTestService(t)
	ctx := context.Background()

	branch, err := catalog.CreateBranch(ctx, "CS", "")
	require.NoError(t, err)
	semester, err := catalog.CreateSemester(ctx, branch.ID, 1)
	require.NoError(t, err)
	subject, err := catalog.CreateSubject(ctx, branch.ID, semester.ID, "Algorithms", "CS201")
	require.NoError(t, err)
	question, err := catalog.CreateQuestion(ctx, branch.ID, semester.ID, subject.ID, store.QuestionInput{
		Text: "What is Big-O?",
		Type: "Explanation",
		Year: 2023,
	})
	require.NoError(t, err)

	got, err := catalog.GetQuestion(ctx, branch.ID, semester.ID, subject.ID, question.QuestionID)
	require.NoError(t, err)
	assert.Equal(t, question, got)

	require.NoError(t, catalog.DeleteBranch(ctx, branch.ID))
	assert.Empty(t, catalog.ListBranches(ctx))

	var nf *store.NotFoundError
	_, err = catalog.GetBranch(ctx, branch.ID)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Branch", nf.Segment)

	// Fetching the question by its full path fails at the Branch segment.
	_, err = catalog.GetQuestion(ctx, branch.ID, semester.ID, subject.ID, question.QuestionID)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Branch", nf.Segment)
}

func TestMutationsPersistAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := context.Background()

	gateway := storage.NewFileGateway(path, zerolog.Nop())
	catalog, err := NewCatalogService(ctx, gateway, zerolog.Nop())
	require.NoError(t, err)

	branch, err := catalog.CreateBranch(ctx, "EE", "electronics")
	require.NoError(t, err)

	// A second service over the same file sees the saved state.
	reopened, err := NewCatalogService(ctx, storage.NewFileGateway(path, zerolog.Nop()), zerolog.Nop())
	require.NoError(t, err)

	got, err := reopened.GetBranch(ctx, branch.ID)
	require.NoError(t, err)
	assert.Equal(t, "EE", got.Name)
}

// failingGateway loads an empty document but refuses every save.
type failingGateway struct{}

func (failingGateway) Load(ctx context.Context) (*model.Document, error) {
	return model.EmptyDocument(), nil
}

func (failingGateway) Save(ctx context.Context, doc *model.Document) error {
	return errors.New("disk full")
}

func TestSaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	catalog, err := NewCatalogService(ctx, failingGateway{}, zerolog.Nop())
	require.NoError(t, err)

	_, err = catalog.CreateBranch(ctx, "CS", "")
	require.Error(t, err)

	// The failed mutation must not be visible: unsaved state is not
	// committed.
	assert.Empty(t, catalog.ListBranches(ctx))
}

func TestValidationFailureLeavesDocumentUnchanged(t *testing.T) {
	catalog := newTestService(t)
	ctx := context.Background()

	_, err := catalog.CreateBranch(ctx, "", "")
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, catalog.ListBranches(ctx))
}
