package service

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/steiza/a2docstore/internal/model"
	"github.com/steiza/a2docstore/internal/repository"
	"github.com/steiza/a2docstore/internal/repository/mocks"
	"github.com/steiza/a2docstore/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocumentService(t *testing.T) (*DocumentService, *mocks.MemoryDocumentRepository) {
	t.Helper()

	repo := mocks.NewMemoryDocumentRepository()
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)

	return NewDocumentService(repo, store), repo
}

func TestDocumentService_Add(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	doc := &model.Document{
		DocTitle:       "Report A",
		DocDescription: "a description",
		SourceOrg:      "Agency X",
	}

	id, err := svc.Add(doc, "a.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	stored, err := repo.ByID(id)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", stored.Filename)
	assert.Equal(t, model.DefaultUploaderName, stored.UploaderName)
	assert.Equal(t, model.DefaultUploaderEmail, stored.UploaderEmail)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	assert.True(t, stored.DateUploaded.Equal(today))

	f, err := svc.Open(id, "a.pdf")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	assert.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
}

func TestDocumentService_AddKeepsUploaderWhenGiven(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	doc := &model.Document{
		DocTitle:       "Report A",
		DocDescription: "a description",
		SourceOrg:      "Agency X",
		UploaderName:   "Pat Smith",
		UploaderEmail:  "pat@example.com",
	}

	id, err := svc.Add(doc, "a.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	stored, err := repo.ByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Pat Smith", stored.UploaderName)
	assert.Equal(t, "pat@example.com", stored.UploaderEmail)
}

func TestDocumentService_Delete(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	doc := &model.Document{DocTitle: "Report A", DocDescription: "d", SourceOrg: "Agency X"}
	id, err := svc.Add(doc, "a.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	deleted, err := svc.Delete(id)
	require.NoError(t, err)
	assert.Equal(t, "Report A", deleted.DocTitle)

	_, err = repo.ByID(id)
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)

	_, err = svc.Open(id, "a.pdf")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestDocumentService_DeleteUnknownID(t *testing.T) {
	svc, _ := newTestDocumentService(t)

	_, err := svc.Delete(42)
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
}

func TestDocumentService_IDsNotReused(t *testing.T) {
	svc, _ := newTestDocumentService(t)

	first := &model.Document{DocTitle: "Report A", DocDescription: "d", SourceOrg: "Agency X"}
	id1, err := svc.Add(first, "a.pdf", strings.NewReader("a"))
	require.NoError(t, err)

	_, err = svc.Delete(id1)
	require.NoError(t, err)

	second := &model.Document{DocTitle: "Report B", DocDescription: "d", SourceOrg: "Agency X"}
	id2, err := svc.Add(second, "b.pdf", strings.NewReader("b"))
	require.NoError(t, err)

	assert.Greater(t, id2, id1)
}

func TestDocumentService_UpdateLeavesFileAlone(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	doc := &model.Document{DocTitle: "Report A", DocDescription: "d", SourceOrg: "Agency X"}
	id, err := svc.Add(doc, "a.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)

	stored, err := repo.ByID(id)
	require.NoError(t, err)

	requested, err := model.ParseDate("01/15/2014")
	require.NoError(t, err)
	stored.DocTitle = "Report A (amended)"
	stored.DateRequested = requested

	require.NoError(t, svc.Update(stored))

	updated, err := repo.ByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Report A (amended)", updated.DocTitle)
	assert.Equal(t, "01/15/2014", updated.DateRequestedString())
	assert.Equal(t, "a.pdf", updated.Filename)

	f, err := svc.Open(id, "a.pdf")
	require.NoError(t, err)
	f.Close()
}
