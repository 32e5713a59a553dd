package service

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/steiza/a2docstore/internal/model"
	"github.com/steiza/a2docstore/internal/repository"
	"github.com/steiza/a2docstore/internal/storage"
)

// DocumentService pairs the catalog with file storage. Creation and deletion
// each touch both sides in two non-atomic steps; a crash between them leaves
// an orphaned row or directory and no compensation runs afterwards.
type DocumentService struct {
	repo  repository.DocumentRepository
	store storage.Store
}

func NewDocumentService(repo repository.DocumentRepository, store storage.Store) *DocumentService {
	return &DocumentService{
		repo:  repo,
		store: store,
	}
}

// Add inserts the catalog row first to obtain the id, then writes the file
// under that id. If the file write fails the row is removed best-effort.
func (s *DocumentService) Add(doc *model.Document, filename string, file io.Reader) (int64, error) {
	doc.Filename = filename

	now := time.Now()
	doc.DateUploaded = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if doc.UploaderName == "" {
		doc.UploaderName = model.DefaultUploaderName
	}
	if doc.UploaderEmail == "" {
		doc.UploaderEmail = model.DefaultUploaderEmail
	}

	id, err := s.repo.Create(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to create document record: %w", err)
	}

	err = s.store.Write(id, filename, file)
	if err != nil {
		delErr := s.repo.Delete(id)
		if delErr != nil {
			slog.Error("failed to delete document record during cleanup", "error", delErr, "id", id)
		}
		return 0, fmt.Errorf("failed to store document file: %w", err)
	}

	return id, nil
}

func (s *DocumentService) Recent(limit int) ([]*model.Document, error) {
	return s.repo.Recent(limit)
}

func (s *DocumentService) Search(term string, offset, limit int) ([]*model.Document, int, error) {
	return s.repo.Search(term, offset, limit)
}

func (s *DocumentService) ByID(id int64) (*model.Document, error) {
	return s.repo.ByID(id)
}

func (s *DocumentService) OrgNames() ([]string, error) {
	return s.repo.OrgNames()
}

func (s *DocumentService) OrgCounts() ([]model.ValueCount, error) {
	return s.repo.OrgCounts()
}

func (s *DocumentService) SubmitterCounts() ([]model.ValueCount, error) {
	return s.repo.SubmitterCounts()
}

// Update rewrites a record's metadata. The stored file is untouched.
func (s *DocumentService) Update(doc *model.Document) error {
	err := s.repo.Update(doc)
	if err != nil {
		return fmt.Errorf("failed to update document record: %w", err)
	}
	return nil
}

// Delete removes the storage directory first, then the catalog row, and
// returns the deleted record. Storage-then-row matches the original ordering.
func (s *DocumentService) Delete(id int64) (*model.Document, error) {
	doc, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}

	err = s.store.Delete(id)
	if err != nil {
		return nil, err
	}

	err = s.repo.Delete(id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete document record: %w", err)
	}

	return doc, nil
}

// Open streams back a stored file.
func (s *DocumentService) Open(id int64, filename string) (io.ReadCloser, error) {
	return s.store.Open(id, filename)
}
