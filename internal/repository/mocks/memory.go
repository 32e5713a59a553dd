package mocks

import (
	"sort"
	"strings"
	"sync"

	"github.com/steiza/a2docstore/internal/model"
	"github.com/steiza/a2docstore/internal/repository"
)

// MemoryDocumentRepository is an in-memory DocumentRepository for tests.
// Ids are assigned sequentially and never reused, matching the database.
type MemoryDocumentRepository struct {
	mu     sync.Mutex
	nextID int64
	docs   map[int64]*model.Document
}

var _ repository.DocumentRepository = (*MemoryDocumentRepository)(nil)

func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{
		nextID: 1,
		docs:   map[int64]*model.Document{},
	}
}

func (r *MemoryDocumentRepository) all() []*model.Document {
	docs := make([]*model.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		copied := *doc
		docs = append(docs, &copied)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].DateUploaded.Equal(docs[j].DateUploaded) {
			return docs[i].DateUploaded.After(docs[j].DateUploaded)
		}
		return docs[i].ID > docs[j].ID
	})
	return docs
}

func (r *MemoryDocumentRepository) Recent(limit int) ([]*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := r.all()
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func matches(doc *model.Document, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{doc.DocTitle, doc.DocDescription, doc.SourceOrg, doc.UploaderName} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (r *MemoryDocumentRepository) Search(term string, offset, limit int) ([]*model.Document, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []*model.Document
	for _, doc := range r.all() {
		if term == "" || matches(doc, term) {
			filtered = append(filtered, doc)
		}
	}

	count := len(filtered)
	if offset > len(filtered) {
		offset = len(filtered)
	}
	filtered = filtered[offset:]
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return filtered, count, nil
}

func (r *MemoryDocumentRepository) ByID(id int64) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (r *MemoryDocumentRepository) OrgNames() ([]string, error) {
	counts, err := r.OrgCounts()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(counts))
	for _, count := range counts {
		names = append(names, count.Value)
	}
	return names, nil
}

func (r *MemoryDocumentRepository) groupCounts(key func(*model.Document) string) []model.ValueCount {
	grouped := map[string]int{}
	for _, doc := range r.docs {
		grouped[key(doc)]++
	}

	counts := make([]model.ValueCount, 0, len(grouped))
	for value, count := range grouped {
		counts = append(counts, model.ValueCount{Value: value, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Value < counts[j].Value })
	return counts
}

func (r *MemoryDocumentRepository) OrgCounts() ([]model.ValueCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.groupCounts(func(doc *model.Document) string { return doc.SourceOrg }), nil
}

func (r *MemoryDocumentRepository) SubmitterCounts() ([]model.ValueCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.groupCounts(func(doc *model.Document) string { return doc.UploaderName }), nil
}

func (r *MemoryDocumentRepository) Create(doc *model.Document) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc.ID = r.nextID
	r.nextID++

	copied := *doc
	r.docs[doc.ID] = &copied
	return doc.ID, nil
}

func (r *MemoryDocumentRepository) Update(doc *model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.docs[doc.ID]
	if !ok {
		return repository.ErrDocumentNotFound
	}

	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *MemoryDocumentRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.docs[id]
	if !ok {
		return repository.ErrDocumentNotFound
	}

	delete(r.docs, id)
	return nil
}
