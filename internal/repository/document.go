package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/steiza/a2docstore/internal/model"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
)

type DocumentRepository interface {
	Recent(limit int) ([]*model.Document, error)
	Search(term string, offset, limit int) ([]*model.Document, int, error)
	ByID(id int64) (*model.Document, error)
	OrgNames() ([]string, error)
	OrgCounts() ([]model.ValueCount, error)
	SubmitterCounts() ([]model.ValueCount, error)
	Create(doc *model.Document) (int64, error)
	Update(doc *model.Document) error
	Delete(id int64) error
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *documentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Recent(limit int) ([]*model.Document, error) {
	var docs []*model.Document
	query := `SELECT * FROM docs ORDER BY date_uploaded DESC, id DESC LIMIT $1`

	err := r.db.Select(&docs, query, limit)
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// Search returns one page of documents matching term, newest first, plus the
// total match count across all pages. An empty term matches every document.
// Matching is a case-insensitive substring test OR-combined across title,
// description, source org, and uploader name.
func (r *documentRepository) Search(term string, offset, limit int) ([]*model.Document, int, error) {
	where := ""
	args := []any{}

	if term != "" {
		where = ` WHERE LOWER(doc_title) LIKE $1 OR LOWER(doc_description) LIKE $1 OR LOWER(source_org) LIKE $1 OR LOWER(uploader_name) LIKE $1`
		args = append(args, "%"+strings.ToLower(term)+"%")
	}

	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM docs`+where, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT * FROM docs%s ORDER BY date_uploaded DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	var docs []*model.Document
	err = r.db.Select(&docs, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return docs, count, nil
}

func (r *documentRepository) ByID(id int64) (*model.Document, error) {
	doc := &model.Document{}
	query := `SELECT * FROM docs WHERE id = $1`

	err := r.db.Get(doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *documentRepository) OrgNames() ([]string, error) {
	var names []string
	query := `SELECT source_org FROM docs GROUP BY source_org ORDER BY source_org`

	err := r.db.Select(&names, query)
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *documentRepository) OrgCounts() ([]model.ValueCount, error) {
	var counts []model.ValueCount
	query := `SELECT source_org AS value, COUNT(*) AS count FROM docs GROUP BY source_org ORDER BY source_org`

	err := r.db.Select(&counts, query)
	if err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *documentRepository) SubmitterCounts() ([]model.ValueCount, error) {
	var counts []model.ValueCount
	query := `SELECT uploader_name AS value, COUNT(*) AS count FROM docs GROUP BY uploader_name ORDER BY uploader_name`

	err := r.db.Select(&counts, query)
	if err != nil {
		return nil, err
	}

	return counts, nil
}

// Create inserts a new row and returns the system-assigned id. Ids are
// assigned by the database and never reused after deletion. RETURNING keeps
// the insert portable across sqlite and postgres, where LastInsertId is not.
func (r *documentRepository) Create(doc *model.Document) (int64, error) {
	query := `INSERT INTO docs (doc_title, doc_description, source_org, tracking_number, date_requested, date_received, uploader_name, uploader_email, filename, date_uploaded)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	var id int64
	err := r.db.Get(&id, query,
		doc.DocTitle,
		doc.DocDescription,
		doc.SourceOrg,
		doc.TrackingNumber,
		doc.DateRequested,
		doc.DateReceived,
		doc.UploaderName,
		doc.UploaderEmail,
		doc.Filename,
		doc.DateUploaded,
	)
	if err != nil {
		return 0, err
	}

	doc.ID = id
	return id, nil
}

// Update rewrites the metadata of an existing row. The stored filename and
// date_uploaded are deliberately left untouched.
func (r *documentRepository) Update(doc *model.Document) error {
	query := `UPDATE docs SET doc_title = $1, doc_description = $2, source_org = $3, tracking_number = $4, date_requested = $5, date_received = $6, uploader_name = $7, uploader_email = $8 WHERE id = $9`

	res, err := r.db.Exec(query,
		doc.DocTitle,
		doc.DocDescription,
		doc.SourceOrg,
		doc.TrackingNumber,
		doc.DateRequested,
		doc.DateReceived,
		doc.UploaderName,
		doc.UploaderEmail,
		doc.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func (r *documentRepository) Delete(id int64) error {
	query := `DELETE FROM docs WHERE id = $1`

	res, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}
