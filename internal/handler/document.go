package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/steiza/a2docstore/internal/markdown"
	"github.com/steiza/a2docstore/internal/model"
	"github.com/steiza/a2docstore/internal/repository"
	"github.com/steiza/a2docstore/internal/service"
	"github.com/steiza/a2docstore/internal/storage"
	"github.com/steiza/a2docstore/internal/ui"
)

const (
	recentLimit    = 10
	searchPageSize = 20

	maxUploadMemory = 32 << 20 // form parsing buffer; larger files spill to disk
)

type DocumentHandler struct {
	documentService *service.DocumentService
	markdown        *markdown.Renderer
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		markdown:        markdown.NewRenderer(),
	}
}

type indexData struct {
	baseData
	Docs []*model.Document
}

func (h *DocumentHandler) Index(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documentService.Recent(recentLimit)
	if err != nil {
		slog.Error("failed to get recent documents", "error", err)
		http.Error(w, "Failed to load documents", http.StatusInternalServerError)
		return
	}

	data := indexData{baseData: newBaseData(r), Docs: docs}
	data.Notification = popNotification(w, r)

	ui.Render(w, r, "index.html", data)
}

type addData struct {
	baseData
	OrgNames []string
}

func (h *DocumentHandler) AddPage(w http.ResponseWriter, r *http.Request) {
	orgNames, err := h.documentService.OrgNames()
	if err != nil {
		slog.Error("failed to get org names", "error", err)
		http.Error(w, "Failed to load organizations", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, "add.html", addData{baseData: newBaseData(r), OrgNames: orgNames})
}

func (h *DocumentHandler) Add(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	doc := &model.Document{}
	ok := h.applyFormFields(w, r, doc)
	if !ok {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Request missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	id, err := h.documentService.Add(doc, header.Filename, file)
	if err != nil {
		slog.Error("failed to add document", "error", err, "title", doc.DocTitle)
		http.Error(w, "Failed to add document", http.StatusInternalServerError)
		return
	}

	slog.Info("document added", "id", id, "title", doc.DocTitle, "org", doc.SourceOrg)
	setNotification(w, "Document added; thanks!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type searchData struct {
	baseData
	Query      string
	Count      int
	Docs       []*model.Document
	HasPrev    bool
	PrevOffset int
	HasNext    bool
	NextOffset int
}

func (h *DocumentHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	// A garbage or negative offset falls back to the first page
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			offset = n
		}
	}

	docs, count, err := h.documentService.Search(query, offset, searchPageSize)
	if err != nil {
		slog.Error("search failed", "error", err, "query", query)
		http.Error(w, "Search failed", http.StatusInternalServerError)
		return
	}

	data := searchData{
		baseData: newBaseData(r),
		Query:    query,
		Count:    count,
		Docs:     docs,
	}
	if offset > 0 {
		data.HasPrev = true
		data.PrevOffset = offset - searchPageSize
		if data.PrevOffset < 0 {
			data.PrevOffset = 0
		}
	}
	if offset+searchPageSize < count {
		data.HasNext = true
		data.NextOffset = offset + searchPageSize
	}

	ui.Render(w, r, "search.html", data)
}

type viewData struct {
	baseData
	Doc             *model.Document
	DescriptionHTML template.HTML
}

func (h *DocumentHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}

	doc, err := h.documentService.ByID(id)
	if errors.Is(err, repository.ErrDocumentNotFound) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get document", "error", err, "id", id)
		http.Error(w, "Failed to load document", http.StatusInternalServerError)
		return
	}

	descriptionHTML, err := h.markdown.Render(doc.DocDescription)
	if err != nil {
		slog.Warn("failed to render description", "error", err, "id", id)
		descriptionHTML = template.HTML(template.HTMLEscapeString(doc.DocDescription))
	}

	ui.Render(w, r, "view.html", viewData{
		baseData:        newBaseData(r),
		Doc:             doc,
		DescriptionHTML: descriptionHTML,
	})
}

type editData struct {
	baseData
	Doc      *model.Document
	OrgNames []string
}

func (h *DocumentHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}

	doc, err := h.documentService.ByID(id)
	if errors.Is(err, repository.ErrDocumentNotFound) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get document", "error", err, "id", id)
		http.Error(w, "Failed to load document", http.StatusInternalServerError)
		return
	}

	orgNames, err := h.documentService.OrgNames()
	if err != nil {
		slog.Error("failed to get org names", "error", err)
		http.Error(w, "Failed to load organizations", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, "edit.html", editData{baseData: newBaseData(r), Doc: doc, OrgNames: orgNames})
}

func (h *DocumentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}

	doc, err := h.documentService.ByID(id)
	if errors.Is(err, repository.ErrDocumentNotFound) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get document", "error", err, "id", id)
		http.Error(w, "Failed to load document", http.StatusInternalServerError)
		return
	}

	ok := h.applyFormFields(w, r, doc)
	if !ok {
		return
	}

	err = h.documentService.Update(doc)
	if err != nil {
		slog.Error("failed to update document", "error", err, "id", id)
		http.Error(w, "Failed to update document", http.StatusInternalServerError)
		return
	}

	slog.Info("document updated", "id", id)
	setNotification(w, "Document updated; thanks!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	docID := r.FormValue("doc_id")
	if docID == "" {
		http.Error(w, "Bad request, no doc_id", http.StatusBadRequest)
		return
	}

	id, err := strconv.ParseInt(docID, 10, 64)
	if err != nil {
		http.Error(w, "Bad request, invalid doc_id", http.StatusBadRequest)
		return
	}

	doc, err := h.documentService.Delete(id)
	if errors.Is(err, repository.ErrDocumentNotFound) || errors.Is(err, storage.ErrFileNotFound) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to delete document", "error", err, "id", id)
		http.Error(w, "Failed to delete document", http.StatusInternalServerError)
		return
	}

	slog.Info("document deleted", "id", id, "title", doc.DocTitle)
	setNotification(w, fmt.Sprintf("Deleted document: %s", doc.DocTitle))

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	if err != nil {
		slog.Error("failed to write delete response", "error", err)
	}
}

type orgsData struct {
	baseData
	Counts []model.ValueCount
}

func (h *DocumentHandler) Orgs(w http.ResponseWriter, r *http.Request) {
	counts, err := h.documentService.OrgCounts()
	if err != nil {
		slog.Error("failed to get org counts", "error", err)
		http.Error(w, "Failed to load organizations", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, "orgs.html", orgsData{baseData: newBaseData(r), Counts: counts})
}

func (h *DocumentHandler) Submitters(w http.ResponseWriter, r *http.Request) {
	counts, err := h.documentService.SubmitterCounts()
	if err != nil {
		slog.Error("failed to get submitter counts", "error", err)
		http.Error(w, "Failed to load submitters", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, "submitters.html", orgsData{baseData: newBaseData(r), Counts: counts})
}

// applyFormFields maps the add/edit form onto a record: required free-text
// fields, optional tracking number, and dates in the fixed format. On a
// client error it writes the 4xx response and returns false.
func (h *DocumentHandler) applyFormFields(w http.ResponseWriter, r *http.Request, doc *model.Document) bool {
	for _, field := range []struct {
		name string
		dest *string
	}{
		{"doc_title", &doc.DocTitle},
		{"doc_description", &doc.DocDescription},
		{"source_org", &doc.SourceOrg},
	} {
		value := r.FormValue(field.name)
		if value == "" {
			http.Error(w, "Request missing required field: "+field.name, http.StatusBadRequest)
			return false
		}
		*field.dest = value
	}

	doc.TrackingNumber = nil
	if tracking := r.FormValue("tracking_number"); tracking != "" {
		doc.TrackingNumber = &tracking
	}

	dateRequested, err := model.ParseDate(r.FormValue("date_requested"))
	if err != nil {
		http.Error(w, "Invalid date_requested, expected MM/DD/YYYY", http.StatusBadRequest)
		return false
	}
	doc.DateRequested = dateRequested

	dateReceived, err := model.ParseDate(r.FormValue("date_received"))
	if err != nil {
		http.Error(w, "Invalid date_received, expected MM/DD/YYYY", http.StatusBadRequest)
		return false
	}
	doc.DateReceived = dateReceived

	doc.UploaderName = r.FormValue("uploader_name")
	if doc.UploaderName == "" {
		doc.UploaderName = model.DefaultUploaderName
	}

	doc.UploaderEmail = r.FormValue("uploader_email")
	if doc.UploaderEmail == "" {
		doc.UploaderEmail = model.DefaultUploaderEmail
	}

	return true
}
