package handlers

import (
	"encoding/json"
	"net/http"

	"codecanvas/backend/internal/models"
)

// SaveDocument overwrites the document content and title of an owned project.
// This path never touches the code fields.
func (h *Handler) SaveDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    string `json:"userId"`
		ProjectID string `json:"projectId"`
		Content   string `json:"content"`
		Title     string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	owner, found := h.resolveOwner(w, r, req.UserID)
	if !found {
		return
	}
	projectID, valid := parseProjectID(w, req.ProjectID)
	if !valid {
		return
	}

	if err := h.projects.SaveDocument(r.Context(), owner.ID, projectID, req.Content, req.Title); err != nil {
		failProject(w, err)
		return
	}

	ok(w, "Document saved successfully", nil)
}

// GetDocument returns the document sub-resource, falling back to the empty
// content / placeholder title defaults when the project has never saved one.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    string `json:"userId"`
		ProjectID string `json:"projectId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	owner, found := h.resolveOwner(w, r, req.UserID)
	if !found {
		return
	}
	projectID, valid := parseProjectID(w, req.ProjectID)
	if !valid {
		return
	}

	project, err := h.projects.FindOwned(r.Context(), owner.ID, projectID)
	if err != nil {
		failProject(w, err)
		return
	}

	doc := models.Document{Content: project.DocumentContent, Title: project.DocumentTitle}
	if doc.Title == "" {
		doc.Title = models.DefaultDocumentTitle
	}

	ok(w, "Document fetched successfully", envelope{"document": doc})
}
