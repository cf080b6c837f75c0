package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"codecanvas/backend/internal/preview"
)

// parseProjectID maps a malformed id to the merged not-found/forbidden
// refusal, same as an id that simply doesn't exist.
func parseProjectID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		fail(w, http.StatusNotFound, msgProjectDenied)
		return uuid.Nil, false
	}
	return id, true
}

// CreateProject inserts a project with the default code snippets and an empty
// document.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		Title  string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if req.Title == "" {
		fail(w, http.StatusBadRequest, "Project title is required")
		return
	}

	owner, found := h.resolveOwner(w, r, req.UserID)
	if !found {
		return
	}

	project, err := h.projects.Create(r.Context(), owner.ID, req.Title)
	if err != nil {
		log.Printf("Failed to create project: %v", err)
		fail(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	created(w, "Project created successfully", envelope{"projectId": project.ID})
}

// GetProjects lists the owner's projects in the store's natural order.
func (h *Handler) GetProjects(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	owner, found := h.resolveOwner(w, r, req.UserID)
	if !found {
		return
	}

	projects, err := h.projects.ByOwner(r.Context(), owner.ID)
	if err != nil {
		log.Printf("Failed to list projects: %v", err)
		fail(w, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}

	ok(w, "Projects fetched successfully", envelope{"projects": projects})
}

// GetProject fetches a single project through the owner-scoped lookup.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    string `json:"userId"`
		ProjectID string `json:"projId"`
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

	ok(w, "Project fetched successfully", envelope{"project": project})
}

// DeleteProject hard-deletes an owned project. No tombstone.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    string `json:"userId"`
		ProjectID string `json:"progId"`
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

	if err := h.projects.Delete(r.Context(), owner.ID, projectID); err != nil {
		failProject(w, err)
		return
	}

	ok(w, "Project deleted successfully", nil)
}

// UpdateProject overwrites the three code fields and pushes the recomposed
// preview document to any live-preview tabs on the project's channel.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    string `json:"userId"`
		ProjectID string `json:"projId"`
		HTMLCode  string `json:"htmlCode"`
		CSSCode   string `json:"cssCode"`
		JSCode    string `json:"jsCode"`
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

	if err := h.projects.UpdateCode(r.Context(), owner.ID, projectID, req.HTMLCode, req.CSSCode, req.JSCode); err != nil {
		failProject(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastPreview(projectID.String(), preview.Compose(req.HTMLCode, req.CSSCode, req.JSCode))
	}

	ok(w, "Project updated successfully", nil)
}
