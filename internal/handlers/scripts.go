package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"workshop/internal/common"
	"workshop/internal/events"
	"workshop/internal/models"
	"workshop/internal/scripts"
)

func (a *API) handleCreateScript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Code        string `json:"code"`
		Language    string `json:"language"`
		Visibility  string `json:"visibility"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	// Visibility arrives as the legacy "true"/"false" string; anything else
	// is rejected, absence means private.
	var isPublic bool
	switch req.Visibility {
	case "", "false":
		isPublic = false
	case "true":
		isPublic = true
	default:
		err := fmt.Errorf("%w: visibility must be \"true\" or \"false\"", common.ErrInvalidInput)
		respondError(w, http.StatusBadRequest, err)
		return
	}

	script, err := a.scripts.Create(r.Context(), bearerToken(r), req.Name, req.Description, req.Code, isPublic, req.Language)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	a.publishJSON(events.ScriptCreatedTopic, map[string]any{
		"script_id": script.ID,
		"author_id": script.AuthorID,
		"language":  script.Language,
		"public":    script.IsPublic,
	})

	respondJSON(w, http.StatusCreated, map[string]any{"script": script.ToView()})
}

func (a *API) handleGetScript(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("valid script id is required"))
		return
	}

	script, err := a.scripts.Get(r.Context(), bearerToken(r), id)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"script": script.ToView()})
}

func (a *API) handleDeleteScript(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("valid script id is required"))
		return
	}

	if err := a.scripts.Delete(r.Context(), bearerToken(r), id); err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	a.publishJSON(events.ScriptDeletedTopic, map[string]any{"script_id": id})
	respondJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (a *API) handleListScripts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var opts *scripts.Options
	if params.Has("language") || params.Has("author") || params.Has("limit") || params.Has("sort") {
		opts = &scripts.Options{
			Language: params.Get("language"),
			Author:   params.Get("author"),
			Sort:     params.Get("sort"),
		}
		if raw := params.Get("limit"); raw != "" {
			// A non-numeric limit counts as an unusable type and falls back
			// to the default page size rather than failing the request.
			if limit, err := strconv.Atoi(raw); err == nil {
				opts.Limit = &limit
			}
		}
	}

	list, err := a.scripts.List(r.Context(), params.Get("q"), opts, bearerToken(r))
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	views := make([]models.ScriptView, 0, len(list))
	for i := range list {
		views = append(views, list[i].ToView())
	}
	respondJSON(w, http.StatusOK, map[string]any{"scripts": views})
}
