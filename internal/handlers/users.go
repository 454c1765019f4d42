package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/datatypes"

	"workshop/internal/auth"
)

func (a *API) handlePublicUser(w http.ResponseWriter, r *http.Request) {
	view, err := a.auth.PublicUser(r.Context(), chi.URLParam(r, "idOrPseudo"))
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": view})
}

func (a *API) handlePrivateUser(w http.ResponseWriter, r *http.Request) {
	view, err := a.auth.PrivateUser(r.Context(), bearerToken(r))
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": view})
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName      *string         `json:"first_name"`
		LastName       *string         `json:"last_name"`
		Bio            *string         `json:"bio"`
		Website        *string         `json:"website"`
		Avatar         *string         `json:"avatar"`
		Location       *string         `json:"location"`
		Birthday       *datatypes.Date `json:"birthday"`
		PublicEmail    *bool           `json:"public_email"`
		PublicName     *bool           `json:"public_name"`
		PublicBirthday *bool           `json:"public_birthday"`
		PublicLocation *bool           `json:"public_location"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	user, err := a.auth.UpdateProfile(r.Context(), bearerToken(r), auth.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Bio:            req.Bio,
		Website:        req.Website,
		Avatar:         req.Avatar,
		Location:       req.Location,
		Birthday:       req.Birthday,
		PublicEmail:    req.PublicEmail,
		PublicName:     req.PublicName,
		PublicBirthday: req.PublicBirthday,
		PublicLocation: req.PublicLocation,
	})
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": user.ToPrivate()})
}
