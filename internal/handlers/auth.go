package handlers

import (
	"net/http"

	"workshop/internal/events"
)

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		Confirmation string `json:"confirmation"`
		Pseudo       string `json:"pseudo"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	user, err := a.auth.Register(r.Context(), req.Email, req.Password, req.Confirmation, req.Pseudo)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	a.publishJSON(events.UserRegisteredTopic, map[string]any{
		"user_id": user.ID,
		"pseudo":  user.Pseudo,
	})

	respondJSON(w, http.StatusCreated, map[string]any{"user": user.ToPrivate()})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	token, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	a.setTokenCookie(w, token, a.auth.Sessions().TTL())
	respondJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	revoked, err := a.auth.Logout(r.Context(), bearerToken(r))
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	a.setTokenCookie(w, "", -1)
	respondJSON(w, http.StatusOK, map[string]any{"revoked": revoked})
}

func (a *API) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	deleted, err := a.auth.DeleteAccount(r.Context(), bearerToken(r), req.Password)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	a.setTokenCookie(w, "", -1)
	respondJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}
