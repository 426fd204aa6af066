package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"socialblog/internal/models"
)

type SignupForm struct {
	Username string `validate:"required,min=3,max=150"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Signup registers a new account and logs it in right away.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "signup.html", map[string]any{
			"Form":   SignupForm{},
			"Errors": map[string]string{},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.serverError(w, r, err)
		return
	}

	form := SignupForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusOK, "signup.html", map[string]any{
			"Form":   form,
			"Errors": h.validationErrors(err),
		})
		return
	}

	user := &models.User{Username: form.Username, Email: form.Email}
	if err := h.UserRepo.CreateUser(r.Context(), user, form.Password); err != nil {
		h.render(w, r, http.StatusOK, "signup.html", map[string]any{
			"Form":   form,
			"Errors": map[string]string{"Form": "Username or email already taken."},
		})
		return
	}

	if err := h.Sessions.Issue(w, user); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "login.html", map[string]any{
			"Form":   LoginForm{},
			"Errors": map[string]string{},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.serverError(w, r, err)
		return
	}

	form := LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusOK, "login.html", map[string]any{
			"Form":   form,
			"Errors": h.validationErrors(err),
		})
		return
	}

	user, err := h.UserRepo.VerifyPassword(r.Context(), form.Username, form.Password)
	if err != nil {
		h.render(w, r, http.StatusOK, "login.html", map[string]any{
			"Form":   form,
			"Errors": map[string]string{"Form": "Wrong username or password."},
		})
		return
	}

	if err := h.Sessions.Issue(w, user); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
