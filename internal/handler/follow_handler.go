package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialblog/internal/identity"
)

// ProfileFollow subscribes the logged-in user to the author. Following
// yourself or an author you already follow changes nothing and leads
// back to that profile.
func (h *Handlers) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth/login/", http.StatusFound)
		return
	}

	username := mux.Vars(r)["username"]

	author, created, err := h.Follows.Follow(r.Context(), user.UserID, username)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if !created {
		http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/follow/", http.StatusFound)
}

// ProfileUnfollow removes the edge; removing an absent edge is a no-op.
func (h *Handlers) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth/login/", http.StatusFound)
		return
	}

	username := mux.Vars(r)["username"]

	if _, err := h.Follows.Unfollow(r.Context(), user.UserID, username); err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, "/follow/", http.StatusFound)
}
