package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialblog/internal/identity"
)

type CommentForm struct {
	Text string `validate:"required"`
}

// AddComment attaches a comment by the logged-in actor to the post and
// always leads back to the detail page. An empty text creates nothing.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth/login/", http.StatusFound)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		h.serverError(w, r, err)
		return
	}

	form := CommentForm{Text: r.PostFormValue("text")}
	if err := h.Validate.Struct(form); err == nil {
		if _, err := h.Comments.AddComment(r.Context(), postID, user.UserID, form.Text); err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	http.Redirect(w, r, "/posts/"+postID+"/", http.StatusFound)
}
