package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialblog/internal/identity"
	"socialblog/internal/pagination"
)

// Index serves the global feed. Rendered pages are cached per page
// number for a short TTL; within the window a new post does not change
// the served bytes. Any cache failure falls back to a direct render.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageNumber(r)

	if body, ok := h.Cache.Get(r.Context(), page); ok {
		writeHTML(w, http.StatusOK, body)
		return
	}

	posts, err := h.Feed.Global(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	body, err := h.renderBytes(r, "index.html", map[string]any{
		"Page": pagination.Paginate(posts, page),
	})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Cache.Set(r.Context(), page, body)
	writeHTML(w, http.StatusOK, body)
}

// GroupPosts serves the feed of a single group, 404 on unknown slug.
func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	group, posts, err := h.Feed.Group(r.Context(), slug)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "group_list.html", map[string]any{
		"Group": group,
		"Page":  pagination.Paginate(posts, pagination.PageNumber(r)),
	})
}

// Profile serves one author's feed plus the "is the current user
// following this author" flag.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	author, posts, err := h.Feed.Profile(r.Context(), username)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	following := false
	if user, ok := identity.CurrentUser(r); ok {
		following, err = h.Follows.IsFollowing(r.Context(), user.UserID, author.UserID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
	}

	followerCount, err := h.Follows.CountFollowers(r.Context(), author.UserID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "profile.html", map[string]any{
		"Author":        author,
		"Following":     following,
		"FollowerCount": followerCount,
		"Page":          pagination.Paginate(posts, pagination.PageNumber(r)),
	})
}

// FollowIndex serves the subscription feed of the logged-in user.
func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth/login/", http.StatusFound)
		return
	}

	posts, err := h.Feed.Subscriptions(r.Context(), user.UserID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "follow.html", map[string]any{
		"Page": pagination.Paginate(posts, pagination.PageNumber(r)),
	})
}
