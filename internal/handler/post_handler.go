package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"

	"socialblog/internal/identity"
	"socialblog/internal/models"
	"socialblog/internal/service"
)

type PostForm struct {
	Text    string `validate:"required"`
	GroupID string
}

// parsePostForm reads the submitted text/group plus the optional image
// file. Plain urlencoded submissions (no file input) are accepted too.
func (h *Handlers) parsePostForm(r *http.Request) (PostForm, multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return PostForm{}, nil, nil, err
		}
		if err := r.ParseForm(); err != nil {
			return PostForm{}, nil, nil, err
		}
	}

	form := PostForm{
		Text:    r.PostFormValue("text"),
		GroupID: r.PostFormValue("group"),
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nil, nil, nil
		}
		return PostForm{}, nil, nil, err
	}

	return form, file, header, nil
}

func (form PostForm) groupID() *string {
	if form.GroupID == "" {
		return nil
	}
	return &form.GroupID
}

func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, form PostForm, fieldErrors map[string]string, isEdit bool, post *models.Post) {
	groups, err := h.GroupRepo.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "create_post.html", map[string]any{
		"Form":   form,
		"Errors": fieldErrors,
		"Groups": groups,
		"IsEdit": isEdit,
		"Post":   post,
	})
}

// PostDetail shows one post with its comments, newest first.
func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	comments, err := h.CommentRepo.ListByPost(r.Context(), postID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	authorPostCount, err := h.UserRepo.CountPostsByAuthor(r.Context(), post.AuthorID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post_detail.html", map[string]any{
		"Post":            post,
		"Comments":        comments,
		"AuthorPostCount": authorPostCount,
	})
}

// PostCreate shows and accepts the new-post form. The logged-in actor
// always becomes the author.
func (h *Handlers) PostCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth/login/", http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		h.renderPostForm(w, r, PostForm{}, nil, false, nil)
		return
	}

	form, file, header, err := h.parsePostForm(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	if err := h.Validate.Struct(form); err != nil {
		h.renderPostForm(w, r, form, h.validationErrors(err), false, nil)
		return
	}

	req := service.CreatePostRequest{
		AuthorID: user.UserID,
		Text:     form.Text,
		GroupID:  form.groupID(),
	}
	if file != nil {
		req.Image = file
		req.ImageName = header.Filename
		req.ImageSize = header.Size
	}

	if _, err := h.PostService.CreatePost(r.Context(), req); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusFound)
}

// PostEdit lets the author rework a post. Anyone else lands on the
// read-only detail view with no error surfaced.
func (h *Handlers) PostEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth/login/", http.StatusFound)
		return
	}

	postID := mux.Vars(r)["id"]

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if post.AuthorID != user.UserID {
		http.Redirect(w, r, "/posts/"+postID+"/", http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		form := PostForm{Text: post.Text}
		if post.GroupID != nil {
			form.GroupID = *post.GroupID
		}
		h.renderPostForm(w, r, form, nil, true, post)
		return
	}

	form, file, header, err := h.parsePostForm(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	if err := h.Validate.Struct(form); err != nil {
		h.renderPostForm(w, r, form, h.validationErrors(err), true, post)
		return
	}

	req := service.UpdatePostRequest{
		PostID:   postID,
		AuthorID: user.UserID,
		Text:     form.Text,
		GroupID:  form.groupID(),
	}
	if file != nil {
		req.Image = file
		req.ImageName = header.Filename
		req.ImageSize = header.Size
	}

	if _, err := h.PostService.UpdatePost(r.Context(), req); err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, "/posts/"+postID+"/", http.StatusFound)
}
