package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"socialblog/internal/cache"
	"socialblog/internal/config"
	"socialblog/internal/identity"
	"socialblog/internal/repository"
	"socialblog/internal/service"
	"socialblog/web"
)

type Handlers struct {
	Feed        service.FeedService
	PostService service.PostService
	Comments    service.CommentService
	Follows     service.FollowService
	UserRepo    repository.UserRepository
	GroupRepo   repository.GroupRepository
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	Cache       cache.PageCache
	Sessions    *identity.Sessions
	Cfg         *config.Config
	Validate    *validator.Validate
	Logger      *zap.Logger
	Templates   map[string]*template.Template
}

func NewHandlers(repo *repository.Repository, services *service.Service, pageCache cache.PageCache,
	sessions *identity.Sessions, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		Feed:        services.Feed,
		PostService: services.Post,
		Comments:    services.Comment,
		Follows:     services.Follow,
		UserRepo:    repo.User,
		GroupRepo:   repo.Group,
		PostRepo:    repo.Post,
		CommentRepo: repo.Comment,
		Cache:       pageCache,
		Sessions:    sessions,
		Cfg:         cfg,
		Validate:    validator.New(),
		Logger:      logger,
		Templates:   MustTemplates(),
	}
}

// pages that stand alone next to base.html and post_list.html
var pageNames = []string{
	"index.html", "group_list.html", "profile.html", "post_detail.html",
	"create_post.html", "follow.html", "login.html", "signup.html",
	"404.html", "500.html",
}

// MustTemplates parses every page against the shared layout.
func MustTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		templates[name] = template.Must(template.ParseFS(web.Templates,
			"templates/base.html", "templates/post_list.html", "templates/"+name))
	}
	return templates
}

// renderBytes produces the full page so callers can cache or send it
// atomically. The current user is injected for the shared header.
func (h *Handlers) renderBytes(r *http.Request, name string, data map[string]any) ([]byte, error) {
	tmpl, ok := h.Templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown template: %s", name)
	}

	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["CurrentUser"]; !ok {
		if user, ok := identity.CurrentUser(r); ok {
			data["CurrentUser"] = user
		} else {
			data["CurrentUser"] = nil
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	body, err := h.renderBytes(r, name, data)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeHTML(w, status, body)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// validationErrors flattens validator output into field → message for
// inline form rendering.
func (h *Handlers) validationErrors(err error) map[string]string {
	out := map[string]string{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			switch fe.Tag() {
			case "required":
				out[fe.Field()] = "This field is required."
			case "email":
				out[fe.Field()] = "Enter a valid email address."
			case "min":
				out[fe.Field()] = fmt.Sprintf("Must be at least %s characters.", fe.Param())
			case "max":
				out[fe.Field()] = fmt.Sprintf("Must be at most %s characters.", fe.Param())
			default:
				out[fe.Field()] = "Invalid value."
			}
		}
	}
	return out
}
