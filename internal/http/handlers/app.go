package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"animalrescue/internal/content"
	"animalrescue/internal/domain"
	"animalrescue/internal/donation"
	"animalrescue/internal/middleware"
	"animalrescue/internal/page"
	"animalrescue/internal/scene"
	"animalrescue/internal/storage"
)

type App struct {
	Logger  zerolog.Logger
	Pages   *page.Store
	Catalog *content.Catalog
	Scene   scene.Scene
	Assets  *storage.FileStore
}

func NewApp(logger zerolog.Logger, pages *page.Store, catalog *content.Catalog, assets *storage.FileStore) *App {
	return &App{
		Logger:  logger,
		Pages:   pages,
		Catalog: catalog,
		Scene:   scene.Default(),
		Assets:  assets,
	}
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, msg string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: msg}})
}

// root returns the page root of the requesting visitor.
func (a *App) root(r *http.Request) *page.Root {
	return a.Pages.Get(middleware.VisitorIDFromContext(r.Context()))
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// respond answers a state-changing post. Browsers are sent back to the page,
// which always reflects the current state; JSON clients get the snapshot or
// an error envelope.
func (a *App) respond(w http.ResponseWriter, r *http.Request, snap donation.Snapshot, err error) {
	if !wantsJSON(r) {
		if err != nil {
			a.Logger.Debug().Err(err).
				Str("visitor", middleware.VisitorIDFromContext(r.Context())).
				Str("path", r.URL.Path).
				Msg("donation action rejected")
		}
		target := "/"
		if snap.Visible {
			target = "/#donate"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	if err == nil {
		a.json(w, http.StatusOK, snap)
		return
	}

	var verr *donation.ValidationError
	switch {
	case errors.As(err, &verr):
		a.json(w, http.StatusUnprocessableEntity, map[string]errorBody{"error": {
			Code:    "validation_failed",
			Message: "please complete the highlighted fields",
			Fields:  verr.Fields,
		}})
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrNotVisible),
		errors.Is(err, domain.ErrAmountLocked),
		errors.Is(err, domain.ErrInvalidTransition):
		a.error(w, http.StatusConflict, "conflict", err.Error())
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("donation action failed")
		a.error(w, http.StatusInternalServerError, "internal", "something went wrong")
	}
}
