package handlers

import (
	"errors"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"animalrescue/internal/domain"
)

// Media streams a file from the asset store. Range requests are honoured so
// the hero videos can seek.
func (a *App) Media(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	f, info, err := a.Assets.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "asset not found")
			return
		}
		a.Logger.Error().Err(err).Str("key", key).Msg("open asset")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load asset")
		return
	}
	defer f.Close()
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, path.Base(key), info.ModTime(), f)
}
