package handlers

import (
	"bytes"
	"net/http"

	"animalrescue/internal/view"
)

func (a *App) Home(w http.ResponseWriter, r *http.Request) {
	p := view.Page{
		Catalog:  a.Catalog,
		View:     a.root(r).View(),
		Scene:    a.Scene,
		MediaURL: a.Assets.URL,
	}
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		a.Logger.Error().Err(err).Msg("render page")
		a.error(w, http.StatusInternalServerError, "internal", "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
