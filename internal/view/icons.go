package view

import (
	"strconv"

	g "maragu.dev/gomponents"
)

// Lucide-style outline paths keyed by the names used in the catalog.
var iconPaths = map[string][]string{
	"heart":       {"M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"},
	"trees":       {"M10 10v.2A3 3 0 0 1 8.9 16H5a3 3 0 0 1-1-5.8V10a3 3 0 0 1 6 0Z", "M7 16v6", "M13 19v3", "M12 19h8.3a1 1 0 0 0 .7-1.7L18 14h.3a1 1 0 0 0 .7-1.7L16 9h.2a1 1 0 0 0 .8-1.7L13 3l-1.4 1.5"},
	"shield":      {"M20 13c0 5-3.5 7.5-7.66 8.95a1 1 0 0 1-.67-.01C7.5 20.5 4 18 4 13V6a1 1 0 0 1 1-1c2 0 4.5-1.2 6.24-2.72a1.17 1.17 0 0 1 1.52 0C14.51 3.81 17 5 19 5a1 1 0 0 1 1 1z"},
	"book-open":   {"M2 3h6a4 4 0 0 1 4 4v14a3 3 0 0 0-3-3H2z", "M22 3h-6a4 4 0 0 0-4 4v14a3 3 0 0 1 3-3h7z"},
	"x":           {"M18 6 6 18", "m6 6 12 12"},
	"menu":        {"M4 12h16", "M4 6h16", "M4 18h16"},
	"lock":        {"M7 11V7a5 5 0 0 1 10 0v4", "M5 11h14v10H5z"},
	"check":       {"M22 11.08V12a10 10 0 1 1-5.93-9.14", "m9 11 3 3L22 4"},
	"map-pin":     {"M20 10c0 6-8 12-8 12s-8-6-8-12a8 8 0 0 1 16 0Z", "M12 10m-3 0a3 3 0 1 0 6 0a3 3 0 1 0-6 0"},
	"arrow-right": {"M5 12h14", "m12 5 7 7-7 7"},
	"hand-heart":  {"M11 14h2a2 2 0 1 0 0-4h-3c-.6 0-1.1.2-1.4.6L3 16", "m7 20 1.6-1.4c.3-.4.8-.6 1.4-.6h4c1.1 0 2.1-.4 2.8-1.2l4.6-4.4a2 2 0 0 0-2.75-2.91l-4.2 3.9", "m2 15 6 6"},
	"alert":       {"M12 9v4", "M12 17h.01", "M10.29 3.86 1.82 18a2 2 0 0 0 1.71 3h16.94a2 2 0 0 0 1.71-3L13.71 3.86a2 2 0 0 0-3.42 0z"},
}

// icon renders a named icon; unknown names render nothing.
func icon(name string, size int) g.Node {
	paths, ok := iconPaths[name]
	if !ok {
		return nil
	}
	nodes := []g.Node{
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("width", strconv.Itoa(size)),
		g.Attr("height", strconv.Itoa(size)),
		g.Attr("viewBox", "0 0 24 24"),
		g.Attr("fill", "none"),
		g.Attr("stroke", "currentColor"),
		g.Attr("stroke-width", "2"),
		g.Attr("stroke-linecap", "round"),
		g.Attr("stroke-linejoin", "round"),
		g.Attr("aria-hidden", "true"),
		g.Attr("class", "icon icon--"+name),
	}
	for _, d := range paths {
		nodes = append(nodes, g.El("path", g.Attr("d", d)))
	}
	return g.El("svg", nodes...)
}
