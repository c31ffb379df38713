package scene

import (
	"fmt"
	"math"
	"sort"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	viewWidth  = 800.0
	viewHeight = 450.0
	// pixels per scene unit, and the horizon line
	unit    = 22.0
	horizon = 300.0
)

// project maps a ground point to screen space with a cheap perspective:
// trees further back (positive Z) sit higher and smaller.
func project(x, z float64) (sx, sy, depth float64) {
	depth = 1 / (1 + (z+maxRadius)/(2*maxRadius))
	sx = viewWidth/2 + x*unit*depth
	sy = horizon - z*unit*0.35*depth
	return sx, sy, depth
}

// CSS returns the keyframes driving the spirit animation.
func CSS() string {
	var b strings.Builder
	b.WriteString("@keyframes spirit-bob{")
	for _, kf := range Keyframes(12) {
		fmt.Fprintf(&b, "%.1f%%{transform:translateY(%.1fpx) rotate(%.2fdeg)}",
			kf.Percent, -(kf.Pose.Y-0.5)*unit*2, kf.Pose.Rotation*180/math.Pi)
	}
	b.WriteString("}")
	b.WriteString("@keyframes sparkle{0%,100%{opacity:.2}50%{opacity:.9}}")
	fmt.Fprintf(&b, ".spirit{transform-box:fill-box;transform-origin:center;animation:spirit-bob %.2fs linear infinite}", BobPeriod.Seconds())
	b.WriteString(".sparkle{animation:sparkle 3s ease-in-out infinite}")
	b.WriteString("@media (prefers-reduced-motion:reduce){.spirit,.sparkle{animation:none}}")
	return b.String()
}

// Render draws the scene as inline SVG.
func (s Scene) Render() g.Node {
	trees := append([]Tree(nil), s.Trees...)
	// back to front so nearer trees overlap
	sort.SliceStable(trees, func(i, j int) bool { return trees[i].Z > trees[j].Z })

	nodes := []g.Node{
		g.Attr("viewBox", fmt.Sprintf("0 0 %.0f %.0f", viewWidth, viewHeight)),
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("role", "img"),
		g.Attr("aria-hidden", "true"),
		Class("scene"),
		g.El("rect", g.Attr("x", "0"), g.Attr("y", fmt.Sprintf("%.0f", horizon-40)),
			g.Attr("width", fmt.Sprintf("%.0f", viewWidth)), g.Attr("height", fmt.Sprintf("%.0f", viewHeight-horizon+40)),
			g.Attr("fill", "#f0fdf4")),
	}
	for _, t := range trees {
		nodes = append(nodes, tree(t))
	}
	nodes = append(nodes, spirit())
	for _, sp := range s.Sparkles {
		sx := viewWidth/2 + sp.X*unit*1.6
		sy := horizon - 40 - sp.Y*unit
		nodes = append(nodes, g.El("circle",
			Class("sparkle"),
			g.Attr("cx", fmt.Sprintf("%.1f", sx)),
			g.Attr("cy", fmt.Sprintf("%.1f", sy)),
			g.Attr("r", fmt.Sprintf("%.1f", sp.Size/2)),
			g.Attr("fill", sp.Color),
			g.Attr("style", fmt.Sprintf("animation-delay:%.2fs", sp.Delay.Seconds())),
		))
	}
	return g.El("svg", nodes...)
}

func tree(t Tree) g.Node {
	sx, sy, depth := project(t.X, t.Z)
	h := unit * 3.5 * t.Scale * depth
	w := unit * 1.2 * t.Scale * depth
	trunkH := h * 0.3
	return g.El("g",
		g.El("rect",
			g.Attr("x", fmt.Sprintf("%.1f", sx-w*0.08)),
			g.Attr("y", fmt.Sprintf("%.1f", sy-trunkH)),
			g.Attr("width", fmt.Sprintf("%.1f", w*0.16)),
			g.Attr("height", fmt.Sprintf("%.1f", trunkH)),
			g.Attr("fill", "#f1f5f9"),
		),
		g.El("polygon",
			g.Attr("points", fmt.Sprintf("%.1f,%.1f %.1f,%.1f %.1f,%.1f",
				sx-w, sy-trunkH, sx+w, sy-trunkH, sx, sy-h)),
			g.Attr("fill", "#4ade80"),
			g.Attr("fill-opacity", "0.95"),
		),
		g.El("polygon",
			g.Attr("points", fmt.Sprintf("%.1f,%.1f %.1f,%.1f %.1f,%.1f",
				sx-w*0.75, sy-h*0.6, sx+w*0.75, sy-h*0.6, sx, sy-h*1.25)),
			g.Attr("fill", "#86efac"),
			g.Attr("fill-opacity", "0.95"),
		),
	)
}

func spirit() g.Node {
	cx, cy := viewWidth/2, horizon-40-PoseAt(0).Y*unit*2
	r := unit * 0.8
	points := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		x, y := hexPoint(cx, cy, r, i)
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	return g.El("g", Class("spirit"),
		g.El("circle",
			g.Attr("cx", fmt.Sprintf("%.1f", cx)),
			g.Attr("cy", fmt.Sprintf("%.1f", cy)),
			g.Attr("r", fmt.Sprintf("%.1f", r*0.9)),
			g.Attr("fill", "#0ea5e9"),
			g.Attr("fill-opacity", "0.4"),
		),
		g.El("polygon",
			g.Attr("points", strings.Join(points, " ")),
			g.Attr("fill", "#ffffff"),
			g.Attr("stroke", "#e0f2fe"),
		),
	)
}

func hexPoint(cx, cy, r float64, i int) (float64, float64) {
	a := math.Pi/6 + float64(i)*math.Pi/3
	return cx + r*math.Cos(a), cy + r*math.Sin(a)
}
