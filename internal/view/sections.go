package view

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"animalrescue/internal/content"
	"animalrescue/internal/domain"
	"animalrescue/internal/scene"
)

func navbar(p Page, top, scrolled string) g.Node {
	c := p.Catalog
	menuOpen := p.View.MenuOpen
	mobileClass := "nav__mobile"
	if menuOpen {
		mobileClass += " nav__mobile--open"
	}
	toggleIcon := "menu"
	if menuOpen {
		toggleIcon = "x"
	}
	links := func() g.Node {
		return g.Group(g.Map(c.Nav, func(l domain.Link) g.Node {
			return A(Href(l.Href), g.Text(l.Label))
		}))
	}
	return Nav(
		ID("nav"),
		Class(p.View.Scroll.Class(0)),
		Data("threshold", strconv.Itoa(p.View.Scroll.Threshold)),
		Data("class-top", top),
		Data("class-scrolled", scrolled),
		Div(Class("container nav__inner"),
			Span(Class("nav__brand"), g.Text(c.Brand)),
			Div(Class("nav__links"),
				links(),
				donateForm(domain.TriggerNavbar, "", "btn btn--primary", g.Text("Donate Now "), icon("heart", 16)),
			),
			Form(Method("post"), Action("/nav/toggle"),
				Button(Type("submit"), Class("nav__toggle"), g.Attr("aria-label", "Toggle menu"),
					g.Attr("aria-expanded", strconv.FormatBool(menuOpen)),
					icon(toggleIcon, 24),
				),
			),
		),
		Div(ID("mobile-menu"), Class(mobileClass),
			links(),
			donateForm(domain.TriggerMobileNav, "", "btn btn--primary", g.Text("Donate Now")),
		),
	)
}

func hero(p Page) g.Node {
	h := p.Catalog.Hero
	return Header(Class("hero"), ID("mission"),
		Video(Class("hero__video"), AutoPlay(), Loop(), Muted(), PlaysInline(),
			g.Group(g.Map(h.Videos, func(v domain.VideoSource) g.Node {
				return Source(Src(p.media(v.Path)), Type(v.Type))
			})),
			g.Text("Your browser does not support the video tag."),
		),
		Div(Class("hero__fade")),
		Div(Class("container hero__content"),
			Span(Class("badge"), g.Text(h.Eyebrow)),
			H1(g.Text(h.Title+" "), Br(), Span(Class("hero__highlight"), g.Text(h.Highlight)), g.Text(" "+h.TitleSuffix)),
			P(g.Text(h.Body)),
			Div(Class("hero__actions"),
				donateForm(domain.TriggerHero, "", "btn btn--primary", g.Text(h.Primary)),
				A(Href("#impact"), Class("btn btn--ghost"), g.Text(h.Secondary)),
			),
		),
	)
}

func impactStats(stats []domain.ImpactStat) g.Node {
	return Section(Class("stats"), ID("impact"),
		Div(Class("container stats__grid"),
			g.Group(g.Map(stats, func(s domain.ImpactStat) g.Node {
				return Div(Class("stat"),
					Div(Class("stat__number"), g.Text(s.Number)),
					Div(Class("stat__label"), g.Text(s.Label)),
				)
			})),
		),
	)
}

func services(c *content.Catalog) g.Node {
	return Section(Class("section"), ID("services"),
		Div(Class("container"),
			H2(g.Text(c.ServicesHeading)),
			P(g.Text(c.ServicesBody)),
			Div(Class("grid"),
				g.Group(g.Map(c.Services, serviceCard)),
			),
		),
	)
}

func serviceCard(s domain.Service) g.Node {
	return Div(Class("card service"), Style(fmt.Sprintf("animation-delay:%.1fs", s.Delay)),
		g.If(s.ImageURL != "", Img(Src(s.ImageURL), Alt(s.Title), g.Attr("loading", "lazy"))),
		Div(Class("card__body"),
			Span(Class("service__icon"), icon(s.Icon, 20)),
			H3(g.Text(s.Title)),
			P(g.Text(s.Description)),
			A(Href("#"), Class("service__more"), g.Text("Learn more "), icon("arrow-right", 14)),
		),
	)
}

func sceneSection(sc scene.Scene) g.Node {
	return Section(Class("section section--scene"), ID("stories"),
		Div(Class("container"), sc.Render()),
	)
}

func adopt(c *content.Catalog) g.Node {
	return Section(Class("section section--adopt"), ID("adopt"),
		Div(Class("container"),
			H2(g.Text(c.AdoptHeading)),
			P(g.Text(c.AdoptBody)),
			Div(Class("grid"),
				g.Group(g.Map(c.Animals, animalCard)),
			),
		),
	)
}

func animalCard(a domain.Animal) g.Node {
	location := a.Location
	if location == "" {
		location = "Rescued Sanctuary"
	}
	return Div(Class("card animal"),
		Img(Src(a.ImageURL), Alt(a.Name+" the "+a.Species), g.Attr("loading", "lazy")),
		Div(Class("card__body"),
			Span(Class("animal__status"), g.Text("Needs Sponsor")),
			H4(g.Text(a.Name)),
			Span(Class("badge"), g.Text(a.Species)),
			P(Class("animal__location"), icon("map-pin", 14), g.Text(location)),
			donateForm(domain.TriggerSponsor, a.Species, "btn btn--ghost", icon("hand-heart", 18), g.Text("Sponsor "+a.Name)),
		),
	)
}

func callToAction(cta content.CallToAction) g.Node {
	return Section(Class("section cta"),
		g.If(cta.ImageURL != "", Img(Class("cta__bg"), Src(cta.ImageURL), Alt(""))),
		Div(Class("container"),
			H2(g.Text(cta.Title)),
			P(g.Text(cta.Body)),
			donateForm(domain.TriggerCTA, "", "btn btn--light", g.Text(cta.Primary+" "), icon("heart", 18)),
			A(Href("#"), Class("btn btn--ghost"), g.Text(cta.Secondary)),
			P(Class("cta__fine"), g.Text(cta.FinePrint)),
		),
	)
}

func footer(c *content.Catalog) g.Node {
	groups := make([]g.Node, 0, len(c.Footer))
	for i, grp := range c.Footer {
		items := make([]g.Node, 0, len(grp.Links)+1)
		// the donate entry lives in the second column
		if i == 1 {
			items = append(items, Li(donateForm(domain.TriggerFooter, "", "btn btn--link", g.Text("Donate"))))
		}
		for _, l := range grp.Links {
			items = append(items, Li(A(Href(l.Href), g.Text(l.Label))))
		}
		groups = append(groups, Div(H4(g.Text(grp.Title)), Ul(items...)))
	}
	return Footer(Class("footer"),
		Div(Class("container"),
			Div(Class("footer__grid"),
				Div(
					Span(Class("nav__brand"), icon("trees", 20), g.Text(" "+c.Brand)),
					P(g.Text(c.Tagline)),
				),
				g.Group(groups),
			),
			Div(Class("footer__legal"),
				P(g.Text(c.Copyright)),
				g.Group(g.Map(c.Legal, func(l domain.Link) g.Node {
					return A(Href(l.Href), g.Text(l.Label))
				})),
			),
		),
	)
}
