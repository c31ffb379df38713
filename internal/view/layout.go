// Package view renders the single page with gomponents.
package view

import (
	"io"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"animalrescue/internal/content"
	"animalrescue/internal/domain"
	"animalrescue/internal/page"
	"animalrescue/internal/scene"
)

// Page is the data for one render of the home page.
type Page struct {
	Catalog  *content.Catalog
	View     page.View
	Scene    scene.Scene
	MediaURL func(path string) string
}

func (p Page) media(path string) string {
	if p.MediaURL == nil {
		return path
	}
	return p.MediaURL(path)
}

// Render writes the full HTML document.
func (p Page) Render(w io.Writer) error {
	return p.Document().Render(w)
}

// Document builds the page tree.
func (p Page) Document() g.Node {
	d := p.View.Donation
	top, scrolled := p.View.Scroll.Classes()
	bodyClass := "page"
	if d.Visible {
		bodyClass += " page--modal-open"
	}
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(p.Catalog.Brand)),
				// no script needed to see the charge finish
				g.If(d.Visible && d.Step == domain.StepProcessing,
					Meta(g.Attr("http-equiv", "refresh"), Content("1")),
				),
				StyleEl(g.Raw(baseCSS+scene.CSS())),
			),
			Body(
				Class(bodyClass),
				navbar(p, top, scrolled),
				donationModal(d, p.Catalog),
				hero(p),
				impactStats(p.Catalog.Stats),
				services(p.Catalog),
				sceneSection(p.Scene),
				adopt(p.Catalog),
				callToAction(p.Catalog.CTA),
				footer(p.Catalog),
				Script(g.Raw(scrollScript)),
			),
		),
	)
}

// donateForm wraps a call-to-action button in a form that opens the modal.
func donateForm(trigger domain.Trigger, sponsor, class string, children ...g.Node) g.Node {
	return Form(
		Method("post"),
		Action("/donate/open"),
		Class("cta-form"),
		Input(Type("hidden"), Name("trigger"), Value(string(trigger))),
		g.If(sponsor != "", Input(Type("hidden"), Name("sponsor"), Value(sponsor))),
		Button(Type("submit"), Class(class), g.Group(children)),
	)
}

// The navbar reads these on scroll; there is no debounce.
const scrollScript = `(function(){var n=document.getElementById("nav");if(!n)return;
var t=parseInt(n.dataset.threshold,10),a=n.dataset.classTop,b=n.dataset.classScrolled;
function u(){n.className=window.scrollY>t?b:a}window.addEventListener("scroll",u);u();})();`

const baseCSS = `
:root{--nature-50:#f0fdf4;--nature-100:#dcfce7;--nature-600:#16a34a;--nature-700:#15803d;--nature-800:#166534;
--ocean-50:#f0f9ff;--ocean-100:#e0f2fe;--ocean-600:#0284c7;--ocean-800:#075985;--ocean-900:#0c4a6e}
*{box-sizing:border-box}body{margin:0;font-family:system-ui,sans-serif;color:var(--ocean-900);background:#fff}
.page--modal-open{overflow:hidden}
h1,h2,h3,h4{font-family:Georgia,serif}
.container{max-width:1200px;margin:0 auto;padding:0 1.5rem}
.nav{position:fixed;top:0;left:0;right:0;z-index:50;transition:all .5s}
.nav--top{background:transparent;padding:1.5rem 0}
.nav--scrolled{background:rgba(255,255,255,.8);backdrop-filter:blur(16px);box-shadow:0 1px 2px rgba(0,0,0,.05);padding:1rem 0}
.nav__inner{display:flex;justify-content:space-between;align-items:center}
.nav__links{display:flex;gap:2rem;align-items:center}
.nav__links a{color:var(--ocean-800);text-decoration:none;font-size:.875rem}
.nav__mobile{display:none;background:#fff;padding:1.5rem;flex-direction:column;gap:1rem}
.nav__toggle{display:none;background:none;border:0;color:var(--ocean-800)}
@media (max-width:768px){.nav__links{display:none}.nav__toggle{display:block}.nav__mobile--open{display:flex}}
.cta-form{display:inline}
.visually-hidden{position:absolute;width:1px;height:1px;overflow:hidden;clip:rect(0 0 0 0);white-space:nowrap;border:0;padding:0}
.btn{border:0;border-radius:999px;padding:.75rem 1.75rem;font-weight:600;cursor:pointer;display:inline-flex;align-items:center;gap:.5rem}
.btn--primary{background:var(--nature-600);color:#fff}
.btn--ghost{background:rgba(255,255,255,.8);color:var(--ocean-800);border:1px solid var(--ocean-100)}
.btn--light{background:#fff;color:var(--ocean-900)}
.btn--link{background:none;padding:0;color:inherit;font-weight:400}
.hero{position:relative;height:100vh;display:flex;align-items:center;justify-content:center;overflow:hidden;text-align:center}
.hero__video{position:absolute;inset:0;width:100%;height:100%;object-fit:cover;z-index:0}
.hero__fade{position:absolute;inset:0;background:linear-gradient(to bottom,rgba(255,255,255,.3),rgba(255,255,255,.1),#fff)}
.hero__content{position:relative;z-index:1;max-width:60rem}
.hero__highlight{font-style:italic;color:var(--nature-600)}
.stats{position:relative;z-index:2;margin:-6rem 1rem 0}
.stats__grid{display:grid;grid-template-columns:repeat(4,1fr);gap:2rem;background:linear-gradient(to right,var(--nature-800),var(--ocean-800));border-radius:1.5rem;padding:3rem;color:#fff;text-align:center}
.stat__number{font-size:3rem;font-weight:700;font-family:Georgia,serif}
.stat__label{text-transform:uppercase;font-size:.8rem;letter-spacing:.08em;color:var(--nature-100)}
.section{padding:8rem 0}
.grid{display:grid;gap:2rem;grid-template-columns:repeat(auto-fit,minmax(240px,1fr))}
.card{border-radius:1rem;overflow:hidden;border:1px solid var(--nature-50);box-shadow:0 4px 20px -10px rgba(34,197,94,.15);background:#fff;animation:rise .5s both}
.card img{width:100%;height:12rem;object-fit:cover;display:block}
.card__body{padding:1.5rem 2rem 2rem}
.animal img{height:18rem}
.badge{background:var(--nature-50);color:var(--nature-600);font-size:.75rem;font-weight:700;padding:.25rem .5rem;border-radius:.375rem}
.scene{width:100%;height:auto;display:block}
.cta{background:var(--ocean-900);color:#fff;text-align:center;position:relative;overflow:hidden}
.cta__bg{position:absolute;inset:0;width:100%;height:100%;object-fit:cover;opacity:.3}
.cta .container{position:relative}
.footer{padding:5rem 0;border-top:1px solid var(--ocean-100)}
.footer__grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(200px,1fr));gap:3rem}
.footer ul{list-style:none;padding:0}
.footer li{margin:0 0 1rem}
.footer a{color:var(--ocean-600);text-decoration:none}
.modal__backdrop{position:fixed;inset:0;background:rgba(12,74,110,.4);backdrop-filter:blur(12px);z-index:60;margin:0}
.modal__backdrop button{width:100%;height:100%;background:none;border:0;cursor:pointer}
.modal{position:fixed;inset:0;margin:auto;width:90%;max-width:28rem;height:fit-content;background:#fff;border-radius:1.5rem;z-index:70;overflow:hidden;box-shadow:0 25px 50px -12px rgba(0,0,0,.25)}
.modal__header{display:flex;justify-content:space-between;align-items:center;padding:1.5rem;border-bottom:1px solid var(--nature-100)}
.modal__body{padding:1.5rem}
.modal__footer{background:var(--ocean-50);padding:.75rem;text-align:center;font-size:.7rem;color:var(--ocean-600)}
.amounts{display:grid;grid-template-columns:repeat(4,1fr);gap:.75rem;margin-bottom:1.5rem}
.amount{border:0;border-radius:.75rem;padding:.75rem;font-weight:700;background:var(--nature-50);color:var(--nature-700);cursor:pointer}
.amount--selected{background:var(--nature-600);color:#fff}
.field{display:block;margin-bottom:1rem}
.field input{width:100%;padding:.75rem 1rem;border-radius:.75rem;border:1px solid var(--ocean-100);background:var(--ocean-50)}
.field__error{color:#b91c1c;font-size:.75rem}
.field-row{display:grid;grid-template-columns:1fr 1fr;gap:1rem}
.btn--block{width:100%;justify-content:center}
.modal__status{text-align:center;padding:1rem 0}
.modal__badge{width:5rem;height:5rem;border-radius:50%;background:var(--nature-100);color:var(--nature-600);display:flex;align-items:center;justify-content:center;margin:0 auto 1.5rem}
.modal__badge--error{background:#fee2e2;color:#b91c1c}
.modal__sponsor,.modal__receipt{font-size:.875rem;color:var(--ocean-600)}
.nav__brand{font-family:Georgia,serif;font-weight:700;font-size:1.5rem;color:var(--ocean-900)}
.hero__actions{display:flex;gap:1rem;justify-content:center;flex-wrap:wrap}
.animal__status{float:right;font-size:.75rem;font-weight:700;color:var(--nature-700)}
.footer__legal{display:flex;gap:1.5rem;justify-content:space-between;margin-top:3rem;font-size:.8rem}
.spinner{width:4rem;height:4rem;border:4px solid var(--nature-100);border-top-color:var(--nature-600);border-radius:50%;margin:2rem auto;animation:spin 1s linear infinite}
@keyframes spin{to{transform:rotate(360deg)}}
@keyframes rise{from{opacity:0;transform:translateY(20px)}to{opacity:1;transform:none}}
@media (prefers-reduced-motion:reduce){.card,.spinner{animation:none}}
`
