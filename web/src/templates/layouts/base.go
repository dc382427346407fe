package layouts

import (
	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/enroll/internal/view"
	"github.com/nfrund/enroll/web/src/templates/components"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the site shell with pending flash messages.
func Base(title string, flashes view.FlashData, content g.Node) g.Node {
	return gc.HTML5(gc.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
			h.Script(h.Src(htmxSrc), h.Defer()),
		},
		Body: []g.Node{
			h.Header(h.Class("site-header"),
				h.A(h.Href("/register"), h.Class("brand"), h.I(g.Text("my")), g.Text("Blue Member Registration")),
			),
			h.Main(h.Class("container"),
				components.Flashes(flashes),
				content,
			),
		},
	})
}
