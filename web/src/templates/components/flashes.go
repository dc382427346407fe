package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/enroll/internal/view"
)

// Flashes renders one banner per pending flash message.
func Flashes(f view.FlashData) g.Node {
	if f.Empty() {
		return nil
	}
	return Div(ID("flashes"),
		g.Map(f.Success, func(m interface{}) g.Node {
			return Div(Class("flash flash-success"), Role("status"), g.Text(fmt.Sprint(m)))
		}),
		g.Map(f.Error, func(m interface{}) g.Node {
			return Div(Class("flash flash-error"), Role("alert"), g.Text(fmt.Sprint(m)))
		}),
	)
}
