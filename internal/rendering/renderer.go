package rendering

import (
	"bytes"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

// Renderer defines the contract for rendering gomponents nodes, either as full pages
// or as htmx fragments.
type Renderer interface {
	// RenderComponent renders a node to a slice of bytes. Useful for htmx fragments and tests.
	RenderComponent(node g.Node) ([]byte, error)

	// RenderPage writes node as a complete HTML response.
	RenderPage(c echo.Context, status int, node g.Node) error
}

// NodeRenderer is the concrete implementation backed by gomponents.
type NodeRenderer struct{}

// NewNodeRenderer creates a new NodeRenderer instance.
func NewNodeRenderer() *NodeRenderer {
	return &NodeRenderer{}
}

func (r *NodeRenderer) render(data interface{}, w io.Writer) error {
	node, ok := data.(g.Node)
	if !ok {
		return fmt.Errorf("unsupported component type: %T. Component must be a gomponents.Node", data)
	}
	return node.Render(w)
}

// RenderComponent implements the Renderer interface.
func (r *NodeRenderer) RenderComponent(node g.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.render(node, &buf); err != nil {
		return nil, fmt.Errorf("failed to render component to bytes: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage implements the Renderer interface for full HTTP responses.
func (r *NodeRenderer) RenderPage(c echo.Context, status int, node g.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)

	if err := r.render(node, c.Response()); err != nil {
		c.Logger().Error("Failed to stream component to response writer:", err)
		return err
	}
	return nil
}

// Render implements the echo.Renderer interface for use with c.Render(status, name, node).
func (r *NodeRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(data, w)
}
