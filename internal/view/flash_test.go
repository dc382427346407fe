package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/enroll/internal/view"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// flashServer queues the flashes set by queue on POST /queue and reports them on GET /show.
func flashServer(queue func(c echo.Context)) *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.POST("/queue", func(c echo.Context) error {
		queue(c)
		return c.NoContent(http.StatusSeeOther)
	})
	e.GET("/show", func(c echo.Context) error {
		return c.JSON(http.StatusOK, view.GetFlashData(c))
	})
	return e
}

func serve(e *echo.Echo, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFlash_SurvivesRedirectOnce(t *testing.T) {
	e := flashServer(func(c echo.Context) {
		view.SetFlashError(c, "Your registration session has expired.")
		view.SetFlashSuccess(c, "Your registration has been restarted.")
	})

	queued := serve(e, http.MethodPost, "/queue", nil)
	require.Len(t, queued.Result().Cookies(), 1, "both flashes share one cookie")
	assert.Equal(t, view.FlashSessionName, queued.Result().Cookies()[0].Name)

	first := serve(e, http.MethodGet, "/show", queued.Result().Cookies())
	assert.JSONEq(t, `{"Success":["Your registration has been restarted."],"Error":["Your registration session has expired."]}`, first.Body.String())

	// Reading the flashes rewrote the cookie without them.
	second := serve(e, http.MethodGet, "/show", first.Result().Cookies())
	assert.JSONEq(t, `{"Success":null,"Error":null}`, second.Body.String())
}

func TestFlash_SetAfterResponseCommitted(t *testing.T) {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.GET("/late", func(c echo.Context) error {
		c.Response().WriteHeader(http.StatusNoContent)
		view.SetFlashError(c, "too late")
		return nil
	})

	rec := serve(e, http.MethodGet, "/late", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestFlash_NoneQueued(t *testing.T) {
	e := flashServer(func(echo.Context) {})

	rec := serve(e, http.MethodGet, "/show", nil)

	assert.JSONEq(t, `{"Success":null,"Error":null}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestFlashData_Empty(t *testing.T) {
	assert.True(t, view.FlashData{}.Empty())
	assert.False(t, view.FlashData{Error: []interface{}{"x"}}.Empty())
}
