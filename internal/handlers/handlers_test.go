package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/enroll/internal/accountapi"
	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/handlers"
	"github.com/nfrund/enroll/internal/middleware"
	"github.com/nfrund/enroll/internal/rendering"
	"github.com/nfrund/enroll/internal/wizard"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// testClient sends requests to an echo instance and carries cookies between them like a browser.
type testClient struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func setupTest(t *testing.T, api domain.AccountAPI) (*testClient, *wizard.Store) {
	t.Helper()
	store := wizard.NewStore(api)

	e := echo.New()
	e.Renderer = rendering.NewNodeRenderer()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	reg := handlers.NewRegistrationHandler(store)
	e.GET("/register", reg.Start)
	wz := middleware.RequireWizard(store, "/register")
	e.GET("/register/current", reg.Current, wz)
	e.POST("/register/reset", reg.Reset, wz)
	e.POST("/register/identity", reg.SubmitIdentity, wz)
	e.POST("/register/identity/idtype", reg.SetIDType, wz)
	e.POST("/register/account", reg.SubmitAccount, wz)
	e.POST("/register/account/password", reg.PasswordMeter, wz)
	e.POST("/register/account/questions", reg.LoadQuestions, wz)
	e.POST("/register/sharing", reg.SubmitSharing, wz)
	e.POST("/register/sharing/choice", reg.SharingChoice, wz)
	e.POST("/register/validate/:field", reg.ValidateField, wz)

	cp := handlers.NewChangePasswordHandler(api)
	e.GET("/change-password", cp.ChangePasswordGet)
	e.POST("/change-password", cp.ChangePasswordPost)

	home := handlers.NewHomeHandler()
	e.GET("/", home.HomeGet)
	e.GET("/health", home.Health)

	return &testClient{t: t, e: e, cookies: map[string]*http.Cookie{}}, store
}

func (tc *testClient) do(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	tc.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, c := range tc.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	tc.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		tc.cookies[c.Name] = c
	}
	return rec
}

func (tc *testClient) start() {
	tc.t.Helper()
	rec := tc.do(http.MethodGet, "/register", nil, false)
	require.Equal(tc.t, http.StatusOK, rec.Code)
}

func validIdentity() url.Values {
	return url.Values{
		"firstName": {"Jane"},
		"lastName":  {"Doe"},
		"birthDate": {"01/02/1990"},
		"zip":       {"39201"},
		"idType":    {"code"},
		"code":      {"1234567"},
	}
}

func validAccount() url.Values {
	return url.Values{
		"desiredUsername": {"janedoe01"},
		"email":           {"jane@example.com"},
		"verifiedEmail":   {"jane@example.com"},
		"mobileNumber":    {"6015550100"},
		"password":        {"Test1!abcd"},
		"confirmPassword": {"Test1!abcd"},
		"question1":       {"What was the name of your first pet?"},
		"question2":       {"What city were you born in?"},
		"question3":       {"What is your favorite movie?"},
		"answer1":         {"Rex"},
		"answer2":         {"Jackson"},
		"answer3":         {"Heat"},
		"terms":           {"true"},
	}
}

func mockAPI(sharing bool) *accountapi.MockClient {
	return &accountapi.MockClient{ShowAccountSharing: sharing}
}
