package server

import (
	"github.com/nfrund/enroll/internal/middleware"
	"github.com/nfrund/enroll/web/src/templates/pages"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	home := s.homeHandler
	reg := s.registrationHandler
	cp := s.changePasswordHandler

	// Submissions reach the account API and are rate limited; per-field requests are not.
	rateLimiter := middleware.RateLimiter(s.Cfg.RateLimitPerMin)
	wz := middleware.RequireWizard(s.Store, pages.RegisterPath)

	s.E.GET("/", home.HomeGet)
	s.E.GET("/health", home.Health)

	s.E.GET(pages.RegisterPath, reg.Start)
	s.E.GET(pages.CurrentPath, reg.Current, wz)
	s.E.POST(pages.ResetPath, reg.Reset, wz)

	s.E.POST(pages.IdentityPath, reg.SubmitIdentity, rateLimiter, wz)
	s.E.POST(pages.IDTypePath, reg.SetIDType, wz)

	s.E.POST(pages.AccountPath, reg.SubmitAccount, rateLimiter, wz)
	s.E.POST(pages.PasswordPath, reg.PasswordMeter, wz)
	s.E.POST(pages.QuestionsPath, reg.LoadQuestions, rateLimiter, wz)

	s.E.POST(pages.SharingPath, reg.SubmitSharing, rateLimiter, wz)
	s.E.POST(pages.SharingChoicePath, reg.SharingChoice, wz)

	s.E.POST("/register/validate/:field", reg.ValidateField, wz)

	s.E.GET(pages.ChangePasswordPath, cp.ChangePasswordGet)
	s.E.POST(pages.ChangePasswordPath, cp.ChangePasswordPost, rateLimiter)
}
