// Package view holds request-scoped state shared by the page handlers.
package view

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// FlashSessionName is the cookie session that carries one-shot messages across a redirect.
const FlashSessionName = "flash-session"

const (
	flashKeySuccess = "success"
	flashKeyError   = "error"
)

// FlashData holds the flash messages pending for the current request.
type FlashData struct {
	Success []interface{}
	Error   []interface{}
}

// Empty reports whether there are no messages to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

// SetFlashSuccess queues a success banner for the next page render.
func SetFlashSuccess(c echo.Context, message string) {
	addFlash(c, flashKeySuccess, message)
}

// SetFlashError queues an error banner for the next page render.
func SetFlashError(c echo.Context, message string) {
	addFlash(c, flashKeyError, message)
}

// GetFlashData returns the pending messages and clears them from the session.
func GetFlashData(c echo.Context) FlashData {
	sess, err := session.Get(FlashSessionName, c)
	if err != nil {
		return FlashData{}
	}
	data := FlashData{
		Success: sess.Flashes(flashKeySuccess),
		Error:   sess.Flashes(flashKeyError),
	}
	if !data.Empty() {
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			slog.WarnContext(c.Request().Context(), "Failed to clear flash messages", "error", err)
		}
	}
	return data
}

// flashSaveKey marks a request whose flash session is already scheduled for saving.
const flashSaveKey = "_flash_save"

// addFlash queues message and saves the session once, just before the response is written,
// so several flashes in one request produce a single Set-Cookie header.
func addFlash(c echo.Context, key, message string) {
	sess, err := session.Get(FlashSessionName, c)
	if err != nil {
		slog.WarnContext(c.Request().Context(), "Flash session unavailable", "error", err)
		return
	}
	sess.AddFlash(message, key)

	save := func() {
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			slog.WarnContext(c.Request().Context(), "Failed to save flash message", "error", err)
		}
	}
	if c.Response().Committed {
		save()
		return
	}
	if c.Get(flashSaveKey) != nil {
		return
	}
	c.Set(flashSaveKey, true)
	c.Response().Before(save)
}
