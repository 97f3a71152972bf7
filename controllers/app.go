// Package controllers implements the HTTP dispatcher (C5): one gin
// handler per endpoint in spec §6.1, plus the auth/authz checks §4.5
// requires and the { "error": ... } error envelope of §6.2/§7.
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/bellapacxx/tombola-server/audit"
	"github.com/bellapacxx/tombola-server/live"
	"github.com/bellapacxx/tombola-server/registry"
	"github.com/bellapacxx/tombola-server/utils/apperr"
	"github.com/bellapacxx/tombola-server/utils/logger"
)

// App bundles the server-wide state every handler needs. Its registries,
// hub and audit sink are exported fields set by New, and the handlers are
// its methods, matching the teacher's controller style of package-level
// dependencies but made explicit and testable.
type App struct {
	Games   *registry.GameRegistry
	Clients *registry.ClientDirectory
	Hub     *live.Hub
	Audit   audit.Sink
}

// New builds an App with fresh, empty registries.
func New(auditSink audit.Sink) *App {
	return &App{
		Games:   registry.NewGameRegistry(),
		Clients: registry.NewClientDirectory(),
		Hub:     live.NewHub(),
		Audit:   auditSink,
	}
}

// fail writes the { "error": ... } envelope for err, logging with the
// triggering client id when known (spec §7).
func fail(c *gin.Context, clientID string, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Wrap(apperr.Internal, "unexpected error", err)
	}
	if clientID != "" {
		logger.Errorf("client=%s: %v", clientID, appErr)
	} else {
		logger.Errorf("%v", appErr)
	}
	c.JSON(appErr.Kind.HTTPStatus(), gin.H{"error": appErr.Message})
}

// requireClientID reads and validates the X-Client-ID header, writing a
// 401 response and returning ok=false if it is missing or unregistered.
func (a *App) requireClientID(c *gin.Context) (string, bool) {
	clientID := c.GetHeader("X-Client-ID")
	if clientID == "" {
		fail(c, "", apperr.New(apperr.Unauthorized, "missing X-Client-ID header"))
		return "", false
	}
	if !a.Clients.Known(clientID) {
		fail(c, clientID, apperr.New(apperr.Unauthorized, "unknown client id"))
		return "", false
	}
	return clientID, true
}
