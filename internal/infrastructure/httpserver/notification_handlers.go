package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) listNotifications(c echo.Context) error {
	notifications, err := s.notificationSvc.List(c.Request().Context(), listLimit(c, 50))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

func (s *Server) unreadNotificationCount(c echo.Context) error {
	count, err := s.notificationSvc.UnreadCount(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"unread": count})
}

func (s *Server) markNotificationRead(c echo.Context) error {
	if err := s.notificationSvc.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) markAllNotificationsRead(c echo.Context) error {
	if err := s.notificationSvc.MarkAllRead(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
