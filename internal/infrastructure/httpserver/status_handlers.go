package httpserver

import (
	"net/http"

	"github.com/craftyard/marketplace-backend/internal/core/domain/status"
	"github.com/labstack/echo/v4"
)

func (s *Server) postStatus(c echo.Context) error {
	var req status.CreateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	st, err := s.statusService.PostStatus(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, st)
}

func (s *Server) getUserStatuses(c echo.Context) error {
	statuses, err := s.statusService.GetUserStatuses(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, statuses)
}

func (s *Server) getFollowingStatuses(c echo.Context) error {
	statuses, err := s.statusService.GetFollowingStatuses(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, statuses)
}

func (s *Server) viewStatus(c echo.Context) error {
	if err := s.statusService.ViewStatus(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteStatus(c echo.Context) error {
	if err := s.statusService.DeleteStatus(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
