package httpserver

import (
	"net/http"

	"github.com/craftyard/marketplace-backend/internal/core/domain/saved"
	"github.com/labstack/echo/v4"
)

func (s *Server) toggleSaved(c echo.Context) error {
	nowSaved, err := s.savedService.ToggleSave(c.Request().Context(), saved.ItemType(c.Param("type")), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"saved": nowSaved})
}

func (s *Server) listSaved(c echo.Context) error {
	items, err := s.savedService.ListSaved(c.Request().Context(), saved.ItemType(c.Param("type")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}
