package httpserver

import (
	"net/http"

	"github.com/craftyard/marketplace-backend/internal/core/domain/portfolio"
	"github.com/labstack/echo/v4"
)

func (s *Server) addPortfolioCard(c echo.Context) error {
	var req portfolio.CreateCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	card, err := s.portfolioSvc.AddCard(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, card)
}

func (s *Server) updatePortfolioCard(c echo.Context) error {
	var req portfolio.UpdateCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	card, err := s.portfolioSvc.UpdateCard(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, card)
}

func (s *Server) deletePortfolioCard(c echo.Context) error {
	if err := s.portfolioSvc.DeleteCard(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getUserPortfolio(c echo.Context) error {
	cards, err := s.portfolioSvc.GetUserPortfolio(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cards)
}
