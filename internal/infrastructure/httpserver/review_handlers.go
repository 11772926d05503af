package httpserver

import (
	"net/http"

	"github.com/craftyard/marketplace-backend/internal/core/domain/review"
	"github.com/labstack/echo/v4"
)

func (s *Server) createReview(c echo.Context) error {
	var req review.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	r, err := s.reviewService.CreateReview(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (s *Server) updateReview(c echo.Context) error {
	var req review.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	r, err := s.reviewService.UpdateReview(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Server) deleteReview(c echo.Context) error {
	if err := s.reviewService.DeleteReview(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getUserReviews(c echo.Context) error {
	reviews, err := s.reviewService.GetUserReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}
