package httpserver

import (
	"net/http"

	"github.com/craftyard/marketplace-backend/internal/core/domain/reel"
	"github.com/labstack/echo/v4"
)

func (s *Server) createReel(c echo.Context) error {
	var req reel.CreateReelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	r, err := s.reelService.CreateReel(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (s *Server) getReel(c echo.Context) error {
	r, err := s.reelService.GetReel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Server) deleteReel(c echo.Context) error {
	if err := s.reelService.DeleteReel(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listReels(c echo.Context) error {
	reels, cursor, err := s.reelService.ListReels(c.Request().Context(), listLimit(c, 20), c.QueryParam("cursor"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"reels": reels, "next_cursor": cursor})
}

func (s *Server) trendingReels(c echo.Context) error {
	reels, err := s.reelService.TrendingReels(c.Request().Context(), listLimit(c, 0))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reels)
}

func (s *Server) likeReel(c echo.Context) error {
	if err := s.reelService.LikeReel(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) unlikeReel(c echo.Context) error {
	if err := s.reelService.UnlikeReel(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) commentOnReel(c echo.Context) error {
	var req reel.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	comment, err := s.reelService.CommentOnReel(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (s *Server) deleteReelComment(c echo.Context) error {
	if err := s.reelService.DeleteComment(c.Request().Context(), c.Param("commentId")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getReelComments(c echo.Context) error {
	comments, err := s.reelService.GetComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}
