package httpserver

import (
	"io"
	"net/http"
	"strconv"

	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
	"github.com/labstack/echo/v4"
)

// listLimit reads the ?limit query parameter with a default page size.
func listLimit(c echo.Context, def int) int {
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return def
}

type createProfileRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (s *Server) createProfile(c echo.Context) error {
	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	u, err := s.userService.CreateProfile(c.Request().Context(), req.Username, req.DisplayName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) getProfile(c echo.Context) error {
	u, err := s.userService.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateProfile(c echo.Context) error {
	var req user.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	u, err := s.userService.UpdateProfile(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateProfileImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read image file")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read image file")
	}
	ext := c.FormValue("ext")
	if ext == "" {
		ext = "jpeg"
	}
	url, err := s.userService.UpdateProfileImage(c.Request().Context(), data, ext)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (s *Server) followUser(c echo.Context) error {
	if err := s.userService.Follow(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) unfollowUser(c echo.Context) error {
	if err := s.userService.Unfollow(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listUsers(c echo.Context) error {
	users, cursor, err := s.userService.ListUsers(c.Request().Context(), listLimit(c, 20), c.QueryParam("cursor"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": users, "next_cursor": cursor})
}

func (s *Server) searchUsers(c echo.Context) error {
	users, err := s.userService.SearchUsers(c.Request().Context(), c.QueryParam("q"), listLimit(c, 20))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (s *Server) getUserReviewStats(c echo.Context) error {
	stats := s.userService.GetReviewStats(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, stats)
}
