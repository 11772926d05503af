package httpserver

import (
	"net/http"

	"github.com/craftyard/marketplace-backend/internal/core/domain/post"
	"github.com/labstack/echo/v4"
)

func (s *Server) createPost(c echo.Context) error {
	var req post.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := s.postService.CreatePost(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) getPost(c echo.Context) error {
	p, err := s.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) updatePost(c echo.Context) error {
	var req post.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := s.postService.UpdatePost(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) deletePost(c echo.Context) error {
	if err := s.postService.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listPosts(c echo.Context) error {
	posts, cursor, err := s.postService.ListPosts(c.Request().Context(), listLimit(c, 20), c.QueryParam("cursor"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts, "next_cursor": cursor})
}

func (s *Server) listUserPosts(c echo.Context) error {
	posts, err := s.postService.ListUserPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (s *Server) searchPosts(c echo.Context) error {
	posts, err := s.postService.SearchPosts(c.Request().Context(), c.QueryParam("q"), listLimit(c, 20))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}
