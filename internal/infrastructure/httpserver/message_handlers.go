package httpserver

import (
	"net/http"

	"github.com/craftyard/marketplace-backend/internal/core/domain/message"
	"github.com/labstack/echo/v4"
)

func (s *Server) sendMessage(c echo.Context) error {
	var req message.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	m, err := s.messageService.SendMessage(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (s *Server) getConversations(c echo.Context) error {
	conversations, err := s.messageService.GetConversations(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, conversations)
}

func (s *Server) getMessages(c echo.Context) error {
	messages, cursor, err := s.messageService.GetMessages(c.Request().Context(), c.Param("id"), listLimit(c, 50), c.QueryParam("cursor"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"messages": messages, "next_cursor": cursor})
}

func (s *Server) markConversationRead(c echo.Context) error {
	if err := s.messageService.MarkConversationRead(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteMessage(c echo.Context) error {
	if err := s.messageService.DeleteMessage(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
