package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tasker-app/tasker/internal/domain"
	"go.uber.org/zap"
)

func (s *Server) handleCreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid create user request", zap.Error(err))
		return domain.InvalidArgument("invalid request body")
	}

	u, err := s.users.CreateUser(c.Request().Context(), &domain.User{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       domain.Role(req.Role),
		DailyHours: req.DailyHours,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userBody{envelope: ok("user created"), User: toUserResponse(u)})
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, usersBody{envelope: ok("users"), Users: out})
}

func (s *Server) handleGetUser(c echo.Context) error {
	u, err := s.users.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userBody{envelope: ok("user"), User: toUserResponse(u)})
}

func (s *Server) handleRemoveUser(c echo.Context) error {
	if err := s.users.RemoveUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("user removed"))
}

func (s *Server) handleSetDailyHours(c echo.Context) error {
	var req DailyHoursRequest
	if err := c.Bind(&req); err != nil || req.DailyHours == nil {
		return domain.InvalidArgument("dailyHours is required")
	}
	u, err := s.users.SetDailyHours(c.Request().Context(), c.Param("id"), *req.DailyHours)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userBody{envelope: ok("daily hours updated"), User: toUserResponse(u)})
}

func (s *Server) handleRenameUser(c echo.Context) error {
	var req RenameRequest
	if err := c.Bind(&req); err != nil {
		return domain.InvalidArgument("invalid request body")
	}
	u, err := s.users.RenameUser(c.Request().Context(), c.Param("id"), req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userBody{envelope: ok("user renamed"), User: toUserResponse(u)})
}
