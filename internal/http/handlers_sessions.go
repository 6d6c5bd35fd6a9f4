package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tasker-app/tasker/internal/app"
)

func (s *Server) handleStartSession(c echo.Context) error {
	session, err := s.sessions.StartSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionBody{envelope: ok("work session started"), Session: toSessionResponse(session)})
}

func (s *Server) handleStopSession(c echo.Context) error {
	u, err := s.sessions.StopSession(c.Request().Context(), c.Param("id"), c.Param("sessionId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userBody{envelope: ok("work session stopped"), User: toUserResponse(u)})
}

func (s *Server) handleDeleteSession(c echo.Context) error {
	if err := s.sessions.DeleteSession(c.Request().Context(), c.Param("sessionId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("work session deleted"))
}

func (s *Server) handleListSessions(c echo.Context) error {
	sessions, err := s.sessions.ListSessions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionsBody{envelope: ok("work sessions"), Sessions: toSessionResponses(sessions)})
}

func (s *Server) handleCurrentSession(c echo.Context) error {
	session, err := s.sessions.CurrentSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	msg := "no active work session"
	if session != nil {
		msg = "active work session"
	}
	return c.JSON(http.StatusOK, sessionBody{envelope: ok(msg), Session: toSessionResponse(session)})
}

func (s *Server) handleTodaySessions(c echo.Context) error {
	view, err := s.sessions.TodaySessions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodayBody(view))
}

func (s *Server) handleDailyTotals(c echo.Context) error {
	totals, err := s.sessions.DailyTotals(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dailyTotalsBody{envelope: ok("daily totals"), Totals: totals})
}

func (s *Server) handleRangeTotal(c echo.Context) error {
	from, to, err := app.ParseRange(c.QueryParam("from"), c.QueryParam("to"), s.config.Location)
	if err != nil {
		return err
	}

	report, err := s.sessions.RangeTotal(c.Request().Context(), c.Param("id"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rangeBody{
		envelope:   ok("range total"),
		From:       report.From,
		To:         report.To,
		Sessions:   toSessionResponses(report.Sessions),
		TotalSec:   report.TotalSec,
		TotalHours: report.TotalHours(),
	})
}
