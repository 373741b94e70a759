package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard-api/suggest"
)

type suggestRequest struct {
	TaskDescription string `json:"task_description"`
}

type suggestResponse struct {
	Subtasks []suggest.Title `json:"subtasks"`
}

type suggestErrorResponse struct {
	Error       string `json:"error"`
	RawResponse string `json:"raw_response"`
}

// suggestSubtasks proxies a task description to the language-model endpoint
// and returns the parsed subtask titles. The endpoint is stateless and not
// ownership-scoped; upstream failures surface as a structured error payload
// carrying the raw response body when one was received.
func suggestSubtasks(sugg Suggester) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req suggestRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c)
		}

		titles, err := sugg.Suggest(c.Request().Context(), req.TaskDescription)
		if err != nil {
			resp := suggestErrorResponse{Error: err.Error()}
			var ue *suggest.UpstreamError
			if errors.As(err, &ue) {
				resp.RawResponse = ue.RawBody
			}
			return c.JSON(http.StatusInternalServerError, resp)
		}
		return c.JSON(http.StatusOK, suggestResponse{Subtasks: titles})
	}
}
