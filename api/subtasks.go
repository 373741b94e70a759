package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard-api/domain"
)

type subtaskCreateRequest struct {
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
	Task        string `json:"task"`
}

func listSubtasks(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		subs, err := store.ListSubtasks(c.Request().Context(), userID)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, subs)
	}
}

func createSubtask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req subtaskCreateRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c)
		}
		sub, err := store.CreateSubtask(c.Request().Context(), userID, req.Task, req.Title, req.IsCompleted)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusCreated, sub)
	}
}

func getSubtask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		sub, err := store.GetSubtask(c.Request().Context(), userID, c.Param("id"))
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, sub)
	}
}

func updateSubtask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var upd domain.SubtaskUpdate
		if err := decodeBody(c, &upd); err != nil {
			return badRequest(c)
		}
		sub, err := store.UpdateSubtask(c.Request().Context(), userID, c.Param("id"), upd)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, sub)
	}
}

func deleteSubtask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		if err := store.DeleteSubtask(c.Request().Context(), userID, c.Param("id")); err != nil {
			return writeStorageError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
