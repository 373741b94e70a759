package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard-api/domain"
)

type taskCreateRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Column      string               `json:"column"`
	Subtasks    []domain.SubtaskSpec `json:"subtasks"`
}

func listTasks(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		tasks, err := store.ListTasks(c.Request().Context(), userID)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

func createTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req taskCreateRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c)
		}
		task, err := store.CreateTask(c.Request().Context(), userID, req.Column, req.Title, req.Description, req.Subtasks)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusCreated, task)
	}
}

func getTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		task, err := store.GetTask(c.Request().Context(), userID, c.Param("id"))
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func updateTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var upd domain.TaskUpdate
		if err := decodeBody(c, &upd); err != nil {
			return badRequest(c)
		}
		task, err := store.UpdateTask(c.Request().Context(), userID, c.Param("id"), upd)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		if err := store.DeleteTask(c.Request().Context(), userID, c.Param("id")); err != nil {
			return writeStorageError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
