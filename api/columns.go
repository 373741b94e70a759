package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard-api/domain"
)

type columnCreateRequest struct {
	Name  string `json:"name"`
	Board string `json:"board"`
}

func listColumns(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		cols, err := store.ListColumns(c.Request().Context(), userID)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, cols)
	}
}

func createColumn(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req columnCreateRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c)
		}
		col, err := store.CreateColumn(c.Request().Context(), userID, req.Board, req.Name)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusCreated, col)
	}
}

func getColumn(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		col, err := store.GetColumn(c.Request().Context(), userID, c.Param("id"))
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, col)
	}
}

func updateColumn(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var upd domain.ColumnUpdate
		if err := decodeBody(c, &upd); err != nil {
			return badRequest(c)
		}
		col, err := store.UpdateColumn(c.Request().Context(), userID, c.Param("id"), upd)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, col)
	}
}

func deleteColumn(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		if err := store.DeleteColumn(c.Request().Context(), userID, c.Param("id")); err != nil {
			return writeStorageError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
