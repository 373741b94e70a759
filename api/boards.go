package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/domain"
)

type boardCreateRequest struct {
	Name    string              `json:"name"`
	Columns []domain.ColumnSpec `json:"columns"`
}

type setColumnsRequest struct {
	Columns []domain.ColumnSpec `json:"columns"`
}

func listBoards(store Storage, auth Authenticator, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		metrics := newBoardRequestMetrics(logger)
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		authStart := time.Now()
		userID, authErr := callerID(c, auth)
		metrics.ObserveAuth(time.Since(authStart))
		if authErr != nil {
			metrics.SetErrorStage("auth")
			err = c.String(http.StatusUnauthorized, authErr.Error())
			return err
		}

		fetchStart := time.Now()
		boards, fetchErr := store.ListBoards(c.Request().Context(), userID)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			err = writeStorageError(c, fetchErr)
			return err
		}
		metrics.SetBoardsReturned(len(boards))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, boards)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func createBoard(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req boardCreateRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c)
		}
		board, err := store.CreateBoard(c.Request().Context(), userID, req.Name, req.Columns)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusCreated, board)
	}
}

func getBoard(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		board, err := store.GetBoard(c.Request().Context(), userID, c.Param("id"))
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, board)
	}
}

func updateBoard(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var upd domain.BoardUpdate
		if err := decodeBody(c, &upd); err != nil {
			return badRequest(c)
		}
		board, err := store.UpdateBoard(c.Request().Context(), userID, c.Param("id"), upd)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, board)
	}
}

func setColumns(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req setColumnsRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c)
		}
		if req.Columns == nil {
			req.Columns = []domain.ColumnSpec{}
		}
		cols, err := store.ReplaceColumns(c.Request().Context(), userID, c.Param("id"), req.Columns)
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusOK, cols)
	}
}

func deleteBoard(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c, auth)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		if err := store.DeleteBoard(c.Request().Context(), userID, c.Param("id")); err != nil {
			return writeStorageError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
