package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/storage"
)

const requestBodyMaxSize = 1 << 20

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, auth Authenticator, sugg Suggester, logger *log.Logger) {
	e.POST("/auth/register/", registerUser(store))
	e.POST("/auth/login/", loginUser(store, auth))

	e.GET("/boards/", listBoards(store, auth, logger))
	e.POST("/boards/", createBoard(store, auth))
	e.GET("/boards/:id/", getBoard(store, auth))
	e.PUT("/boards/:id/", updateBoard(store, auth))
	e.PATCH("/boards/:id/", updateBoard(store, auth))
	e.DELETE("/boards/:id/", deleteBoard(store, auth))
	e.POST("/boards/:id/set_columns/", setColumns(store, auth))

	e.GET("/columns/", listColumns(store, auth))
	e.POST("/columns/", createColumn(store, auth))
	e.GET("/columns/:id/", getColumn(store, auth))
	e.PUT("/columns/:id/", updateColumn(store, auth))
	e.PATCH("/columns/:id/", updateColumn(store, auth))
	e.DELETE("/columns/:id/", deleteColumn(store, auth))

	e.GET("/tasks/", listTasks(store, auth))
	e.POST("/tasks/", createTask(store, auth))
	e.GET("/tasks/:id/", getTask(store, auth))
	e.PUT("/tasks/:id/", updateTask(store, auth))
	e.PATCH("/tasks/:id/", updateTask(store, auth))
	e.DELETE("/tasks/:id/", deleteTask(store, auth))

	e.GET("/subtasks/", listSubtasks(store, auth))
	e.POST("/subtasks/", createSubtask(store, auth))
	e.GET("/subtasks/:id/", getSubtask(store, auth))
	e.PUT("/subtasks/:id/", updateSubtask(store, auth))
	e.PATCH("/subtasks/:id/", updateSubtask(store, auth))
	e.DELETE("/subtasks/:id/", deleteSubtask(store, auth))

	e.POST("/ai/", suggestSubtasks(sugg))

	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

// decodeBody decodes a JSON request body into v, rejecting unknown fields
// and bodies over requestBodyMaxSize.
func decodeBody(c echo.Context, v any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// callerID resolves the authenticated user from the Authorization header.
func callerID(c echo.Context, auth Authenticator) (string, error) {
	return auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
}

// writeStorageError maps storage errors onto the REST error contract:
// validation failures become 400 field-error bodies, missing or out-of-scope
// entities become an identical 404, everything else (including rolled-back
// transactions) a generic 500.
func writeStorageError(c echo.Context, err error) error {
	var ve storage.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string][]string{ve.Field: {ve.Message}})
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "not found"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid body"})
}
