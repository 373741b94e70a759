package api

import (
	"errors"
	"net/http"
	netmail "net/mail"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"taskboard-api/storage"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func registerUser(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req registerRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c)
		}
		if req.Email != "" {
			if _, err := netmail.ParseAddress(req.Email); err != nil {
				return c.JSON(http.StatusBadRequest, map[string][]string{"email": {"enter a valid email address"}})
			}
		}
		if len(req.Password) < 8 {
			return c.JSON(http.StatusBadRequest, map[string][]string{"password": {"password must be at least 8 characters long"}})
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal error"})
		}
		user, err := store.CreateUser(c.Request().Context(), req.Username, req.Email, string(hash))
		if err != nil {
			return writeStorageError(c, err)
		}
		return c.JSON(http.StatusCreated, user)
	}
}

func loginUser(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c)
		}

		user, err := store.UserByUsername(c.Request().Context(), req.Username)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
			}
			return writeStorageError(c, err)
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
		}

		token, err := auth.IssueToken(user.ID)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal error"})
		}
		return c.JSON(http.StatusOK, tokenResponse{Token: token})
	}
}
