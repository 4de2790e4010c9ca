package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duckcorp/portal/internal/api/middleware"
	"github.com/duckcorp/portal/internal/core/ports"
)

// loginPage is where browsers land after logging out.
const loginPage = "/login.html"

type AuthHandler struct {
	authService ports.AuthService
	users       ports.UserDirectory
}

func NewAuthHandler(authService ports.AuthService, users ports.UserDirectory) *AuthHandler {
	return &AuthHandler{authService: authService, users: users}
}

// Login verifies credentials and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, sess, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusOK, sessionResponse{Token: token, User: sess})
}

// Register creates an account with role user and logs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, sess, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, sessionResponse{Token: token, User: sess})
}

// Logout destroys the caller's session, if any. GET redirects to the login
// page, POST answers with JSON.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  okResponse
// @Success      302
// @Router       /logout [post]
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middleware.TokenFrom(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}

	clearSessionCookie(c)
	if c.Request().Method == http.MethodGet {
		return c.Redirect(http.StatusFound, loginPage)
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Session returns the caller's snapshot, or null when anonymous.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, _ := middleware.SessionFrom(c)
	return c.JSON(http.StatusOK, sessionResponse{User: sess})
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change own password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.users.ChangePassword(c.Request().Context(), sess.Username, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
