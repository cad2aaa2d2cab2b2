package handlers

import (
	"errors"
	"net/http"

	"booktracker/internal/service"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary      Sign up
// @Description  Creates a user and returns a bearer token valid for 7 days.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Signup payload"
// @Success      201   {object}  map[string]interface{}  "message, token, user"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}

	user, token, err := h.services.Authorization.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, "signup_failed", err, "email", req.Email)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": msgUserCreated,
		"token":   token,
		"user":    user.Public(),
	})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login payload"
// @Success      200   {object}  map[string]interface{}  "message, token, user"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}

	user, token, err := h.services.Authorization.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Login has its own missing-fields message on the wire.
		if errors.Is(err, service.ErrMissingFields) {
			if h.log != nil {
				h.log.Infow("login_bad_request", "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingLoginFields})
			return
		}
		h.respondError(c, "login_failed", err, "email", req.Email)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": msgLoginOK,
		"token":   token,
		"user":    user.Public(),
	})
}
