package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"linkup/auth"
	"linkup/dto"
	"linkup/middleware"
	"linkup/models"
	"linkup/monitoring"
	"linkup/repositories"
)

// UserHandler handles registration, authentication and the social graph.
type UserHandler struct {
	users    repositories.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewUserHandler(users repositories.UserRepository, secret []byte, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{users: users, secret: secret, tokenTTL: tokenTTL}
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0)),
	)
}

type loginRequest struct {
	Username string `json:"userName"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Register creates a new identity and logs it in.
// POST /api/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := h.users.Create(r.Context(), &user); err != nil {
		writeError(w, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, h.secret, h.tokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}

	monitoring.RegisterSuccess.Inc()
	logrus.WithField("user_id", user.ID).Info("User registered")

	h.setTokenCookie(w, token)
	resp := dto.NewUserDTO(&user)
	resp.Token = token
	writeJSON(w, http.StatusCreated, resp)
}

// Login verifies credentials and issues a fresh token. Unknown usernames
// and wrong passwords are indistinguishable to the client.
// POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		monitoring.LoginFailure.WithLabelValues("unknown_user").Inc()
		writeMessage(w, http.StatusBadRequest, "Invalid username or password")
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		monitoring.LoginFailure.WithLabelValues("wrong_password").Inc()
		writeMessage(w, http.StatusBadRequest, "Invalid username or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, h.secret, h.tokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}

	monitoring.LoginSuccess.Inc()

	h.setTokenCookie(w, token)
	resp := dto.NewUserDTO(user)
	resp.Token = token
	writeJSON(w, http.StatusOK, resp)
}

// Logout clears the token cookie. Tokens already issued stay valid until
// their natural expiry; there is no server-side revocation.
// POST /api/users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w)
	writeMessage(w, http.StatusOK, "Successfully Logged Out")
}

// GetUser returns the authenticated user's own identity.
// GET /api/users/getuser
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewUserDTO(user))
}

// UserProfile returns any user's identity by id.
// GET /api/users/userprofile/{id}
func (h *UserHandler) UserProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewUserDTO(user))
}

// Follow makes the authenticated user follow the target and returns the
// updated actor.
// PATCH /api/users/follow/{id}
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}
	targetID := mux.Vars(r)["id"]

	if err := h.users.Follow(r.Context(), actorID, targetID); err != nil {
		writeError(w, err)
		return
	}

	monitoring.Follows.Inc()
	logrus.WithFields(logrus.Fields{"follower": actorID, "followee": targetID}).Info("Follow created")

	actor, err := h.users.FindByID(r.Context(), actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserDTO(actor))
}

// Unfollow removes the follow edge and returns the updated actor. Removing
// an edge that never existed succeeds.
// PATCH /api/users/unfollow/{id}
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}
	targetID := mux.Vars(r)["id"]

	if err := h.users.Unfollow(r.Context(), actorID, targetID); err != nil {
		writeError(w, err)
		return
	}

	monitoring.Unfollows.Inc()

	actor, err := h.users.FindByID(r.Context(), actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserDTO(actor))
}

func (h *UserHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *UserHandler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
