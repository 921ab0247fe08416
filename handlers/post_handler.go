package handlers

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gorilla/mux"

	"linkup/dto"
	"linkup/middleware"
	"linkup/models"
	"linkup/monitoring"
	"linkup/repositories"
)

// PostHandler handles post CRUD and likes.
type PostHandler struct {
	posts repositories.PostRepository
}

func NewPostHandler(posts repositories.PostRepository) *PostHandler {
	return &PostHandler{posts: posts}
}

type postRequest struct {
	Body  string `json:"body"`
	Photo string `json:"photo"`
	Video string `json:"video"`
}

func (r postRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Body, validation.Required),
	)
}

// Create stores a new post authored by the authenticated user.
// POST /api/post/create
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	post := models.Post{
		Body:     req.Body,
		Photo:    req.Photo,
		Video:    req.Video,
		AuthorID: userID,
	}
	if err := h.posts.Create(r.Context(), &post); err != nil {
		writeError(w, err)
		return
	}

	monitoring.PostsCreated.Inc()
	writeJSON(w, http.StatusCreated, dto.NewPostDTO(&post))
}

// GetPosts returns all posts authored by the authenticated user.
// GET /api/post/getposts
func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	posts, err := h.posts.FindByAuthor(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(posts) == 0 {
		writeMessage(w, http.StatusNotFound, "Posts not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"posts": dto.NewPostDTOs(posts)})
}

// Update edits a post; only its author may do so.
// PATCH /api/post/updatepost/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	post, err := h.posts.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if post.AuthorID != userID {
		writeMessage(w, http.StatusForbidden, "Unauthorized to update this post")
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	post.Body = req.Body
	post.Photo = req.Photo
	post.Video = req.Video
	if err := h.posts.Update(r.Context(), post); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewPostDTO(post))
}

// Delete removes a post; only its author may do so.
// DELETE /api/post/deletepost/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	post, err := h.posts.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if post.AuthorID != userID {
		writeMessage(w, http.StatusForbidden, "Unauthorized to delete this post")
		return
	}

	if err := h.posts.Delete(r.Context(), post.ID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Post deleted successfully")
}

// Like records a like; a second like by the same user is rejected.
// PATCH /api/post/like/{id}
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	if err := h.posts.Like(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Post liked successfully")
}

// Unlike removes a like; unliking a post the user never liked is rejected.
// PATCH /api/post/unlike/{id}
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
		return
	}

	if err := h.posts.Unlike(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Post unliked successfully")
}
