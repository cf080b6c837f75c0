package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"codecanvas/backend/internal/auth"
	"codecanvas/backend/internal/store"
)

// SignUp creates a new account. The password is bcrypt-hashed before it
// touches the store and the hash never appears in a response.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "Username, email, and password are required")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if _, err := h.users.Create(r.Context(), req.Username, req.Name, req.Email, string(hashedPassword)); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			fail(w, http.StatusConflict, "Email already exists")
			return
		}
		log.Printf("Failed to create user: %v", err)
		fail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	created(w, "User created successfully", nil)
}

// Login checks the credentials and issues the session token. The unknown-email
// and wrong-password messages are deliberately distinct; that distinction is
// part of the observed contract.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	user, err := h.users.ByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, http.StatusUnauthorized, msgUserNotFound)
			return
		}
		log.Printf("Failed to look up user by email: %v", err)
		fail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.CreateJWT(user.Email, user.ID.String())
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	ok(w, "User logged in successfully", envelope{
		"token":  token,
		"userId": user.ID,
	})
}

// GetUserDetails returns the account for the given userId, sans hash.
func (h *Handler) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	user, found := h.resolveOwner(w, r, req.UserID)
	if !found {
		return
	}

	ok(w, "User details fetched successfully", envelope{"user": user})
}
