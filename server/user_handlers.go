package server

import (
	"encoding/json"
	"net/http"

	"github.com/booksight/qbo-connect/users"
)

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateUserHandler registers a new user.
func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
			return
		}
		if request.Email == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "email is required"})
			return
		}

		user := &users.User{Email: request.Email, Name: request.Name}
		if err := s.deps.Users.Create(r.Context(), user); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userList, err := s.deps.Users.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, userList)
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.deps.Users.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Users.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
	}
}
