package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/catkeeper/internal/common"
	"github.com/dmitrijs2005/catkeeper/internal/server/models"
	"github.com/dmitrijs2005/catkeeper/internal/server/validation"
)

func (s *Server) userList(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, users)
}

func (s *Server) userGet(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) userCreate(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		s.writeError(w, r, common.E(common.ErrValidation, "Invalid request body"))
		return
	}

	res, err := s.users.Create(r.Context(), &user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) userUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	fields, err := decodeFields(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Update(r.Context(), principalFrom(r.Context()), id, fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) userUpdateCurrent(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.UpdateCurrent(r.Context(), principalFrom(r.Context()), fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) userDelete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Delete(r.Context(), principalFrom(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) userDeleteCurrent(w http.ResponseWriter, r *http.Request) {
	res, err := s.users.DeleteCurrent(r.Context(), principalFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// checkToken echoes the verified principal back, or rejects the request when
// the token was absent or not verifiable.
func (s *Server) checkToken(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if p == nil {
		s.writeError(w, r, common.E(common.ErrForbidden, "token not valid"))
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// decodeFields reads a partial-update body as a field map. Allow-listing of
// the keys happens in the service and repository layers.
func decodeFields(r *http.Request) (map[string]any, error) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, common.E(common.ErrValidation, "Invalid request body")
	}
	return fields, nil
}
