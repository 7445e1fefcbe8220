package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/catkeeper/internal/common"
	"github.com/dmitrijs2005/catkeeper/internal/server/services"
	"github.com/dmitrijs2005/catkeeper/internal/server/upload"
	"github.com/dmitrijs2005/catkeeper/internal/server/validation"
)

const maxUploadBytes = 10 << 20

func (s *Server) catList(w http.ResponseWriter, r *http.Request) {
	cats, err := s.cats.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cats)
}

func (s *Server) catGet(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cat, err := s.cats.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cat)
}

func (s *Server) catImage(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	url, err := s.cats.ImageURL(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// catCreate accepts a multipart form with the image under the "cat" field
// and the descriptive fields as form values. The stored object key and the
// request coordinates are attached as side inputs before the service runs.
func (s *Server) catCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, r, common.E(common.ErrValidation, "Invalid request body"))
		return
	}

	in := &services.CreateCatInput{
		Name: r.FormValue("cat_name"),
	}
	if weight, err := strconv.ParseFloat(r.FormValue("weight"), 64); err == nil {
		in.Weight = weight
	}
	if birthdate, err := time.Parse("2006-01-02", r.FormValue("birthdate")); err == nil {
		in.Birthdate = birthdate
	}

	if file, header, err := r.FormFile("cat"); err == nil {
		defer file.Close()
		key := upload.RandomKey(header.Filename)
		if err := s.store.Save(r.Context(), key, file); err != nil {
			s.writeError(w, r, err)
			return
		}
		in.Filename = key
	}

	coords, err := s.geo.Locate(r.Context())
	if err != nil {
		s.logger.Warn(r.Context(), "coordinates unavailable", "error", err.Error())
	} else {
		in.Coords = coords
	}

	res, err := s.cats.Create(r.Context(), principalFrom(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) catUpdate(w http.ResponseWriter, r *http.Request) {
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

	res, err := s.cats.Update(r.Context(), principalFrom(r.Context()), id, fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) catDelete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID("id", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.cats.Delete(r.Context(), principalFrom(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}
