package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-sygnea/pkg/orchestrator"
	"github.com/goliatone/go-sygnea/pkg/palette"
	"github.com/goliatone/go-sygnea/pkg/profile"
	"github.com/goliatone/go-sygnea/pkg/render"
	"github.com/goliatone/go-sygnea/pkg/social"
	"github.com/goliatone/go-sygnea/pkg/validation"
)

// errorBody is the error envelope, with schema issues for rejected bodies.
type errorBody struct {
	Error  string             `json:"error"`
	Issues []validation.Issue `json:"issues,omitempty"`
}

// signatureRequest is the JSON body of the signature routes.
type signatureRequest struct {
	Profile profile.Profile `json:"profile"`
	Palette string          `json:"palette"`
}

// Document returns the parsed API description.
func (s *Server) Document() *openapi3.T {
	return s.doc
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.docJSON)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.gen.Templates())
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, social.Platforms())
}

func (s *Server) handleSignature(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSignature(w, r)
	if !ok {
		return
	}
	result, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.respondRenderErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *Server) handleSignatureFormat(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		respondErr(w, http.StatusNotFound, err.Error())
		return
	}
	req, ok := s.decodeSignature(w, r)
	if !ok {
		return
	}
	out, err := s.gen.Render(r.Context(), req, format)
	if err != nil {
		s.respondRenderErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := orchestrator.Request{
		Profile:  profileFromQuery(query),
		Template: chi.URLParam(r, "template"),
		Palette:  query.Get("palette"),
	}

	encoded := query.Encode()
	href := func(id string) string {
		link := "/preview/" + url.PathEscape(id)
		if encoded != "" {
			link += "?" + encoded
		}
		return link
	}

	page, err := s.gen.Preview(r.Context(), req, href)
	if err != nil {
		s.respondRenderErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.FormatHTML.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// decodeSignature reads, validates and decodes the request body. It writes a
// 400 and returns false on failure.
func (s *Server) decodeSignature(w http.ResponseWriter, r *http.Request) (orchestrator.Request, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return orchestrator.Request{}, false
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		respondErr(w, http.StatusBadRequest, "request body is required")
		return orchestrator.Request{}, false
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		respondErr(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return orchestrator.Request{}, false
	}
	if result := validation.Schema(s.schema, value); !result.Valid {
		respond(w, http.StatusBadRequest, errorBody{
			Error:  "invalid request body",
			Issues: result.Issues,
		})
		return orchestrator.Request{}, false
	}

	var body signatureRequest
	if err := decodeJSON(raw, &body); err != nil {
		respondErr(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return orchestrator.Request{}, false
	}

	return orchestrator.Request{
		Profile:  body.Profile,
		Template: chi.URLParam(r, "template"),
		Palette:  body.Palette,
	}, true
}

func (s *Server) respondRenderErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, render.ErrTemplateNotFound):
		respondErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, palette.ErrVariantNotFound), errors.Is(err, palette.ErrThemeNotFound):
		respondErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, render.ErrUnsupportedFormat):
		respondErr(w, http.StatusNotFound, err.Error())
	default:
		s.respondInternalErr(w, r, err)
	}
}

// profileFromQuery reads name, position, website and one parameter per
// social platform id.
func profileFromQuery(q url.Values) profile.Profile {
	p := profile.Profile{
		Name:     q.Get("name"),
		Position: q.Get("position"),
		Website:  q.Get("website"),
	}
	for _, id := range social.IDs() {
		if handle := q.Get(id); handle != "" {
			p = p.WithSocial(id, handle)
		}
	}
	return p
}

func decodeJSON(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
