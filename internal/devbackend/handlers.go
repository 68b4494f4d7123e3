package devbackend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/rs/zerolog"
)

const (
	maxUploadBytes  = 10 << 20
	maxRequestBytes = 1 << 20
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.users.Register(req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("user registered")
	s.jsonResponse(w, http.StatusCreated, types.SignupResponse{Message: "User created successfully", User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	id, user, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwt.GenerateToken(id, user.Email)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to generate token")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	s.jsonResponse(w, http.StatusOK, types.LoginResponse{Token: token, User: user})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Upload must be a multipart form with a file field")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload")
		return
	}
	if len(data) > maxUploadBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "File is larger than 10 MB")
		return
	}
	if !mimetype.Detect(data).Is("application/pdf") {
		s.errorResponse(w, http.StatusBadRequest, "Invalid file format: Please upload a PDF file.")
		return
	}

	id := uuid.New().String()
	text, err := s.extractor.Extract(r.Context(), bytes.NewReader(data), header.Filename)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("filename", header.Filename).Msg("text extraction failed")
		s.errorResponse(w, http.StatusUnprocessableEntity, "Could not read text from the PDF")
		return
	}

	s.mu.Lock()
	s.uploads[id] = &upload{id: id, filename: header.Filename, pdf: data, text: text}
	s.mu.Unlock()

	zerolog.Ctx(r.Context()).Info().Str("upload_id", id).Int("bytes", len(data)).Int("chars", len(text)).Msg("resume uploaded")
	s.jsonResponse(w, http.StatusOK, types.UploadResult{
		URL:           fmt.Sprintf("%s/uploads/%s.pdf", baseURL(r), id),
		ExtractedText: text,
	})
}

func (s *Server) handleUploadedFile(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(r.PathValue("file"), ".pdf")
	up, ok := s.lookupUpload(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, (&ErrUnknownUpload{Reference: id}).Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", up.filename))
	_, _ = w.Write(up.pdf)
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("url")
	if ref == "" {
		s.errorResponse(w, http.StatusBadRequest, "url query parameter is required")
		return
	}
	up, ok := s.lookupUpload(uploadID(ref))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, (&ErrUnknownUpload{Reference: ref}).Error())
		return
	}

	script, err := s.generator.ScriptFromText(r.Context(), up.text)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("upload_id", up.id).Msg("script generation failed")
		s.errorResponse(w, http.StatusBadGateway, "Failed to generate interview questions")
		return
	}

	var env types.ScriptEnvelope
	env.Question.InterviewScript = *script
	for _, items := range []*[]types.QuestionItem{
		&env.Question.InterviewScript.OpeningRapportBuilding,
		&env.Question.InterviewScript.ResumeSpecificProbes,
		&env.Question.InterviewScript.SkillCompetencyValidation,
		&env.Question.InterviewScript.BehavioralCulturalFit,
		&env.Question.InterviewScript.CandidateMotivation,
	} {
		if *items == nil {
			*items = []types.QuestionItem{}
		}
	}
	s.jsonResponse(w, http.StatusOK, env)
}

func (s *Server) handleMark(w http.ResponseWriter, r *http.Request) {
	var req types.MarkRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.generator.Mark(r.Context(), req.Question, req.Answer)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("marking failed")
		s.errorResponse(w, http.StatusBadGateway, "Failed to score the answer")
		return
	}
	if res.FollowUpQuestions == nil {
		res.FollowUpQuestions = []types.FollowUp{}
	}
	s.jsonResponse(w, http.StatusOK, types.MarkEnvelope{Result: *res})
}

func (s *Server) handleTechQuestions(w http.ResponseWriter, r *http.Request) {
	var req types.TechQuestionsRequest
	if !s.decode(w, r, &req) {
		return
	}

	qs, err := s.generator.TechQuestions(r.Context(), req.JD, req.Limit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("tech question generation failed")
		s.errorResponse(w, http.StatusBadGateway, "Failed to find technical questions")
		return
	}
	if qs == nil {
		qs = []types.TechQuestion{}
	}
	s.jsonResponse(w, http.StatusOK, qs)
}

func (s *Server) handleLeetCode(w http.ResponseWriter, r *http.Request) {
	var req types.LeetCodeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, cannedLeetCode(strings.TrimSpace(req.Username)))
}

// decode reads a JSON body into v and validates it, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := dec.Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err).Error())
		return false
	}
	return true
}

func (s *Server) lookupUpload(id string) (*upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	up, ok := s.uploads[id]
	return up, ok
}

// uploadID accepts the full upload URL or a bare id.
func uploadID(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		ref = path.Base(u.Path)
	}
	return strings.TrimSuffix(ref, ".pdf")
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// validationMessage reports the first failed field.
func validationMessage(err error) *ErrValidation {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ErrValidation{Field: ve[0].Field(), Message: ve[0].Tag()}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}
