package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flow/pkg/document"
	"github.com/matzehuels/flow/pkg/errors"
	"github.com/matzehuels/flow/pkg/observability"
	"github.com/matzehuels/flow/pkg/pipeline"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"formats": pipeline.SupportedFormats()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.layoutOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	cacheStatus := "miss"
	if res.CacheInfo.SolveHit && res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Flow-Cache", cacheStatus)
	w.Header().Set("X-Flow-Nodes", strconv.Itoa(res.Stats.NodeCount))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// layoutOptions builds pipeline options from the request body and query.
func (s *Server) layoutOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Logger: s.logger}

	var err error
	if opts.Width, err = floatParam(q.Get("width"), "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q.Get("height"), "height"); err != nil {
		return opts, err
	}
	if opts.Place, err = boolParam(q.Get("place"), "place"); err != nil {
		return opts, err
	}
	if opts.Detailed, err = boolParam(q.Get("detailed"), "detailed"); err != nil {
		return opts, err
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	} else {
		opts.Formats = []string{pipeline.FormatJSON}
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		f, err := document.ParseFormat(ct)
		if err != nil {
			return opts, err
		}
		opts.DocumentFormat = f
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "document larger than %d bytes", s.maxBody)
		}
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	opts.Document = body
	return opts, nil
}

func floatParam(v, name string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidViewport, "invalid %s: %q", name, v)
	}
	return f, nil
}

func boolParam(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	return b, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
