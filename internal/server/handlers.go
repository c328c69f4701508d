package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/matzehuels/prismaflow/pkg/buildinfo"
	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
	prismaio "github.com/matzehuels/prismaflow/pkg/io"
	"github.com/matzehuels/prismaflow/pkg/pipeline"
	"github.com/matzehuels/prismaflow/pkg/template"
)

// Response headers set by the render routes.
const (
	HeaderVariant  = "X-Prismaflow-Variant"
	HeaderUnlinked = "X-Prismaflow-Unlinked"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	OK      bool           `json:"ok"`
	Service string         `json:"service"`
	Build   buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Service: "prismaflow", Build: buildinfo.Get()})
}

func (s *Server) handleTemplate(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+template.FileName+`"`)
	_, _ = w.Write(template.CSV())
}

type decoder func(io.Reader) (flow.Input, error)

func decodeJSON(r io.Reader) (flow.Input, error) { return prismaio.ReadJSON(r) }
func decodeCSV(r io.Reader) (flow.Input, error)  { return prismaio.ReadCSV(r) }

func (s *Server) handleRender(decode decoder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.renderOptions(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		in, err := decode(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		res, err := s.runner.Execute(r.Context(), in, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		format := opts.Formats[0]
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set(HeaderVariant, res.Variant.Kind.String())
		if len(res.Warnings) > 0 {
			boxes := make([]string, len(res.Warnings))
			for i, warn := range res.Warnings {
				boxes[i] = warn.Box
			}
			w.Header().Set(HeaderUnlinked, strings.Join(boxes, ","))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[format])
	}
}

// renderOptions reads the query parameters of a render request.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Previous: true,
		Other:    true,
		Style:    s.style,
		Formats:  []string{pipeline.FormatSVG},
		Logger:   s.logger,
	}

	var err error
	if opts.Previous, err = boolParam(q.Get("previous"), true); err != nil {
		return opts, err
	}
	if opts.Other, err = boolParam(q.Get("other"), true); err != nil {
		return opts, err
	}
	if opts.Interactive, err = boolParam(q.Get("interactive"), false); err != nil {
		return opts, err
	}
	if v := q.Get("format"); v != "" {
		if err := pipeline.ValidateFormat(v); err != nil {
			return opts, err
		}
		opts.Formats = []string{v}
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = scale
	}
	return opts, nil
}

func boolParam(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, errors.New(errors.ErrCodeInvalidInput, "invalid boolean %q", v)
	}
	return b, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidBox, errors.ErrCodeInvalidMetric:
		return http.StatusBadRequest
	case errors.ErrCodeMissingData, errors.ErrCodeMalformedExclusion:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	id := requestIDFrom(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "id", id, "err", err)
	} else {
		s.logger.Debug("rejected request", "id", id, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   errors.UserMessage(err),
		RequestID: id,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
