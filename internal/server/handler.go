package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/KaramelBytes/unirank-cli/internal/analysis"
	"github.com/KaramelBytes/unirank-cli/internal/render"
	"github.com/KaramelBytes/unirank-cli/internal/session"
	"github.com/KaramelBytes/unirank-cli/internal/view"
)

// Handler returns the dashboard routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/chart", s.handleChart)
	mux.HandleFunc("GET /api/chart.svg", s.handleImage(render.SVG))
	mux.HandleFunc("GET /api/chart.png", s.handleImage(render.PNG))
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return s.logRequests(mux)
}

// controls reads the sidebar values from the query string. Numbers are
// clamped to the slider ranges; missing or unknown values use the defaults.
func (s *Server) controls(q url.Values, size int) (view.Mode, view.Params) {
	p := s.cfg.ViewDefaults()
	mode := view.ByCountry
	if m, err := view.ParseMode(q.Get("mode")); err == nil {
		mode = m
	}
	if v, err := strconv.Atoi(q.Get("min_count")); err == nil {
		p.MinCount = v
	}
	p.MinCount = view.ClampMinCount(p.MinCount)
	if ct, err := view.ParseChartType(q.Get("chart_type")); err == nil {
		p.ChartType = ct
	}
	if v, err := strconv.Atoi(q.Get("top_n")); err == nil {
		p.TopN = v
	}
	p.TopN = view.ClampTopN(p.TopN, size)
	if o, err := view.ParseOrder(q.Get("order")); err == nil {
		p.Order = o
	}
	return mode, p
}

func (s *Server) spec(r *http.Request) (*session.Session, view.Mode, view.Params, view.ChartSpec) {
	sess := s.Session()
	mode, p := s.controls(r.URL.Query(), sess.Size())
	return sess, mode, p, sess.Render(mode, p)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	_, _, _, spec := s.spec(r)
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleImage(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, mode, _, spec := s.spec(r)
		if !spec.Drawable() {
			msg := spec.Message
			if msg == "" {
				msg = render.ErrNothingToDraw.Error()
			}
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
		var buf bytes.Buffer
		if err := render.Render(&buf, spec, format, s.renderOptions()); err != nil {
			s.log.Error("render chart", "mode", mode, "format", format, "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess := s.Session()
	if sess.Err != nil {
		writeError(w, http.StatusServiceUnavailable, sess.NoDataReason())
		return
	}
	writeJSON(w, http.StatusOK, analysis.Summarize(sess.Dataset, analysis.DefaultOptions()))
}

type healthResponse struct {
	Status   string    `json:"status"`
	Session  string    `json:"session"`
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
	Error    string    `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sess := s.Session()
	resp := healthResponse{
		Status:   "ok",
		Session:  sess.ID,
		Source:   sess.Source,
		Rows:     sess.Size(),
		LoadedAt: sess.LoadedAt,
	}
	if sess.NoData() {
		resp.Status = "no_data"
		resp.Error = sess.NoDataReason()
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- helpers ---

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "took", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
