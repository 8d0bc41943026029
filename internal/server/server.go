package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"

	"github.com/Phishman81/seo-content-briefing-generator/internal/briefing"
	"github.com/Phishman81/seo-content-briefing-generator/internal/keywords"
	"github.com/Phishman81/seo-content-briefing-generator/internal/pipeline"
	"github.com/Phishman81/seo-content-briefing-generator/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var md = goldmark.New()

// maxUploadBytes bounds the keyword CSV upload size.
const maxUploadBytes = 10 << 20

// Server is the HTTP server for the interactive briefing form. It owns one
// session: the form state is read by the pipeline stages and written only by
// user interaction, matching the single-user request-response model. The
// session pointer itself is guarded because reset swaps it out.
type Server struct {
	pipe  *pipeline.Pipeline
	mu    sync.Mutex
	sess  *session.Session
	pages map[string]*template.Template
	mux   *http.ServeMux
}

// New creates a new Server around a pipeline and a fresh session.
func New(pipe *pipeline.Pipeline) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
	}

	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	pageNames := []string{"index.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{pipe: pipe, sess: session.New(), pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// session returns the current session under the lock. Handlers grab it once
// per request so a concurrent reset cannot swap it mid-request.
func (s *Server) session() *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/benchmark", s.handleBenchmark)
	s.mux.HandleFunc("/briefing", s.handleBriefing)
	s.mux.HandleFunc("/download", s.handleDownload)
	s.mux.HandleFunc("/reset", s.handleReset)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, s.session(), "", "")
}

// handleAnalyze captures form input and runs the analyzer stage.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	sess := s.session()
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.render(w, sess, "", fmt.Sprintf("Could not read the form: %v", err))
		return
	}

	meta := session.Meta{
		Audience:     r.FormValue("audience"),
		Goal:         r.FormValue("goal"),
		FocusKeyword: r.FormValue("focus_keyword"),
	}

	var warning string
	if file, _, err := r.FormFile("keywords"); err == nil {
		defer file.Close()
		rows, loadErr := keywords.Load(file)
		if loadErr != nil {
			warning = fmt.Sprintf("Could not read the keyword file: %v", loadErr)
		} else {
			sess.SetKeywordRows(rows)
		}
	}

	captureWarning, err := s.pipe.Capture(sess, r.FormValue("url"), r.FormValue("text"), meta)
	if captureWarning != "" {
		warning = captureWarning
	}
	if err != nil {
		s.render(w, sess, warning, err.Error())
		return
	}

	if err := s.pipe.Analyze(r.Context(), sess); err != nil {
		s.render(w, sess, warning, err.Error())
		return
	}
	s.render(w, sess, warning, "")
}

// handleBenchmark runs the optional competitor comparison stage.
func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	sess := s.session()
	warning, err := s.pipe.Benchmark(r.Context(), sess)
	if err != nil {
		s.render(w, sess, warning, err.Error())
		return
	}
	s.render(w, sess, warning, "")
}

// handleBriefing composes the final briefing document.
func (s *Server) handleBriefing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	sess := s.session()
	if err := s.pipe.Compose(r.Context(), sess); err != nil {
		s.render(w, sess, "", err.Error())
		return
	}
	s.render(w, sess, "", "")
}

// handleDownload serves the briefing as a plain-text file attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	doc := s.session().Briefing()
	if doc == "" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", briefing.MIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", briefing.Filename))
	w.Write([]byte(doc))
}

// handleReset discards the session and starts over.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.mu.Lock()
		s.sess = session.New()
		s.mu.Unlock()
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) render(w http.ResponseWriter, sess *session.Session, warning, errMsg string) {
	tmpl, ok := s.pages["index.html"]
	if !ok {
		log.Println("Template index.html not found")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	content := sess.Content()
	data := map[string]any{
		"Stage":        sess.Stage().String(),
		"HasContent":   content.RawText != "",
		"ContentWords": content.WordCount,
		"Source":       string(content.Source),
		"Meta":         sess.Meta(),
		"KeywordRows":  sess.KeywordRows(),
		"Analysis":     sess.Analysis(),
		"Benchmark":    sess.Benchmark(),
		"Competitors":  sess.Competitors(),
		"Briefing":     sess.Briefing(),
		"Warning":      warning,
		"Error":        errMsg,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template index.html: %v", err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(pipe *pipeline.Pipeline, port int) error {
	srv, err := New(pipe)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
