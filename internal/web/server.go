package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kumar0311chandan/company-org-analyzer/internal/audit"
	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
	"github.com/kumar0311chandan/company-org-analyzer/internal/model"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// Server serves the audit of a single input file. The file is re-read on
// every request so edits show up on reload.
type Server struct {
	inputPath string
	policy    config.Policy
	logger    *zap.Logger
}

// NewServer creates a Server for the given input file.
func NewServer(inputPath string, policy config.Policy, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{inputPath: inputPath, policy: policy, logger: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("/api/report", s.handleReport)
	mux.HandleFunc("/api/text", s.handleText)
	mux.HandleFunc("/api/line-context", s.handleLineContext)
	mux.HandleFunc("/api/help", handleHelp)
	return mux
}

// StartServer listens on addr until the server fails.
func StartServer(addr string, s *Server) error {
	fmt.Printf("Starting orgaudit web server at http://%s\n", displayAddr(addr))
	s.logger.Info("web server listening", zap.String("addr", addr), zap.String("input", s.inputPath))
	return http.ListenAndServe(addr, s.Handler())
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func (s *Server) audit() (*model.AnalysisReport, error) {
	parsed, err := audit.NewParser(audit.WithParserLogger(s.logger)).ParseFile(s.inputPath)
	if err != nil {
		return nil, err
	}
	return audit.Run(parsed, s.policy, s.logger), nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.audit()
	if err != nil {
		s.logger.Warn("audit failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := struct {
		Report  *model.AnalysisReport `json:"report"`
		Input   string                `json:"input"`
		Version string                `json:"version"`
	}{
		Report:  report,
		Input:   s.inputPath,
		Version: model.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Warn("encode report", zap.Error(err))
	}
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	report, err := s.audit()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	verbose := r.URL.Query().Get("verbose") == "true"

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(audit.GenerateReport(report, verbose)))
}

func (s *Server) handleLineContext(w http.ResponseWriter, r *http.Request) {
	lineNumStr := r.URL.Query().Get("line")
	if lineNumStr == "" {
		http.Error(w, "line is required", http.StatusBadRequest)
		return
	}
	lineNum, err := strconv.Atoi(lineNumStr)
	if err != nil {
		http.Error(w, "invalid line number", http.StatusBadRequest)
		return
	}

	context := model.GetLineContext(s.inputPath, lineNum)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(context)
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(text))
}
