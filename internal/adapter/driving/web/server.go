package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/shared/types"
)

//go:embed dashboard.html
var templateFS embed.FS

// DataRoute é a rota fixa do artefato JSON consumido pela página.
const DataRoute = "/data/youtube_monetization.json"

// Server serve a página do dashboard e o artefato JSON publicado pelo
// fetcher. O servidor nunca toca na API do YouTube: ele apenas expõe o
// último artefato gravado em disco.
type Server struct {
	addr         string
	dataPath     string
	pollInterval time.Duration
	console      types.ConsoleInterface
	tmpl         *template.Template
}

// NewServer cria um servidor para o endereço e artefato informados.
func NewServer(addr, dataPath string, pollInterval time.Duration, console types.ConsoleInterface) *Server {
	if pollInterval <= 0 {
		pollInterval = 60 * time.Second
	}
	tmpl := template.Must(template.ParseFS(templateFS, "dashboard.html"))
	return &Server{
		addr:         addr,
		dataPath:     dataPath,
		pollInterval: pollInterval,
		console:      console,
		tmpl:         tmpl,
	}
}

// Handler monta o mux com todas as rotas do viewer.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc(DataRoute, s.handleData)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

// Run inicia o servidor HTTP e bloqueia até o contexto ser cancelado ou o
// servidor falhar. O shutdown é gracioso, com prazo de 5 segundos.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.console.LogInfo("Dashboard listening on %s (artifact: %s)", s.addr, s.dataPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.tmpl.Execute(w, struct {
		DataRoute      string
		PollIntervalMS int64
	}{
		DataRoute:      DataRoute,
		PollIntervalMS: s.pollInterval.Milliseconds(),
	})
	if err != nil {
		s.console.LogError("Failed to render dashboard page: %s", err)
	}
}

// handleData serve o artefato JSON com no-store: o ciclo de atualização é
// controlado pelo timer da página, não pelo cache do navegador.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := os.ReadFile(s.dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "artifact not published yet", http.StatusNotFound)
			return
		}
		s.console.LogError("Failed to read artifact %s: %s", s.dataPath, err)
		http.Error(w, "failed to read artifact", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
