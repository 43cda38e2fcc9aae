package stubtracker

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bva/billabot/pkg/logger"
)

// dateLayout matches the upstream's compact date query format.
const dateLayout = "20060102"

// HTTP server timeout constants.
const (
	readTimeout       = 5 * time.Second
	writeTimeout      = 5 * time.Second
	readHeaderTimeout = 2 * time.Second
)

// Server is the stub time tracking HTTP server.
type Server struct {
	cfg    Config
	logger logger.Logger
}

// NewServer creates a stub tracker server from config.
func NewServer(cfg Config) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger.Get().Named("stubtracker"),
	}
}

// Run serves the stub report API until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/report", s.handleReport)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "stub tracker listening", logger.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleReport answers GET /api/report with fabricated weekly totals.
// The from/to dates are validated but only logged; generated hours
// always reflect the current moment.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")
	department := query.Get("department")

	for _, date := range []string{from, to} {
		if date == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			http.Error(w, "invalid date: "+date, http.StatusBadRequest)
			return
		}
	}

	totals := generateTotals(time.Now(), s.cfg.TeamSize)

	if s.cfg.Verbose {
		s.logger.Info(r.Context(), "serving report",
			logger.String("from", from),
			logger.String("to", to),
			logger.String("department", department),
			logger.Int("totals", len(totals)),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reportResponse{Totals: totals}); err != nil {
		s.logger.Error(r.Context(), "failed to encode report", logger.Error(err))
	}
}
