// Package server implements the static file listener and request handler.
package server

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/didip/tollbooth"
	"github.com/f4ah6o/devserve/internal/config"
	"github.com/fatih/color"
	"golang.org/x/net/netutil"
)

const bannerWidth = 50

// Server binds the configured port and serves files from the configured root.
type Server struct {
	cfg     *config.Config
	out     io.Writer
	handler http.Handler
}

// New builds a Server. cfg is expected to have been resolved and is not
// modified afterwards. Banner and request log lines are written to out.
func New(cfg *config.Config, out io.Writer) *Server {
	logger := log.New(out, "", log.LstdFlags)

	var handler http.Handler = NewHandler(cfg.Root, cfg.Index, logger)
	if cfg.RateLimit > 0 {
		handler = tollbooth.LimitHandler(tollbooth.NewLimiter(cfg.RateLimit, nil), handler)
	}

	return &Server{
		cfg:     cfg,
		out:     out,
		handler: handler,
	}
}

// Handler returns the http.Handler used for every request.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Listen binds the configured address. Failures are reported as *BindError.
func (s *Server) Listen() (net.Listener, error) {
	addr := s.cfg.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}
	return ln, nil
}

// Serve prints the startup banner and serves requests on ln until ln fails.
func (s *Server) Serve(ln net.Listener) error {
	s.printBanner(ln.Addr())

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}
	return srv.Serve(ln)
}

// ListenAndServe binds and serves. It only returns on error.
func (s *Server) ListenAndServe() error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) printBanner(addr net.Addr) {
	port := s.cfg.Port
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}

	rule := color.New(color.FgCyan)
	title := color.New(color.FgGreen, color.Bold)
	line := strings.Repeat("=", bannerWidth)

	rule.Fprintln(s.out, line)
	title.Fprintln(s.out, " "+s.cfg.Title)
	rule.Fprintln(s.out, line)
	fmt.Fprintf(s.out, " URL: http://localhost:%d\n", port)
	fmt.Fprintf(s.out, " Root: %s\n", s.cfg.Root)
	fmt.Fprintln(s.out, " Stop: Ctrl+C")
	rule.Fprintln(s.out, line)
}
