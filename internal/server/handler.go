package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/f4ah6o/devserve/internal/contenttype"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Handler answers every request with a file from root, or a 404.
//
// A Handler holds no mutable state; it is safe for concurrent use.
type Handler struct {
	root   string
	index  string
	logger *log.Logger
	// readFile is os.ReadFile outside of tests.
	readFile func(name string) ([]byte, error)
	printer  *message.Printer
}

// NewHandler returns a Handler serving files under root. root should be absolute.
// index is the file name served for "/".
func NewHandler(root, index string, logger *log.Logger) *Handler {
	return &Handler{
		root:     filepath.Clean(root),
		index:    index,
		logger:   logger,
		readFile: os.ReadFile,
		printer:  message.NewPrinter(language.English),
	}
}

// ServeHTTP implements http.Handler. The request method is not inspected.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestPath := r.URL.Path
	h.logger.Printf(" Request: %s", requestPath)

	target := requestPath
	if target == "/" {
		target = "/" + h.index
	}

	filePath, err := h.resolve(target)
	if err != nil {
		h.logger.Printf(" Not Found: %s", target)
		writeText(w, http.StatusNotFound, "404 Not Found: "+requestPath)
		return
	}

	data, err := h.readFile(filePath)
	if err != nil {
		h.logger.Printf(" Error: %s: %v", target, err)
		writeText(w, http.StatusInternalServerError, "500 Internal Server Error: "+requestPath)
		return
	}

	header := w.Header()
	header.Set("Content-Type", contenttype.ForPath(target))
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Printf(" Write failed: %s: %v", target, err)
		return
	}

	h.logger.Printf(" Sent: %s (%s bytes)", target, h.printer.Sprintf("%d", len(data)))
}

// resolve maps a request path to a regular file under root.
//
// The joined path is cleaned before the containment check, so "." and ".."
// segments cannot be used to step outside root.
func (h *Handler) resolve(target string) (string, error) {
	candidate := filepath.Join(h.root, filepath.FromSlash(target))

	rel, err := filepath.Rel(h.root, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, target)
	}

	info, err := os.Stat(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotFound, target, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrNotFound, target)
	}
	return candidate, nil
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contenttype.Default)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
