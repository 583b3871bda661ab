package api

import (
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/pkg/repository"
)

// page is the bag of values handed to templates.
type page map[string]any

func renderPage(rnd *render.Renderer, w http.ResponseWriter, name string, data page) {
	if err := rnd.Render(w, name, data); err != nil {
		logger.Error("render", slog.String("template", name), slog.Any("err", err))
	}
}

// pathID extracts the numeric {id} path variable.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// storageError answers a failed repository call: missing rows become a 404,
// everything else a 500.
func storageError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	logger.Error("storage", slog.Any("err", err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
