package routes

import (
	"log/slog"
	"net/http"
	"time"

	"flyer/controllers"

	"github.com/gorilla/mux"
)

// idPattern matches the uuids the service assigns, so fixed names such as
// "templates" or "generate" never reach the id routes.
const idPattern = "[0-9a-fA-F-]{36}"

// Web builds the HTTP handler for the flyer API.
func Web(c *controllers.FlyerController) http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/health", c.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/flyer").Subrouter()
	api.HandleFunc("/templates", c.Templates).Methods(http.MethodGet)
	api.HandleFunc("/generate", c.Generate).Methods(http.MethodPost)
	api.HandleFunc("/create", c.Create).Methods(http.MethodPost)
	api.HandleFunc("", c.List).Methods(http.MethodGet)
	api.HandleFunc("/{id:"+idPattern+"}", c.Get).Methods(http.MethodGet)
	api.HandleFunc("/{id:"+idPattern+"}", c.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/{id:"+idPattern+"}/slots/{slot}", c.EditSlot).Methods(http.MethodPatch)
	api.HandleFunc("/{id:"+idPattern+"}/slots/{slot}", c.ResetSlot).Methods(http.MethodDelete)
	api.HandleFunc("/{id:"+idPattern+"}/export", c.Export).Methods(http.MethodGet)

	for _, router := range []*mux.Router{r, api} {
		router.NotFoundHandler = http.HandlerFunc(controllers.NotFound)
		router.MethodNotAllowedHandler = http.HandlerFunc(controllers.MethodNotAllowed)
	}
	return recoverPanics(cors(r))
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler_panic", "path", r.URL.Path, "panic", rec)
				controllers.InternalError(w, r)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
