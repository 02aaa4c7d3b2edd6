package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Events     *EventHandler
	Selection  *SelectionHandler
	Contrast   *ContrastHandler
	Calendar   *CalendarHandler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Events != nil {
		mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Events.List(w, r)
			case http.MethodPost:
				cfg.Events.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/events/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/events/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithEventID(r.Context(), id)
			r = r.WithContext(ctx)
			switch r.Method {
			case http.MethodPut, http.MethodPatch:
				cfg.Events.Update(w, r)
			case http.MethodDelete:
				cfg.Events.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodPatch, http.MethodDelete)
			}
		})
	}

	if cfg.Calendar != nil {
		mux.HandleFunc("/events.ics", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Calendar.Export(w, r)
			case http.MethodPost:
				cfg.Calendar.Import(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
	}

	if cfg.Selection != nil {
		mux.HandleFunc("/selection", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Selection.Get(w, r)
		})
		mux.HandleFunc("/selection/event", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPut:
				cfg.Selection.SelectEvent(w, r)
			case http.MethodDelete:
				cfg.Selection.ClearEvent(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
		mux.HandleFunc("/selection/date", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPut:
				cfg.Selection.SelectDate(w, r)
			case http.MethodDelete:
				cfg.Selection.ClearDate(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Contrast != nil {
		mux.HandleFunc("/contrast", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Contrast.Get(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
