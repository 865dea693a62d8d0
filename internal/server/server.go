package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/drakos74/free-segment/internal/storage"
	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Data    Action = "data"
	Api     Action = "api"
	Metrics Action = "metrics"

	GET  Method = "GET"
	POST Method = "POST"
)

// Handler handles a request within the given context.
type Handler func(ctx context.Context, r *http.Request) ([]byte, int, error)

type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

// Pattern returns the url path of the route.
func (r Route) Pattern() string {
	if r.Path != "" {
		return fmt.Sprintf("/%s/%s", r.Action, r.Path)
	}
	return fmt.Sprintf("/%s", r.Action)
}

type Server struct {
	name     string
	port     int
	debug    bool
	timeout  time.Duration
	maxBytes int64
	routes   []Route
	handlers map[string]http.Handler
}

func NewServer(name string, port int) *Server {
	return &Server{
		name:     name,
		port:     port,
		routes:   make([]Route, 0),
		handlers: make(map[string]http.Handler),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// WithTimeout bounds the execution of every route handler.
func (s *Server) WithTimeout(timeout time.Duration) *Server {
	s.timeout = timeout
	return s
}

// WithMaxBytes limits the size of every request body.
func (s *Server) WithMaxBytes(n int64) *Server {
	s.maxBytes = n
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

// Mount serves the given plain http handler under the action path.
func (s *Server) Mount(action Action, handler http.Handler) *Server {
	s.handlers[fmt.Sprintf("/%s", action)] = handler
	return s
}

func (s *Server) handle(route Route) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if Method(r.Method) != route.Method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if s.maxBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
		}
		start := time.Now()
		ctx := r.Context()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		b, code, err := route.Exec(ctx, r)
		if err != nil {
			s.error(w, route, err)
			return
		}
		if s.debug {
			log.Debug().
				Str("route", route.Pattern()).
				Int("code", code).
				Dur("duration", time.Since(start)).
				Msg("completed request")
		}
		s.code(w, b, code)
	}
}

// Handler builds the http handler for all registered routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range s.routes {
		mux.HandleFunc(route.Pattern(), s.handle(route))
	}
	for pattern, handler := range s.handlers {
		mux.Handle(pattern, handler)
	}
	return mux
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Str("server", s.name).Msg("could not shut down server")
		}
	}()

	log.Info().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	if len(b) > 0 {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(code)
	s.respond(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, route Route, err error) {
	code := StatusCode(err)
	event := log.Warn()
	if code == http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("route", route.Pattern()).Int("code", code).Msg("error for http request")
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	s.code(w, b, code)
}

// StatusCode maps the error to the http status of the response.
func StatusCode(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, storage.NotFoundErr):
		return http.StatusNotFound
	case errors.Is(err, model.InsufficientDataErr),
		errors.Is(err, model.UnsupportedMethodErr),
		errors.Is(err, model.ShapeMismatchErr),
		errors.Is(err, model.InvalidConfigErr),
		errors.Is(err, model.InvalidDataErr),
		errors.Is(err, storage.InvalidKeyErr),
		errors.Is(err, BadRequestErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// BadRequestErr is returned for requests that cannot be decoded.
var BadRequestErr = errors.New("bad request")

func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(ctx context.Context, r *http.Request) (payload []byte, code int, err error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// JsonRead decodes the request body into v, an empty body leaves v untouched.
func JsonRead(r *http.Request, debug bool, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("could not read request: %w", err)
	}
	if debug {
		log.Debug().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("remote-address", r.RemoteAddr).
			Str("method", r.Method).
			Int("size", len(body)).
			Msg("received payload")
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, v)
		if err != nil {
			return fmt.Errorf("could not decode request: %s: %w", err.Error(), BadRequestErr)
		}
	}
	return nil
}
