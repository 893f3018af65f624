// Package moodletest provides a fake web-service endpoint that records the
// requests it receives.
package moodletest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/s0up4200/muddle/moodle"
)

// Token is the token used by clients returned from Server.Client
const Token = "T1"

// Request is a request received by the fake endpoint
type Request struct {
	Method string
	Path   string
	// Params holds the query string for GET and the form body for POST
	Params url.Values
}

// Function returns the wsfunction of the request
func (r Request) Function() string {
	return r.Params.Get("wsfunction")
}

// Server is a fake Moodle web-service endpoint
type Server struct {
	*httptest.Server

	t        testing.TB
	mu       sync.Mutex
	requests []Request
}

// NewServer starts an endpoint answering every request with status 200 and body
func NewServer(t testing.TB, body string) *Server {
	return NewServerFunc(t, func(Request) (int, string) {
		return http.StatusOK, body
	})
}

// NewServerFunc starts an endpoint answering with reply
func NewServerFunc(t testing.TB, reply func(Request) (int, string)) *Server {
	t.Helper()

	s := &Server{t: t}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		req := Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Params: r.URL.Query(),
		}
		if r.Method == http.MethodPost {
			req.Params = r.PostForm
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		status, body := reply(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)

	return s
}

// Client returns a client for the endpoint using Token
func (s *Server) Client(opts ...moodle.Option) *moodle.Client {
	s.t.Helper()

	client, err := moodle.NewClient(s.URL, Token, zerolog.Nop(), opts...)
	if err != nil {
		s.t.Fatalf("failed to create client: %v", err)
	}
	return client
}

// Requests returns every request received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request and fails the test if there is none
func (s *Server) Last() Request {
	s.t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		s.t.Fatalf("no request received")
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}
