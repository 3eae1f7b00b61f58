// Package fakebackend is an in-memory implementation of the secrets backend
// REST surface. It exists for end-to-end tests of the client: it issues real
// HS256 tokens, enforces bearer authentication and can be told to fail the
// next calls of a route with a chosen status and Retry-After.
package fakebackend

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/utils"
	"github.com/MKhiriev/go-secret-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route names one backend endpoint.
type Route string

const (
	RouteLogin            Route = "login"
	RouteRegister         Route = "register"
	RouteGeneratePassword Route = "generatepassword"
	RouteList             Route = "list"
	RouteCreate           Route = "create"
	RouteUpdate           Route = "update"
	RouteDelete           Route = "delete"
)

const (
	tokenIssuer   = "fakebackend"
	tokenDuration = time.Hour
)

// Failure is a scripted error reply.
type Failure struct {
	Status     int
	Message    string
	RetryAfter time.Duration
}

type account struct {
	name     string
	password string
}

// Backend holds accounts and secrets in memory.
type Backend struct {
	mu       sync.Mutex
	accounts map[string]account
	secrets  map[string][]models.Secret
	nextID   int64
	failures map[Route][]Failure
	calls    map[Route]int
	signKey  string

	logger *logger.Logger
}

// New returns an empty backend.
func New(log *logger.Logger) *Backend {
	if log == nil {
		log = logger.Nop()
	}
	return &Backend{
		accounts: make(map[string]account),
		secrets:  make(map[string][]models.Secret),
		nextID:   1,
		failures: make(map[Route][]Failure),
		calls:    make(map[Route]int),
		signKey:  utils.NewRequestID(),
		logger:   log,
	}
}

// Handler returns the chi router serving all backend routes.
func (b *Backend) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, b.withRequestID, b.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.With(b.track(RouteLogin)).Post("/auth/api/login", b.login)
		r.With(b.track(RouteRegister)).Post("/auth/api/register", b.register)
	})

	// routes with authorization
	router.Route("/secret/api", func(r chi.Router) {
		r.Use(b.auth)
		r.With(b.track(RouteGeneratePassword)).Post("/generatepassword", b.generatePassword)
		r.With(b.track(RouteList)).Get("/list", b.list)
		r.With(b.track(RouteCreate)).Post("/create", b.create)
		r.With(b.track(RouteUpdate)).Put("/update/{id}", b.update)
		r.With(b.track(RouteDelete)).Delete("/delete/{id}", b.delete)
	})

	return router
}

// AddAccount registers an account directly.
func (b *Backend) AddAccount(name, email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[email] = account{name: name, password: password}
}

// IssueToken signs a token for email without checking the account.
func (b *Backend) IssueToken(email string) (string, error) {
	token, err := utils.GenerateJWTToken(tokenIssuer, email, tokenDuration, b.signKey)
	if err != nil {
		return "", err
	}
	return token.SignedString, nil
}

// Seed appends secrets to the list of email as-is. Ids are kept, so
// duplicate ids can be planted on purpose. Records without an id get a
// fresh one.
func (b *Backend) Seed(email string, secrets ...models.Secret) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range secrets {
		if s.ID == "" {
			s.ID = b.newIDLocked()
		}
		b.secrets[email] = append(b.secrets[email], s)
	}
}

// Secrets returns a copy of the list of email.
func (b *Backend) Secrets(email string) []models.Secret {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Secret(nil), b.secrets[email]...)
}

// FailNext makes the next call of route answer with f. Several calls queue
// up in order.
func (b *Backend) FailNext(route Route, f Failure) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = append(b.failures[route], f)
}

// Calls reports how many requests reached route, failed ones included.
func (b *Backend) Calls(route Route) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

func (b *Backend) newIDLocked() models.SecretID {
	id := b.nextID
	b.nextID++
	return models.SecretID(strconv.FormatInt(id, 10))
}
