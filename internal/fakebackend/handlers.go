package fakebackend

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-secret-keeper/internal/utils"
	"github.com/MKhiriev/go-secret-keeper/models"
	"github.com/go-chi/chi/v5"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 64

	lowerLetters   = "abcdefghijklmnopqrstuvwxyz"
	upperLetters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits         = "0123456789"
	specialSymbols = "!@#$%^&*()-_=+[]{};:,.?"
)

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Code: status, Message: message})
}

func subject(r *http.Request) string {
	s, _ := utils.GetSubjectFromContext(r.Context())
	return s
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	acc, ok := b.accounts[creds.Email]
	b.mu.Unlock()
	if !ok || acc.password != creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := b.IssueToken(creds.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Code:    http.StatusOK,
		Message: "Login successful",
		Data:    models.TokenData{Token: token},
	})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(reg.Email) == "" || reg.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	b.mu.Lock()
	if _, exists := b.accounts[reg.Email]; exists {
		b.mu.Unlock()
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	b.accounts[reg.Email] = account{name: reg.Name, password: reg.Password}
	b.mu.Unlock()

	token, err := b.IssueToken(reg.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Code:    http.StatusCreated,
		Message: "User registered successfully",
		Token:   token,
	})
}

func (b *Backend) generatePassword(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Length < minPasswordLength || req.Length > maxPasswordLength {
		writeError(w, http.StatusBadRequest, "Length must be between 6 and 64")
		return
	}

	alphabet := lowerLetters + upperLetters + digits
	if req.IncludeSpecialSymbol {
		alphabet += specialSymbols
	}

	password, err := randomString(alphabet, req.Length)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not generate password")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Code: http.StatusOK,
		Data: models.GeneratedPassword{Password: password},
	})
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	secrets := b.Secrets(subject(r))
	if secrets == nil {
		secrets = []models.Secret{}
	}

	writeJSON(w, http.StatusOK, envelope{
		Code: http.StatusOK,
		Data: models.SecretsList{Secrets: secrets},
	})
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	var fields models.SecretFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(fields.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	owner := subject(r)
	b.mu.Lock()
	secret := fields.WithID(b.newIDLocked())
	b.secrets[owner] = append(b.secrets[owner], secret)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, envelope{
		Code:    http.StatusCreated,
		Message: "Secret created successfully",
		Data:    models.SecretData{Secret: secret},
	})
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request) {
	id := models.SecretID(chi.URLParam(r, "id"))

	var fields models.SecretFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	owner := subject(r)
	b.mu.Lock()
	var (
		updated models.Secret
		found   bool
	)
	for i, s := range b.secrets[owner] {
		if s.ID == id {
			updated = fields.WithID(id)
			b.secrets[owner][i] = updated
			found = true
			break
		}
	}
	b.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "Secret not found")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Code:    http.StatusOK,
		Message: "Secret updated successfully",
		Data:    models.SecretData{Secret: updated},
	})
}

func (b *Backend) delete(w http.ResponseWriter, r *http.Request) {
	id := models.SecretID(chi.URLParam(r, "id"))

	owner := subject(r)
	b.mu.Lock()
	found := false
	list := b.secrets[owner]
	for i, s := range list {
		if s.ID == id {
			b.secrets[owner] = append(list[:i:i], list[i+1:]...)
			found = true
			break
		}
	}
	b.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "Secret not found")
		return
	}

	writeJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Message: "Secret deleted successfully"})
}

func randomString(alphabet string, n int) (string, error) {
	out := make([]byte, n)
	limit := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
