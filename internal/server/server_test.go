package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/daybookhq/daybook/internal/database"
	"github.com/daybookhq/daybook/internal/identity"
	"github.com/daybookhq/daybook/internal/model"
	"github.com/daybookhq/daybook/internal/server"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestHome(t *testing.T) {
	engine, _, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestVersion(t *testing.T) {
	engine, _, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func setup() (engine *echo.Echo, ctrl server.IOC, provider *fakeProvider, r *gofight.RequestConfig, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "daybook.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	provider = newFakeProvider()

	idclient, err := identity.NewDefaultClient(identity.Config{
		Endpoint:  provider.server.URL,
		PublicKey: "public-key-test",
	})
	if err != nil {
		panic(err)
	}

	ctrl = server.IOC{
		Version:  "test",
		Database: db,
		Identity: idclient,
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, provider, gofight.New(), func() {
		provider.server.Close()
		db.Close()
		os.RemoveAll(filename)
	}
}

func createEntry(ctrl server.IOC, userID, title, content string, createdAt time.Time) *model.Entry {
	entry := &model.Entry{
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	entry.SetID(uuid.Must(uuid.NewV4()).String())
	entry.SetCreatedAt(createdAt)

	if err := ctrl.Database.Save(entry); err != nil {
		panic(err)
	}
	return entry
}

//
// Fake identity provider
//

type (
	fakeProvider struct {
		server *httptest.Server

		mu sync.Mutex
		// RequireConfirmation makes sign-up answer with a bare user and no session.
		requireConfirmation bool
		users               map[string]*fakeUser // keyed by email
		tokens              map[string]*fakeUser // keyed by access token
	}

	fakeUser struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		password string
	}
)

func newFakeProvider() *fakeProvider {
	p := &fakeProvider{
		users:  map[string]*fakeUser{},
		tokens: map[string]*fakeUser{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", p.signup)
	mux.HandleFunc("POST /token", p.token)
	mux.HandleFunc("GET /user", p.user)
	p.server = httptest.NewServer(mux)

	return p
}

func (p *fakeProvider) requireEmailConfirmation() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requireConfirmation = true
}

// register creates a confirmed user with an active token, bypassing sign-up.
func (p *fakeProvider) register(email, password string) (userID, accessToken string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	user := &fakeUser{
		ID:       uuid.Must(uuid.NewV4()).String(),
		Email:    email,
		password: password,
	}
	p.users[email] = user

	accessToken = uuid.Must(uuid.NewV4()).String()
	p.tokens[accessToken] = user

	return user.ID, accessToken
}

func (p *fakeProvider) signup(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"msg": "invalid payload"})
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.users[params.Email]; ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"msg": "User already registered"})
		return
	}

	user := &fakeUser{
		ID:       uuid.Must(uuid.NewV4()).String(),
		Email:    params.Email,
		password: params.Password,
	}
	p.users[params.Email] = user

	if p.requireConfirmation {
		writeJSON(w, http.StatusOK, user)
		return
	}

	writeJSON(w, http.StatusOK, p.session(user))
}

func (p *fakeProvider) token(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"msg": "invalid payload"})
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	user, ok := p.users[params.Email]
	if !ok || user.password != params.Password {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error_description": "Invalid login credentials"})
		return
	}

	writeJSON(w, http.StatusOK, p.session(user))
}

func (p *fakeProvider) user(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	p.mu.Lock()
	defer p.mu.Unlock()

	user, ok := p.tokens[token]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid JWT"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// session issues a token pair for the given user. Callers must hold the lock.
func (p *fakeProvider) session(user *fakeUser) map[string]any {
	access := uuid.Must(uuid.NewV4()).String()
	p.tokens[access] = user

	return map[string]any{
		"access_token":  access,
		"refresh_token": uuid.Must(uuid.NewV4()).String(),
		"expires_in":    3600,
		"token_type":    "bearer",
		"user":          user,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
