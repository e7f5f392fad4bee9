package devserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/avoronov/notka/internal/logger"
	"github.com/avoronov/notka/models"
)

type account struct {
	id           int64
	username     string
	passwordHash []byte
}

// AuthServer implements the authentication service: form-encoded token
// issuing and JSON registration. Accounts live in memory.
type AuthServer struct {
	mu       sync.Mutex
	accounts map[string]account
	nextID   int64

	secret   []byte
	tokenTTL time.Duration
	logger   *logger.Logger
}

func NewAuthServer(secret []byte, log *logger.Logger) *AuthServer {
	return &AuthServer{
		accounts: make(map[string]account),
		nextID:   1,
		secret:   secret,
		tokenTTL: DefaultTokenTTL,
		logger:   log,
	}
}

func (s *AuthServer) Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Post("/token", s.token)
	router.Post("/register", s.register)

	return router
}

func (s *AuthServer) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.Err(err).Msg("parse token form")
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	s.mu.Lock()
	acc, found := s.accounts[username]
	s.mu.Unlock()

	if !found || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		s.logger.Warn().Str("username", username).Msg("rejected credentials")
		http.Error(w, "incorrect username or password", http.StatusUnauthorized)
		return
	}

	signed, err := s.issueToken(acc.username)
	if err != nil {
		s.logger.Err(err).Msg("sign token")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, models.Token{AccessToken: signed, TokenType: "bearer"}, http.StatusOK, s.logger)
}

func (s *AuthServer) register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.logger.Err(err).Msg("decode register body")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	// bcrypt rejects inputs longer than 72 bytes.
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Err(err).Msg("hash password")
		http.Error(w, "invalid password", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[creds.Username]; exists {
		s.mu.Unlock()
		s.logger.Warn().Str("username", creds.Username).Msg("username already registered")
		http.Error(w, "username already registered", http.StatusBadRequest)
		return
	}
	acc := account{id: s.nextID, username: creds.Username, passwordHash: hash}
	s.nextID++
	s.accounts[creds.Username] = acc
	s.mu.Unlock()

	s.logger.Info().Int64("id", acc.id).Str("username", acc.username).Msg("account registered")
	writeJSON(w, models.RegisterResult{ID: acc.id, Username: acc.username}, http.StatusOK, s.logger)
}

func (s *AuthServer) issueToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
