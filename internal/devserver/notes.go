package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"github.com/avoronov/notka/internal/logger"
	"github.com/avoronov/notka/models"
)

type usernameCtxKey struct{}

// NotesServer implements the notes service: per-user CRUD behind bearer
// authentication. Notes are kept in memory per username in creation order.
type NotesServer struct {
	mu     sync.Mutex
	notes  map[string][]models.Note
	nextID int64

	secret []byte
	logger *logger.Logger
}

func NewNotesServer(secret []byte, log *logger.Logger) *NotesServer {
	return &NotesServer{
		notes:  make(map[string][]models.Note),
		nextID: 1,
		secret: secret,
		logger: log,
	}
}

func (s *NotesServer) Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/notes/", s.list)
		r.Post("/notes/", s.create)
		r.Put("/notes/{id}", s.update)
		r.Delete("/notes/{id}", s.remove)
	})

	return router
}

// auth validates the bearer token and stores the subject username in the
// request context for downstream handlers.
func (s *NotesServer) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "authorization header is missing", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			http.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		username, err := s.parseToken(parts[1])
		if err != nil {
			s.logger.Warn().Err(err).Msg("rejected bearer token")
			http.Error(w, "could not validate credentials", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), usernameCtxKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *NotesServer) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return sub, nil
}

func requestUsername(r *http.Request) string {
	username, _ := r.Context().Value(usernameCtxKey{}).(string)
	return username
}

func (s *NotesServer) list(w http.ResponseWriter, r *http.Request) {
	username := requestUsername(r)

	s.mu.Lock()
	owned := make([]models.Note, len(s.notes[username]))
	copy(owned, s.notes[username])
	s.mu.Unlock()

	writeJSON(w, owned, http.StatusOK, s.logger)
}

func (s *NotesServer) create(w http.ResponseWriter, r *http.Request) {
	username := requestUsername(r)

	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	note := models.Note{ID: s.nextID, Title: req.Title, Content: req.Content}
	s.nextID++
	s.notes[username] = append(s.notes[username], note)
	s.mu.Unlock()

	s.logger.Info().Int64("id", note.ID).Str("username", username).Msg("note created")
	writeJSON(w, note, http.StatusOK, s.logger)
}

func (s *NotesServer) update(w http.ResponseWriter, r *http.Request) {
	username := requestUsername(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	var req models.NoteRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, note := range s.notes[username] {
		if note.ID == id {
			s.notes[username][i].Title = req.Title
			s.notes[username][i].Content = req.Content
			writeJSON(w, s.notes[username][i], http.StatusOK, s.logger)
			return
		}
	}

	http.Error(w, "note not found", http.StatusNotFound)
}

func (s *NotesServer) remove(w http.ResponseWriter, r *http.Request) {
	username := requestUsername(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, note := range s.notes[username] {
		if note.ID == id {
			s.notes[username] = append(s.notes[username][:i], s.notes[username][i+1:]...)
			writeJSON(w, models.DeleteResult{OK: true}, http.StatusOK, s.logger)
			return
		}
	}

	http.Error(w, "note not found", http.StatusNotFound)
}
