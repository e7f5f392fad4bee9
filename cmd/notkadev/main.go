// Command notkadev runs in-memory renditions of the authentication and
// notes services on two local ports, so the notka client can be exercised
// end to end without the real backend.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/avoronov/notka/internal/devserver"
	"github.com/avoronov/notka/internal/logger"
)

func main() {
	authAddr := flag.String("auth-listen", ":8001", "listen address of the authentication service")
	notesAddr := flag.String("notes-listen", ":8002", "listen address of the notes service")
	secret := flag.String("secret", "", "token signing secret, random when empty")
	flag.Parse()

	log := logger.New("notka-dev")

	signingSecret := []byte(*secret)
	if len(signingSecret) == 0 {
		signingSecret = []byte(uuid.NewString())
		log.Info().Msg("using a random token signing secret")
	}

	authServer := &http.Server{
		Addr:    *authAddr,
		Handler: devserver.NewAuthServer(signingSecret, log).Routes(),
	}
	notesServer := &http.Server{
		Addr:    *notesAddr,
		Handler: devserver.NewNotesServer(signingSecret, log).Routes(),
	}

	errCh := make(chan error, 2)
	go func() { errCh <- authServer.ListenAndServe() }()
	go func() { errCh <- notesServer.ListenAndServe() }()

	log.Info().
		Str("auth", *authAddr).
		Str("notes", *notesAddr).
		Msg("dev servers listening")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("dev server failed")
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := authServer.Shutdown(ctx); err != nil {
		log.Err(err).Msg("shutdown auth server")
	}
	if err := notesServer.Shutdown(ctx); err != nil {
		log.Err(err).Msg("shutdown notes server")
	}
}
