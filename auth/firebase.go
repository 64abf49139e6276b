package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"github.com/framecart/eyewear-api/config"
)

var (
	firebaseApp  *firebase.App
	firebaseAuth *auth.Client
	projectID    string
)

// Init builds the Firebase app and auth client from the loaded config. Must
// run before any login handler is served; the credentials are a JSON blob in
// the environment, not a key file on disk.
func Init(ctx context.Context, cfg *config.Config) error {
	if cfg.FirebaseCredentialsJSON == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_JSON must be set")
	}
	if cfg.FirebaseProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID must be set")
	}
	projectID = cfg.FirebaseProjectID

	opt := option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON))

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("firebase auth client: %w", err)
	}

	firebaseApp = app
	firebaseAuth = client
	return nil
}

// verifyIDToken checks the Firebase ID token (including revocation) and the
// audience, returning the verified token.
func verifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if token.Audience != projectID {
		return nil, errAudienceMismatch
	}
	return token, nil
}
