package mirror

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"fitTrackAPI/internal/types/workout"
)

const workoutsCollection = "workouts"

// FirestoreMirror duplicates workout documents into Firestore for
// read-scaling and alternate query patterns. All writes are best effort;
// the relational store stays the source of truth.
type FirestoreMirror struct {
	client *firestore.Client
}

// NewFirestoreMirror initializes the Firestore client. It first attempts
// to use credentials from the FIREBASE_SERVICE_ACCOUNT_JSON environment
// variable (Base64 encoded), then falls back to a local service account
// key file.
func NewFirestoreMirror(localFilePath string) (*FirestoreMirror, error) {
	var opt option.ClientOption

	encodedCreds := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if encodedCreds != "" {
		decoded, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 firebase credentials from FIREBASE_SERVICE_ACCOUNT_JSON: %v", err)
		}
		opt = option.WithCredentialsJSON(decoded)
		log.Println("Mirror: Initializing from FIREBASE_SERVICE_ACCOUNT_JSON environment variable.")
	} else {
		if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
			return nil, fmt.Errorf("local firebase file not found: %s, and FIREBASE_SERVICE_ACCOUNT_JSON environment variable is not set", localFilePath)
		}
		opt = option.WithCredentialsFile(localFilePath)
		log.Printf("Mirror: Initializing from local file: %s.", localFilePath)
	}

	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Firestore(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %v", err)
	}

	return &FirestoreMirror{client: client}, nil
}

// SaveWorkout upserts the document keyed by the relational workout ID.
func (m *FirestoreMirror) SaveWorkout(ctx context.Context, doc *workout.Document) error {
	if doc == nil || doc.SQLWorkoutID == "" {
		return fmt.Errorf("mirror document missing workout id")
	}

	_, err := m.client.Collection(workoutsCollection).Doc(doc.SQLWorkoutID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to mirror workout %s: %w", doc.SQLWorkoutID, err)
	}

	return nil
}

// DeleteWorkout removes the mirrored document. Deleting a document that
// was never mirrored is not an error.
func (m *FirestoreMirror) DeleteWorkout(ctx context.Context, workoutID string) error {
	if workoutID == "" {
		return fmt.Errorf("mirror delete missing workout id")
	}

	_, err := m.client.Collection(workoutsCollection).Doc(workoutID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete mirrored workout %s: %w", workoutID, err)
	}

	return nil
}

// Close releases the underlying client.
func (m *FirestoreMirror) Close() error {
	return m.client.Close()
}
