package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// getGoogleClient initializes a Google Cloud Storage client.
// Prefers ADC (service account / GOOGLE_APPLICATION_CREDENTIALS); explicit
// JSON can be provided via GCS_CREDENTIALS_JSON for local use.
func getGoogleClient(ctx context.Context) (*storage.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ArchiveArtifactToGCS uploads a generated payment artifact for audit
// retention. The bucket comes from ACH_ARCHIVE_BUCKET; callers treat a
// missing bucket as "archival disabled".
func ArchiveArtifactToGCS(ctx context.Context, objectName string, contentType string, data []byte) error {
	bucketName := os.Getenv("ACH_ARCHIVE_BUCKET")
	if bucketName == "" {
		return errors.New("ACH_ARCHIVE_BUCKET is required")
	}

	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := client.Bucket(bucketName).Attrs(ctx); err != nil {
		return fmt.Errorf("gcs bucket %q not found or not accessible: %v", bucketName, err)
	}

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}

	return nil
}

// ArchiveEnabled reports whether artifact archival is configured.
func ArchiveEnabled() bool {
	return os.Getenv("ACH_ARCHIVE_BUCKET") != ""
}
