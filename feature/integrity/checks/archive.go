package checks

import (
	"context"
	"fmt"

	"site-settings/core/storage"
)

// CheckArchive verifies that the archive bucket is reachable and exists.
func CheckArchive(ctx context.Context, client storage.Client, bucket string) ([]Issue, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return []Issue{{Problem: ProblemBucketMissing, File: bucket}}, nil
	}
	return nil, nil
}
