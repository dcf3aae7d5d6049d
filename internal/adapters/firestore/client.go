package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"midas/internal/adapters/config"
	"midas/internal/metrics"
	"midas/pkg/errors"
	"midas/pkg/logger"
)

// Collection used only by connectivity probes, never for real profiles
const probeCollection = "connection_tests"

// Client wraps the Firestore SDK behind the narrow document-store surface the
// repositories need: keyed get/set with field-level merge and a server-assigned
// timestamp sentinel. Built once at startup and shared; the SDK client is safe
// for concurrent use.
type Client struct {
	fs  *firestore.Client
	log *logger.Logger
}

// NewClient creates a Firestore client from one of the two credential sources.
// Ambiguous or missing credentials fail with a configuration error.
func NewClient(ctx context.Context, cfg config.FirestoreConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	// Otherwise the SDK resolves application-default credentials

	fs, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create firestore client")
	}

	return &Client{
		fs:  fs,
		log: logger.Get().With("component", "firestore"),
	}, nil
}

// Set writes fields to collection/id. With merge, only the given fields are
// written and unrelated stored fields are preserved; concurrent merges are
// last-write-wins per field. Store errors are returned unmodified.
func (c *Client) Set(ctx context.Context, collection, id string, fields map[string]interface{}, merge bool) error {
	start := time.Now()
	doc := c.fs.Collection(collection).Doc(id)

	var err error
	if merge {
		_, err = doc.Set(ctx, fields, firestore.MergeAll)
	} else {
		_, err = doc.Set(ctx, fields)
	}

	metrics.ObserveStoreOp("set", time.Since(start), err)
	return err
}

// Get reads collection/id and returns the raw document fields.
// An absent document is reported as ErrNotFound.
func (c *Client) Get(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	start := time.Now()
	snap, err := c.fs.Collection(collection).Doc(id).Get(ctx)
	metrics.ObserveStoreOp("get", time.Since(start), err)

	if status.Code(err) == codes.NotFound {
		return nil, errors.Wrapf(errors.ErrNotFound, "document %s/%s", collection, id)
	}
	if err != nil {
		return nil, err
	}
	return snap.Data(), nil
}

// ServerTimestamp returns the sentinel resolved server-side at write time.
func (c *Client) ServerTimestamp() interface{} {
	return firestore.ServerTimestamp
}

// Health checks store connectivity. An absent probe document is healthy.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.fs.Collection(probeCollection).Doc("probe").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

// SelfTest performs a write+read round trip against the probe document and
// downgrades any store error to a boolean. Diagnostic only: the profile
// read/write path never goes through here.
func (c *Client) SelfTest(ctx context.Context) bool {
	if err := c.Set(ctx, probeCollection, "probe", map[string]interface{}{
		"timestamp": firestore.ServerTimestamp,
	}, true); err != nil {
		c.log.Warnf("Store self-test write failed: %v", err)
		return false
	}

	if _, err := c.Get(ctx, probeCollection, "probe"); err != nil {
		c.log.Warnf("Store self-test read failed: %v", err)
		return false
	}

	c.log.Info("Store self-test successful")
	return true
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.fs.Close()
}
