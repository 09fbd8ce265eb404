// Package baseline stores and retrieves the per-branch baseline coverage
// snapshots used for diffing, keyed by git provider, org, repo and branch.
package baseline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"path"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/covlens/covlens/config"
	"github.com/covlens/covlens/pkg/core"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/pkg/lumber"
)

var (
	defaultBufferSize = 3 * 1024 * 1024
	defaultMaxBuffers = 4
)

// Store represents the azure backed baseline storage
type Store struct {
	containerURL *azblob.ContainerURL
	logger       lumber.Logger
}

// NewStore returns a new baseline store backed by azure block blobs.
func NewStore(cfg *config.Config, logger lumber.Logger) (core.BaselineStore, error) {
	if len(cfg.Azure.StorageAccountName) == 0 || len(cfg.Azure.StorageAccessKey) == 0 {
		return nil, errors.New("either the storage account or storage access key environment variable is not set")
	}
	credential, err := azblob.NewSharedKeyCredential(cfg.Azure.StorageAccountName, cfg.Azure.StorageAccessKey)
	if err != nil {
		return nil, err
	}

	p := azblob.NewPipeline(credential, azblob.PipelineOptions{})
	containerURL, err := url.Parse(fmt.Sprintf("https://%s.blob.core.windows.net/%s",
		cfg.Azure.StorageAccountName, cfg.Azure.ContainerName))
	if err != nil {
		return nil, err
	}
	container := azblob.NewContainerURL(*containerURL, p)
	return &Store{
		containerURL: &container,
		logger:       logger,
	}, nil
}

// Fetch downloads the baseline snapshot for the key. A branch with no stored
// baseline yet returns (nil, nil); the differ then classifies every current
// file as added.
func (s *Store) Fetch(ctx context.Context, key core.BaselineKey) (*core.CoverageSnapshot, error) {
	blobURL := s.containerURL.NewBlockBlobURL(blobPath(key))
	out, err := blobURL.Download(ctx, 0, azblob.CountToEnd, azblob.BlobAccessConditions{}, false, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		if isNotFound(err) {
			s.logger.Debugf("no baseline snapshot stored for %s", key.BlobPath())
			return nil, nil
		}
		s.logger.Errorf("error while downloading baseline snapshot for %s, error %v", key.BlobPath(), err)
		return nil, err
	}

	body := out.Body(azblob.RetryReaderOptions{MaxRetryRequests: 5})
	defer body.Close()
	rawBytes, err := ioutil.ReadAll(body)
	if err != nil {
		s.logger.Errorf("error while reading baseline snapshot for %s, error %v", key.BlobPath(), err)
		return nil, err
	}

	snapshot := new(core.CoverageSnapshot)
	if err := json.Unmarshal(rawBytes, snapshot); err != nil {
		s.logger.Errorf("failed to unmarshal baseline snapshot for %s, error %v", key.BlobPath(), err)
		return nil, err
	}
	return snapshot, nil
}

// Store uploads the snapshot as the new baseline for the key.
func (s *Store) Store(ctx context.Context, key core.BaselineKey, snapshot *core.CoverageSnapshot) error {
	rawBytes, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Errorf("failed to marshal baseline snapshot for %s, error %v", key.BlobPath(), err)
		return err
	}

	blobURL := s.containerURL.NewBlockBlobURL(blobPath(key))
	_, err = azblob.UploadStreamToBlockBlob(ctx, bytes.NewReader(rawBytes), blobURL, azblob.UploadStreamToBlockBlobOptions{
		BlobHTTPHeaders: azblob.BlobHTTPHeaders{ContentType: "application/json"},
		BufferSize:      defaultBufferSize,
		MaxBuffers:      defaultMaxBuffers,
	})
	if err != nil {
		s.logger.Errorf("error while uploading baseline snapshot for %s, error %v", key.BlobPath(), err)
		return err
	}
	return nil
}

// noopStore backs local runs that have no blob storage configured. Fetch
// reports no stored baseline, so every current file diffs as added, and Store
// drops the snapshot.
type noopStore struct {
	logger lumber.Logger
}

// NewNoopStore returns a baseline store that persists nothing.
func NewNoopStore(logger lumber.Logger) core.BaselineStore {
	return &noopStore{logger: logger}
}

func (s *noopStore) Fetch(ctx context.Context, key core.BaselineKey) (*core.CoverageSnapshot, error) {
	s.logger.Debugf("baseline storage disabled, no baseline snapshot for %s", key.BlobPath())
	return nil, nil
}

func (s *noopStore) Store(ctx context.Context, key core.BaselineKey, snapshot *core.CoverageSnapshot) error {
	s.logger.Debugf("baseline storage disabled, dropping baseline snapshot for %s", key.BlobPath())
	return nil
}

func blobPath(key core.BaselineKey) string {
	return path.Join(key.BlobPath(), global.BaselineBlobName)
}

func isNotFound(err error) bool {
	if serr, ok := err.(azblob.StorageError); ok { // This error is a Service-specific
		return serr.ServiceCode() == azblob.ServiceCodeBlobNotFound
	}
	return false
}
