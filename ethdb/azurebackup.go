// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package ethdb

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/Azure/azure-pipeline-go/pipeline"
	"github.com/Azure/azure-storage-blob-go/azblob"
)

// AzureBackup uploads LevelDB snapshot contents to a container in Azure Blob
// Storage, the off-box backup path the teacher's ethdb/backup.go comment
// alludes to ("used to support the backup mechanism on the eth state
// server") but never itself wires: LDBSnapshot.FullIter gives an
// iterator over every key in the store, and AzureBackup.UploadSnapshot
// streams that iterator's concatenated entries to blob storage as one
// named blob per backup run.
type AzureBackup struct {
	container azblob.ContainerURL
}

// NewAzureBackup builds a backup client against containerURL, authorized
// with the given shared-key credential.
func NewAzureBackup(containerURL string, cred *azblob.SharedKeyCredential) (*AzureBackup, error) {
	u, err := url.Parse(containerURL)
	if err != nil {
		return nil, err
	}
	p := azblob.NewPipeline(cred, azblob.PipelineOptions{})
	return &AzureBackup{container: azblob.NewContainerURL(*u, p)}, nil
}

// UploadSnapshot drains it (an LDBSnapshot.FullIter()) into blobName,
// one PutBlob call per backup run — sufficient for the modest size of
// the header-index snapshots this module backs up, not a resumable
// multi-block-upload pipeline.
func (b *AzureBackup) UploadSnapshot(ctx context.Context, blobName string, it LDBIter) error {
	blob := b.container.NewBlockBlobURL(blobName)

	var buf []byte
	for it.Next() {
		buf = append(buf, it.Key()...)
		buf = append(buf, it.Value()...)
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("azure backup: snapshot iteration failed: %w", err)
	}

	_, err := blob.Upload(ctx, bytes.NewReader(buf), azblob.BlobHTTPHeaders{}, azblob.Metadata{}, azblob.BlobAccessConditions{}, azblob.DefaultAccessTier, nil, azblob.ClientProvidedKeyOptions{}, azblob.ImmutabilityPolicyOptions{})
	return err
}

// LogLevel is an azure-pipeline-go log level a host process can place in
// its own PipelineOptions. NewAzureBackup builds its pipeline with default
// options and does not apply it.
const LogLevel = pipeline.LogInfo
