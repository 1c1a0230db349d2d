package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
)

const fileMetadataCollection = "fileMetadata"

type firestoreFileMetadataRepository struct {
	client *firestore.Client
}

func NewFirestoreFileMetadataRepository(client *firestore.Client) repository.FileMetadataRepository {
	return &firestoreFileMetadataRepository{
		client: client,
	}
}

func (r *firestoreFileMetadataRepository) Create(ctx context.Context, metadata *entity.FileMetadata) error {
	if metadata.ID == "" {
		metadata.ID = r.client.Collection(fileMetadataCollection).NewDoc().ID
	}
	metadata.CreatedAt = time.Now()

	_, err := r.client.Collection(fileMetadataCollection).Doc(metadata.ID).Set(ctx, metadata)
	if err != nil {
		logger.LogStoreError(fileMetadataCollection, "create", metadata.ID, err)
		return errors.Internal("Failed to create file metadata", err)
	}
	return nil
}

func (r *firestoreFileMetadataRepository) GetByEntityID(ctx context.Context, entityType, entityID string) ([]*entity.FileMetadata, error) {
	query := r.client.Collection(fileMetadataCollection).
		Where("entityType", "==", entityType).
		Where("entityId", "==", entityID).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	metadataList := []*entity.FileMetadata{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate file metadata", err)
		}

		var metadata entity.FileMetadata
		if err := doc.DataTo(&metadata); err != nil {
			logger.Error("Failed to parse file metadata %s: %v", doc.Ref.ID, err)
			continue
		}
		metadata.ID = doc.Ref.ID
		metadataList = append(metadataList, &metadata)
	}

	return metadataList, nil
}

func (r *firestoreFileMetadataRepository) DeleteByEntityID(ctx context.Context, entityType, entityID string) error {
	docs, err := r.client.Collection(fileMetadataCollection).
		Where("entityType", "==", entityType).
		Where("entityId", "==", entityID).
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query file metadata", err)
	}

	if len(docs) == 0 {
		return nil
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make(map[string]*firestore.BulkWriterJob, len(docs))
	for _, doc := range docs {
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			bw.End()
			logger.LogStoreError(fileMetadataCollection, "delete", doc.Ref.ID, err)
			return errors.Internal("Failed to delete file metadata", err)
		}
		jobs[doc.Ref.ID] = job
	}
	bw.End()

	var firstErr error
	for id, job := range jobs {
		if _, err := job.Results(); err != nil {
			logger.LogStoreError(fileMetadataCollection, "delete", id, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return errors.Internal("Failed to delete file metadata", firstErr)
	}

	return nil
}
