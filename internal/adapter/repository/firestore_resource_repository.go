package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
)

const resourcesCollection = "resources"

type firestoreResourceRepository struct {
	client *firestore.Client
}

func NewFirestoreResourceRepository(client *firestore.Client) repository.ResourceRepository {
	return &firestoreResourceRepository{
		client: client,
	}
}

func (r *firestoreResourceRepository) Create(ctx context.Context, resource *entity.Resource) error {
	if resource.ID == "" {
		resource.ID = r.client.Collection(resourcesCollection).NewDoc().ID
	}

	now := time.Now()
	resource.CreatedAt = now
	resource.UpdatedAt = now

	_, err := r.client.Collection(resourcesCollection).Doc(resource.ID).Set(ctx, resource)
	if err != nil {
		logger.LogStoreError(resourcesCollection, "create", resource.ID, err)
		return errors.Internal("Failed to create resource", err)
	}

	return nil
}

func (r *firestoreResourceRepository) GetByID(ctx context.Context, id string) (*entity.Resource, error) {
	doc, err := r.client.Collection(resourcesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Resource", err)
		}
		return nil, errors.Internal("Failed to get resource", err)
	}

	var resource entity.Resource
	if err := doc.DataTo(&resource); err != nil {
		return nil, errors.Internal("Failed to parse resource data", err)
	}
	resource.ID = doc.Ref.ID

	return &resource, nil
}

func (r *firestoreResourceRepository) Update(ctx context.Context, resource *entity.Resource) error {
	resource.UpdatedAt = time.Now()

	_, err := r.client.Collection(resourcesCollection).Doc(resource.ID).Update(ctx, []firestore.Update{
		{Path: "item", Value: resource.Item},
		{Path: "details", Value: resource.Details},
		{Path: "quantity", Value: resource.Quantity},
		{Path: "contact", Value: resource.Contact},
		{Path: "updatedAt", Value: resource.UpdatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Resource", err)
		}
		logger.LogStoreError(resourcesCollection, "update", resource.ID, err)
		return errors.Internal("Failed to update resource", err)
	}

	return nil
}

func (r *firestoreResourceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(resourcesCollection).Doc(id).Delete(ctx)
	if err != nil {
		logger.LogStoreError(resourcesCollection, "delete", id, err)
		return errors.Internal("Failed to delete resource", err)
	}

	return nil
}

func (r *firestoreResourceRepository) List(ctx context.Context) ([]*entity.Resource, error) {
	iter := r.client.Collection(resourcesCollection).OrderBy("item", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	resources := []*entity.Resource{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate resources", err)
		}

		var resource entity.Resource
		if err := doc.DataTo(&resource); err != nil {
			return nil, errors.Internal("Failed to parse resource data", err)
		}
		resource.ID = doc.Ref.ID
		resources = append(resources, &resource)
	}

	return resources, nil
}
