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

const helpRequestsCollection = "helpRequests"

type firestoreHelpRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreHelpRequestRepository(client *firestore.Client) repository.HelpRequestRepository {
	return &firestoreHelpRequestRepository{
		client: client,
	}
}

func (r *firestoreHelpRequestRepository) Create(ctx context.Context, request *entity.HelpRequest) error {
	if request.ID == "" {
		request.ID = r.client.Collection(helpRequestsCollection).NewDoc().ID
	}

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := r.client.Collection(helpRequestsCollection).Doc(request.ID).Set(ctx, request)
	if err != nil {
		logger.LogStoreError(helpRequestsCollection, "create", request.ID, err)
		return errors.Internal("Failed to create help request", err)
	}

	return nil
}

func (r *firestoreHelpRequestRepository) GetByID(ctx context.Context, id string) (*entity.HelpRequest, error) {
	doc, err := r.client.Collection(helpRequestsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Help request", err)
		}
		return nil, errors.Internal("Failed to get help request", err)
	}

	var request entity.HelpRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse help request data", err)
	}
	request.ID = doc.Ref.ID

	return &request, nil
}

// Update writes only the editable fields, leaving photoUrls to AddPhoto.
// A request deleted in the meantime is reported as not found.
func (r *firestoreHelpRequestRepository) Update(ctx context.Context, request *entity.HelpRequest) error {
	request.UpdatedAt = time.Now()

	_, err := r.client.Collection(helpRequestsCollection).Doc(request.ID).Update(ctx, []firestore.Update{
		{Path: "type", Value: request.Type},
		{Path: "description", Value: request.Description},
		{Path: "address", Value: request.Address},
		{Path: "contact", Value: request.Contact},
		{Path: "urgency", Value: string(request.Urgency)},
		{Path: "status", Value: string(request.Status)},
		{Path: "updatedAt", Value: request.UpdatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Help request", err)
		}
		logger.LogStoreError(helpRequestsCollection, "update", request.ID, err)
		return errors.Internal("Failed to update help request", err)
	}

	return nil
}

func (r *firestoreHelpRequestRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(helpRequestsCollection).Doc(id).Delete(ctx)
	if err != nil {
		logger.LogStoreError(helpRequestsCollection, "delete", id, err)
		return errors.Internal("Failed to delete help request", err)
	}

	return nil
}

func (r *firestoreHelpRequestRepository) ListByStatus(ctx context.Context, st entity.Status) ([]*entity.HelpRequest, error) {
	query := r.client.Collection(helpRequestsCollection).
		Where("status", "==", string(st)).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	requests := []*entity.HelpRequest{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate help requests", err)
		}

		var request entity.HelpRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, errors.Internal("Failed to parse help request data", err)
		}
		request.ID = doc.Ref.ID
		requests = append(requests, &request)
	}

	return requests, nil
}

func (r *firestoreHelpRequestRepository) AddPhoto(ctx context.Context, id, url string) error {
	_, err := r.client.Collection(helpRequestsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "photoUrls", Value: firestore.ArrayUnion(url)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Help request", err)
		}
		logger.LogStoreError(helpRequestsCollection, "add_photo", id, err)
		return errors.Internal("Failed to attach photo", err)
	}

	return nil
}
