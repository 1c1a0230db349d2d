package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
)

const helpOffersCollection = "helpOffers"

type firestoreHelpOfferRepository struct {
	client *firestore.Client
}

func NewFirestoreHelpOfferRepository(client *firestore.Client) repository.HelpOfferRepository {
	return &firestoreHelpOfferRepository{
		client: client,
	}
}

func (r *firestoreHelpOfferRepository) Create(ctx context.Context, offer *entity.HelpOffer) error {
	if offer.ID == "" {
		offer.ID = r.client.Collection(helpOffersCollection).NewDoc().ID
	}

	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	_, err := r.client.Collection(helpOffersCollection).Doc(offer.ID).Set(ctx, offer)
	if err != nil {
		logger.LogStoreError(helpOffersCollection, "create", offer.ID, err)
		return errors.Internal("Failed to create help offer", err)
	}

	return nil
}

func (r *firestoreHelpOfferRepository) GetByID(ctx context.Context, id string) (*entity.HelpOffer, error) {
	doc, err := r.client.Collection(helpOffersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Help offer", err)
		}
		return nil, errors.Internal("Failed to get help offer", err)
	}

	var offer entity.HelpOffer
	if err := doc.DataTo(&offer); err != nil {
		return nil, errors.Internal("Failed to parse help offer data", err)
	}
	offer.ID = doc.Ref.ID

	return &offer, nil
}

func (r *firestoreHelpOfferRepository) Update(ctx context.Context, offer *entity.HelpOffer) error {
	offer.UpdatedAt = time.Now()

	_, err := r.client.Collection(helpOffersCollection).Doc(offer.ID).Update(ctx, []firestore.Update{
		{Path: "type", Value: offer.Type},
		{Path: "description", Value: offer.Description},
		{Path: "availability", Value: offer.Availability},
		{Path: "contact", Value: offer.Contact},
		{Path: "status", Value: string(offer.Status)},
		{Path: "updatedAt", Value: offer.UpdatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Help offer", err)
		}
		logger.LogStoreError(helpOffersCollection, "update", offer.ID, err)
		return errors.Internal("Failed to update help offer", err)
	}

	return nil
}

func (r *firestoreHelpOfferRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(helpOffersCollection).Doc(id).Delete(ctx)
	if err != nil {
		logger.LogStoreError(helpOffersCollection, "delete", id, err)
		return errors.Internal("Failed to delete help offer", err)
	}

	return nil
}

func (r *firestoreHelpOfferRepository) ListByStatus(ctx context.Context, st entity.Status) ([]*entity.HelpOffer, error) {
	query := r.client.Collection(helpOffersCollection).
		Where("status", "==", string(st)).
		OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list help offers", err)
	}

	offers := make([]*entity.HelpOffer, 0, len(docs))
	for _, doc := range docs {
		var offer entity.HelpOffer
		if err := doc.DataTo(&offer); err != nil {
			return nil, errors.Internal("Failed to parse help offer data", err)
		}
		offer.ID = doc.Ref.ID
		offers = append(offers, &offer)
	}

	return offers, nil
}
