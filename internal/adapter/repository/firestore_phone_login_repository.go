package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
)

const phoneLoginsCollection = "phoneLogins"

type firestorePhoneLoginRepository struct {
	client *firestore.Client
}

func NewFirestorePhoneLoginRepository(client *firestore.Client) repository.PhoneLoginRepository {
	return &firestorePhoneLoginRepository{
		client: client,
	}
}

func (r *firestorePhoneLoginRepository) Create(ctx context.Context, login *entity.PhoneLogin) error {
	// Flow ids travel in URLs, so they are random rather than sequential
	if login.ID == "" {
		login.ID = uuid.New().String()
	}

	now := time.Now()
	login.CreatedAt = now
	login.UpdatedAt = now

	_, err := r.client.Collection(phoneLoginsCollection).Doc(login.ID).Create(ctx, login)
	if err != nil {
		logger.LogStoreError(phoneLoginsCollection, "create", login.ID, err)
		return errors.Internal("Failed to start phone login", err)
	}

	return nil
}

func (r *firestorePhoneLoginRepository) GetByID(ctx context.Context, id string) (*entity.PhoneLogin, error) {
	doc, err := r.client.Collection(phoneLoginsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Phone login", err)
		}
		return nil, errors.Internal("Failed to get phone login", err)
	}

	var login entity.PhoneLogin
	if err := doc.DataTo(&login); err != nil {
		return nil, errors.Internal("Failed to parse phone login data", err)
	}
	login.ID = doc.Ref.ID

	return &login, nil
}

func (r *firestorePhoneLoginRepository) Update(ctx context.Context, login *entity.PhoneLogin) error {
	login.UpdatedAt = time.Now()

	_, err := r.client.Collection(phoneLoginsCollection).Doc(login.ID).Set(ctx, login)
	if err != nil {
		logger.LogStoreError(phoneLoginsCollection, "update", login.ID, err)
		return errors.Internal("Failed to update phone login", err)
	}

	return nil
}
