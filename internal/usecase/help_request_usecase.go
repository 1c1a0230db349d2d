package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
	"reliefnet/pkg/utils"
)

const (
	helpRequestKind = "help_request"

	MaxPhotoSize = 5 << 20
)

var allowedPhotoTypes = []string{"image/jpeg", "image/png", "image/webp"}

type HelpRequestUseCase struct {
	requestRepo repository.HelpRequestRepository
	userRepo    repository.UserRepository
	fileRepo    repository.FileMetadataRepository
	photos      PhotoStore
	feed        FeedPublisher
}

func NewHelpRequestUseCase(
	requestRepo repository.HelpRequestRepository,
	userRepo repository.UserRepository,
	fileRepo repository.FileMetadataRepository,
	photos PhotoStore,
	feed FeedPublisher,
) *HelpRequestUseCase {
	if feed == nil {
		feed = noopPublisher{}
	}
	return &HelpRequestUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		fileRepo:    fileRepo,
		photos:      photos,
		feed:        feed,
	}
}

type CreateHelpRequestInput struct {
	Type        string
	Description string
	Address     string
	Contact     string
	Urgency     entity.Urgency
}

// UpdateHelpRequestInput only touches the fields that are set.
type UpdateHelpRequestInput struct {
	Type        *string
	Description *string
	Address     *string
	Contact     *string
	Urgency     *entity.Urgency
	Status      *entity.Status
}

type ListFilter struct {
	Type     string
	Query    string
	Status   entity.Status
	Page     int
	PageSize int
}

func (uc *HelpRequestUseCase) Create(ctx context.Context, uid string, input CreateHelpRequestInput) (*entity.HelpRequest, error) {
	if !entity.ValidHelpType(input.Type) {
		return nil, errors.BadRequest("Invalid help type", nil)
	}
	if !input.Urgency.Valid() {
		return nil, errors.BadRequest("Invalid urgency", nil)
	}

	request := &entity.HelpRequest{
		Type:        input.Type,
		Description: strings.TrimSpace(input.Description),
		Address:     strings.TrimSpace(input.Address),
		Contact:     strings.TrimSpace(input.Contact),
		Urgency:     input.Urgency,
		Status:      entity.StatusActive,
		CreatedBy:   uid,
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	uc.feed.Publish(entity.NewFeedEvent(helpRequestKind, entity.EventCreated, request.ID, request))
	return request, nil
}

func (uc *HelpRequestUseCase) GetByID(ctx context.Context, id string) (*entity.HelpRequest, error) {
	return uc.requestRepo.GetByID(ctx, id)
}

// List returns one page of requests in the given status (active by default)
// that pass the type and text filters, plus the filtered total.
func (uc *HelpRequestUseCase) List(ctx context.Context, filter ListFilter) ([]*entity.HelpRequest, int64, error) {
	status, err := listStatus(filter.Status)
	if err != nil {
		return nil, 0, err
	}
	if filter.Type != "" && !entity.ValidHelpType(filter.Type) {
		return nil, 0, errors.BadRequest("Invalid help type", nil)
	}

	requests, err := uc.requestRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*entity.HelpRequest, 0, len(requests))
	for _, request := range requests {
		if request.Matches(filter.Type, filter.Query) {
			matched = append(matched, request)
		}
	}

	page := utils.Paginate(matched, utils.NewPaginationParams(filter.Page, filter.PageSize))
	return page, int64(len(matched)), nil
}

func (uc *HelpRequestUseCase) Update(ctx context.Context, uid, id string, input UpdateHelpRequestInput) (*entity.HelpRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeChange(ctx, uc.userRepo, uid, request.CreatedBy); err != nil {
		return nil, err
	}

	if input.Type != nil {
		if !entity.ValidHelpType(*input.Type) {
			return nil, errors.BadRequest("Invalid help type", nil)
		}
		request.Type = *input.Type
	}
	if input.Urgency != nil {
		if !input.Urgency.Valid() {
			return nil, errors.BadRequest("Invalid urgency", nil)
		}
		request.Urgency = *input.Urgency
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, errors.BadRequest("Invalid status", nil)
		}
		request.Status = *input.Status
	}
	if input.Description != nil {
		request.Description = strings.TrimSpace(*input.Description)
	}
	if input.Address != nil {
		request.Address = strings.TrimSpace(*input.Address)
	}
	if input.Contact != nil {
		request.Contact = strings.TrimSpace(*input.Contact)
	}

	if err := uc.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	uc.feed.Publish(entity.NewFeedEvent(helpRequestKind, entity.EventUpdated, request.ID, request))
	return request, nil
}

func (uc *HelpRequestUseCase) Delete(ctx context.Context, uid, id string) error {
	request, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeChange(ctx, uc.userRepo, uid, request.CreatedBy); err != nil {
		return err
	}

	if err := uc.requestRepo.Delete(ctx, id); err != nil {
		return err
	}

	for _, url := range request.PhotoURLs {
		if err := uc.photos.Delete(ctx, url); err != nil {
			logger.Warn("failed to delete photo %s of help request %s: %v", url, id, err)
		}
	}
	if err := uc.fileRepo.DeleteByEntityID(ctx, helpRequestKind, id); err != nil {
		logger.Warn("failed to delete photo metadata of help request %s: %v", id, err)
	}

	uc.feed.Publish(entity.NewFeedEvent(helpRequestKind, entity.EventDeleted, id, nil))
	return nil
}

// AttachPhoto stores an image for the request. Only the creator may attach
// photos; the content is sniffed rather than trusting the declared type.
func (uc *HelpRequestUseCase) AttachPhoto(ctx context.Context, uid, id string, data []byte) (string, error) {
	request, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if request.CreatedBy != uid {
		return "", errors.Forbidden("Only the creator can add photos", nil)
	}

	if len(data) == 0 || len(data) > MaxPhotoSize {
		return "", errors.BadRequest("Photo must be a JPEG, PNG or WebP image up to 5 MB", nil).WithMessageID("invalid_photo")
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedPhotoTypes...) {
		return "", errors.BadRequest("Photo must be a JPEG, PNG or WebP image up to 5 MB", nil).WithMessageID("invalid_photo")
	}

	objectName := fmt.Sprintf("help-requests/%s/%s%s", id, uuid.New().String(), mtype.Extension())
	url, err := uc.photos.Upload(ctx, objectName, mtype.String(), data)
	if err != nil {
		return "", errors.Internal("Failed to upload photo", err)
	}

	if err := uc.requestRepo.AddPhoto(ctx, id, url); err != nil {
		if delErr := uc.photos.Delete(ctx, url); delErr != nil {
			logger.Warn("failed to remove orphaned photo %s: %v", url, delErr)
		}
		return "", err
	}

	metadata := &entity.FileMetadata{
		URL:         url,
		ObjectName:  objectName,
		EntityType:  helpRequestKind,
		EntityID:    id,
		UploadedBy:  uid,
		ContentType: mtype.String(),
		Size:        int64(len(data)),
	}
	if err := uc.fileRepo.Create(ctx, metadata); err != nil {
		logger.Warn("failed to record metadata for photo %s: %v", url, err)
	}

	request.PhotoURLs = append(request.PhotoURLs, url)
	uc.feed.Publish(entity.NewFeedEvent(helpRequestKind, entity.EventUpdated, request.ID, request))
	return url, nil
}

// ListPhotos returns what is known about each photo attached to a request.
func (uc *HelpRequestUseCase) ListPhotos(ctx context.Context, id string) ([]*entity.FileMetadata, error) {
	if _, err := uc.requestRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.fileRepo.GetByEntityID(ctx, helpRequestKind, id)
}

func listStatus(status entity.Status) (entity.Status, error) {
	if status == "" {
		return entity.StatusActive, nil
	}
	if !status.Valid() {
		return "", errors.BadRequest("Invalid status", nil)
	}
	return status, nil
}
