package usecase

import (
	"context"
	"strings"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/utils"
)

const resourceKind = "resource"

type ResourceUseCase struct {
	resourceRepo repository.ResourceRepository
	userRepo     repository.UserRepository
	feed         FeedPublisher
}

func NewResourceUseCase(resourceRepo repository.ResourceRepository, userRepo repository.UserRepository, feed FeedPublisher) *ResourceUseCase {
	if feed == nil {
		feed = noopPublisher{}
	}
	return &ResourceUseCase{
		resourceRepo: resourceRepo,
		userRepo:     userRepo,
		feed:         feed,
	}
}

type CreateResourceInput struct {
	Item     string
	Details  string
	Quantity int
	Contact  string
}

type UpdateResourceInput struct {
	Item     *string
	Details  *string
	Quantity *int
	Contact  *string
}

func (uc *ResourceUseCase) Create(ctx context.Context, uid string, input CreateResourceInput) (*entity.Resource, error) {
	item := strings.TrimSpace(input.Item)
	if item == "" {
		return nil, errors.BadRequest("Item is required", nil)
	}
	if input.Quantity < 0 {
		return nil, errors.BadRequest("Quantity cannot be negative", nil)
	}

	resource := &entity.Resource{
		Item:      item,
		Details:   strings.TrimSpace(input.Details),
		Quantity:  input.Quantity,
		Contact:   strings.TrimSpace(input.Contact),
		CreatedBy: uid,
	}

	if err := uc.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}

	uc.feed.Publish(entity.NewFeedEvent(resourceKind, entity.EventCreated, resource.ID, resource))
	return resource, nil
}

func (uc *ResourceUseCase) GetByID(ctx context.Context, id string) (*entity.Resource, error) {
	return uc.resourceRepo.GetByID(ctx, id)
}

func (uc *ResourceUseCase) List(ctx context.Context, query string, page, pageSize int) ([]*entity.Resource, int64, error) {
	resources, err := uc.resourceRepo.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*entity.Resource, 0, len(resources))
	for _, resource := range resources {
		if resource.Matches(query) {
			matched = append(matched, resource)
		}
	}

	return utils.Paginate(matched, utils.NewPaginationParams(page, pageSize)), int64(len(matched)), nil
}

func (uc *ResourceUseCase) Update(ctx context.Context, uid, id string, input UpdateResourceInput) (*entity.Resource, error) {
	resource, err := uc.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeChange(ctx, uc.userRepo, uid, resource.CreatedBy); err != nil {
		return nil, err
	}

	if input.Item != nil {
		item := strings.TrimSpace(*input.Item)
		if item == "" {
			return nil, errors.BadRequest("Item is required", nil)
		}
		resource.Item = item
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, errors.BadRequest("Quantity cannot be negative", nil)
		}
		resource.Quantity = *input.Quantity
	}
	if input.Details != nil {
		resource.Details = strings.TrimSpace(*input.Details)
	}
	if input.Contact != nil {
		resource.Contact = strings.TrimSpace(*input.Contact)
	}

	if err := uc.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}

	uc.feed.Publish(entity.NewFeedEvent(resourceKind, entity.EventUpdated, resource.ID, resource))
	return resource, nil
}

func (uc *ResourceUseCase) Delete(ctx context.Context, uid, id string) error {
	resource, err := uc.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeChange(ctx, uc.userRepo, uid, resource.CreatedBy); err != nil {
		return err
	}

	if err := uc.resourceRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.feed.Publish(entity.NewFeedEvent(resourceKind, entity.EventDeleted, id, nil))
	return nil
}
