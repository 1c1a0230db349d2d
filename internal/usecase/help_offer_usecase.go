package usecase

import (
	"context"
	"strings"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/utils"
)

const helpOfferKind = "help_offer"

type HelpOfferUseCase struct {
	offerRepo repository.HelpOfferRepository
	userRepo  repository.UserRepository
	feed      FeedPublisher
}

func NewHelpOfferUseCase(offerRepo repository.HelpOfferRepository, userRepo repository.UserRepository, feed FeedPublisher) *HelpOfferUseCase {
	if feed == nil {
		feed = noopPublisher{}
	}
	return &HelpOfferUseCase{
		offerRepo: offerRepo,
		userRepo:  userRepo,
		feed:      feed,
	}
}

type CreateHelpOfferInput struct {
	Type         string
	Description  string
	Availability string
	Contact      string
}

type UpdateHelpOfferInput struct {
	Type         *string
	Description  *string
	Availability *string
	Contact      *string
	Status       *entity.Status
}

func (uc *HelpOfferUseCase) Create(ctx context.Context, uid string, input CreateHelpOfferInput) (*entity.HelpOffer, error) {
	if !entity.ValidHelpType(input.Type) {
		return nil, errors.BadRequest("Invalid help type", nil)
	}

	offer := &entity.HelpOffer{
		Type:         input.Type,
		Description:  strings.TrimSpace(input.Description),
		Availability: strings.TrimSpace(input.Availability),
		Contact:      strings.TrimSpace(input.Contact),
		Status:       entity.StatusActive,
		CreatedBy:    uid,
	}

	if err := uc.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	uc.feed.Publish(entity.NewFeedEvent(helpOfferKind, entity.EventCreated, offer.ID, offer))
	return offer, nil
}

func (uc *HelpOfferUseCase) GetByID(ctx context.Context, id string) (*entity.HelpOffer, error) {
	return uc.offerRepo.GetByID(ctx, id)
}

func (uc *HelpOfferUseCase) List(ctx context.Context, filter ListFilter) ([]*entity.HelpOffer, int64, error) {
	status, err := listStatus(filter.Status)
	if err != nil {
		return nil, 0, err
	}
	if filter.Type != "" && !entity.ValidHelpType(filter.Type) {
		return nil, 0, errors.BadRequest("Invalid help type", nil)
	}

	offers, err := uc.offerRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*entity.HelpOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Matches(filter.Type, filter.Query) {
			matched = append(matched, offer)
		}
	}

	page := utils.Paginate(matched, utils.NewPaginationParams(filter.Page, filter.PageSize))
	return page, int64(len(matched)), nil
}

func (uc *HelpOfferUseCase) Update(ctx context.Context, uid, id string, input UpdateHelpOfferInput) (*entity.HelpOffer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeChange(ctx, uc.userRepo, uid, offer.CreatedBy); err != nil {
		return nil, err
	}

	if input.Type != nil {
		if !entity.ValidHelpType(*input.Type) {
			return nil, errors.BadRequest("Invalid help type", nil)
		}
		offer.Type = *input.Type
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, errors.BadRequest("Invalid status", nil)
		}
		offer.Status = *input.Status
	}
	if input.Description != nil {
		offer.Description = strings.TrimSpace(*input.Description)
	}
	if input.Availability != nil {
		offer.Availability = strings.TrimSpace(*input.Availability)
	}
	if input.Contact != nil {
		offer.Contact = strings.TrimSpace(*input.Contact)
	}

	if err := uc.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}

	uc.feed.Publish(entity.NewFeedEvent(helpOfferKind, entity.EventUpdated, offer.ID, offer))
	return offer, nil
}

func (uc *HelpOfferUseCase) Delete(ctx context.Context, uid, id string) error {
	offer, err := uc.offerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeChange(ctx, uc.userRepo, uid, offer.CreatedBy); err != nil {
		return err
	}

	if err := uc.offerRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.feed.Publish(entity.NewFeedEvent(helpOfferKind, entity.EventDeleted, id, nil))
	return nil
}
