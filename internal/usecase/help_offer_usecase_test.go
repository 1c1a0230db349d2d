package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefnet/internal/domain/entity"
)

func TestHelpOfferLifecycle(t *testing.T) {
	repo := newMemHelpOfferRepo(
		&entity.HelpOffer{ID: "offer-1", Type: "alojamiento", Description: "Habitación libre", Availability: "fines de semana", Status: entity.StatusActive, CreatedBy: "uid-1"},
		&entity.HelpOffer{ID: "offer-2", Type: "equipos", Description: "Bomba de agua", Availability: "mañanas", Status: entity.StatusActive, CreatedBy: "uid-2"},
	)
	users := newMemUserRepo(&entity.UserProfile{ID: "coord", Role: entity.RoleCoordinator})
	feed := &recordingFeed{}
	uc := NewHelpOfferUseCase(repo, users, feed)
	ctx := context.Background()

	_, err := uc.Create(ctx, "uid-3", CreateHelpOfferInput{Type: "dinero"})
	requireAppError(t, err, "BAD_REQUEST", "")

	offer, err := uc.Create(ctx, "uid-3", CreateHelpOfferInput{Type: "voluntariado", Description: "Dos personas con palas", Availability: "tardes"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, offer.Status)

	offers, total, err := uc.List(ctx, ListFilter{Query: "FINES"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "offer-1", offers[0].ID)

	offers, total, err = uc.List(ctx, ListFilter{Type: "equipos"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "offer-2", offers[0].ID)

	cancelled := entity.StatusCancelled
	_, err = uc.Update(ctx, "uid-1", "offer-2", UpdateHelpOfferInput{Status: &cancelled})
	requireAppError(t, err, "FORBIDDEN", "")

	updated, err := uc.Update(ctx, "coord", "offer-2", UpdateHelpOfferInput{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, updated.Status)

	require.NoError(t, uc.Delete(ctx, "uid-1", "offer-1"))

	_, total, err = uc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	assert.Equal(t, []string{"help_offer.created", "help_offer.updated", "help_offer.deleted"}, feed.types())
}

func TestResourceLifecycle(t *testing.T) {
	repo := newMemResourceRepo(
		&entity.Resource{ID: "res-1", Item: "Botas de agua", Details: "Tallas 38 a 45", Quantity: 40, CreatedBy: "uid-1"},
		&entity.Resource{ID: "res-2", Item: "Palas", Details: "Almacén municipal", Quantity: 12, CreatedBy: "uid-2"},
	)
	feed := &recordingFeed{}
	uc := NewResourceUseCase(repo, newMemUserRepo(), feed)
	ctx := context.Background()

	_, err := uc.Create(ctx, "uid-1", CreateResourceInput{Item: "  "})
	requireAppError(t, err, "BAD_REQUEST", "")

	_, err = uc.Create(ctx, "uid-1", CreateResourceInput{Item: "Guantes", Quantity: -1})
	requireAppError(t, err, "BAD_REQUEST", "")

	_, err = uc.Create(ctx, "uid-1", CreateResourceInput{Item: "Guantes", Quantity: 100})
	require.NoError(t, err)

	resources, total, err := uc.List(ctx, "almacén", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "res-2", resources[0].ID)

	quantity := 0
	updated, err := uc.Update(ctx, "uid-1", "res-1", UpdateResourceInput{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)

	negative := -3
	_, err = uc.Update(ctx, "uid-1", "res-1", UpdateResourceInput{Quantity: &negative})
	requireAppError(t, err, "BAD_REQUEST", "")

	requireAppError(t, uc.Delete(ctx, "uid-1", "res-2"), "FORBIDDEN", "")

	assert.Equal(t, []string{"resource.created", "resource.updated"}, feed.types())
}
