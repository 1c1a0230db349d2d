package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefnet/internal/domain/entity"
)

var madrid = time.FixedZone("CET", 3600)

func TestListFoodPoints(t *testing.T) {
	repo := newMemFoodPointRepo(
		&entity.FoodPoint{ID: "fp-1", Name: "Comedor Parroquial", Schedule: map[string]string{"lunch": "13:00 - 15:30", "dinner": "20:00 - 22:00"}},
		&entity.FoodPoint{ID: "fp-2", Name: "Polideportivo", Schedule: map[string]string{"breakfast": "8:00 - 10:00"}},
	)
	uc := NewFoodPointUseCase(repo, madrid)

	// 13:30 local time, given in UTC
	uc.now = func() time.Time { return time.Date(2024, 11, 4, 12, 30, 0, 0, time.UTC) }

	listing, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.MealLunch, listing.Period)
	require.Len(t, listing.Points, 2)

	assert.Equal(t, "Comedor Parroquial", listing.Points[0].Name)
	assert.True(t, listing.Points[0].OpenNow)
	assert.Equal(t, map[string]bool{"breakfast": false, "lunch": true, "dinner": false}, listing.Points[0].Meals)

	assert.False(t, listing.Points[1].OpenNow)

	// 17:00 local: between services
	uc.now = func() time.Time { return time.Date(2024, 11, 4, 16, 0, 0, 0, time.UTC) }
	listing, err = uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.MealClosed, listing.Period)
	for _, point := range listing.Points {
		assert.False(t, point.OpenNow, point.Name)
	}
}

func TestSaveFoodPoint(t *testing.T) {
	uc := NewFoodPointUseCase(newMemFoodPointRepo(), madrid)
	ctx := context.Background()

	requireAppError(t, uc.Save(ctx, &entity.FoodPoint{Name: " "}), "BAD_REQUEST", "")
	requireAppError(t, uc.Save(ctx, &entity.FoodPoint{Name: "Cocina", Capacity: -1}), "BAD_REQUEST", "")
	requireAppError(t, uc.Save(ctx, &entity.FoodPoint{Name: "Cocina", Schedule: map[string]string{"brunch": "11:00 - 12:00"}}), "BAD_REQUEST", "")

	point := &entity.FoodPoint{Name: "Cocina Central", Capacity: 200, Schedule: map[string]string{"dinner": "19:30 - 21:30"}}
	require.NoError(t, uc.Save(ctx, point))
	assert.NotEmpty(t, point.ID)
}

func TestSeedFoodPoints(t *testing.T) {
	repo := newMemFoodPointRepo()
	uc := NewFoodPointUseCase(repo, madrid)

	seed := `
food_points:
  - id: comedor-parroquial
    name: Comedor Parroquial
    address: Calle San Roque 2, Paiporta
    capacity: 150
    services: [comida caliente, agua]
    schedule:
      lunch: "13:00 - 15:30"
  - id: polideportivo
    name: Polideportivo
    address: Avenida de la Diputación, Catarroja
    schedule:
      breakfast: "8:00 - 10:00"
      dinner: "20:00 - 22:00"
`
	n, err := uc.Seed(context.Background(), strings.NewReader(seed))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored := repo.points["comedor-parroquial"]
	require.NotNil(t, stored)
	assert.Equal(t, 150, stored.Capacity)
	assert.Equal(t, []string{"comida caliente", "agua"}, stored.Services)
	assert.Equal(t, "20:00 - 22:00", repo.points["polideportivo"].Schedule["dinner"])

	_, err = uc.Seed(context.Background(), strings.NewReader("food_points:\n  - name: Sin id\n"))
	assert.Error(t, err)

	_, err = uc.Seed(context.Background(), strings.NewReader("food_points:\n  - id: bad\n    name: Bad\n    schedule:\n      lunch: \"15:00 - 13:00\"\n"))
	assert.Error(t, err)
}
