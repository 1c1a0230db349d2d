package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
)

type FoodPointUseCase struct {
	pointRepo repository.FoodPointRepository
	location  *time.Location
	now       func() time.Time
}

func NewFoodPointUseCase(pointRepo repository.FoodPointRepository, location *time.Location) *FoodPointUseCase {
	if location == nil {
		location = time.UTC
	}
	return &FoodPointUseCase{
		pointRepo: pointRepo,
		location:  location,
		now:       time.Now,
	}
}

// FoodPointStatus is a food point as seen right now.
type FoodPointStatus struct {
	*entity.FoodPoint
	OpenNow bool            `json:"open_now"`
	Meals   map[string]bool `json:"meals"`
}

type FoodPointListing struct {
	Period entity.MealPeriod `json:"period"`
	Points []FoodPointStatus `json:"points"`
}

func (uc *FoodPointUseCase) List(ctx context.Context) (*FoodPointListing, error) {
	points, err := uc.pointRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(uc.location)
	period := entity.CurrentMealPeriod(now)

	listing := &FoodPointListing{
		Period: period,
		Points: make([]FoodPointStatus, 0, len(points)),
	}
	for _, point := range points {
		meals := make(map[string]bool, len(entity.Meals))
		for _, meal := range entity.Meals {
			meals[string(meal)] = point.IsOpen(meal, now)
		}
		listing.Points = append(listing.Points, FoodPointStatus{
			FoodPoint: point,
			OpenNow:   period != entity.MealClosed && meals[string(period)],
			Meals:     meals,
		})
	}

	return listing, nil
}

func (uc *FoodPointUseCase) Save(ctx context.Context, point *entity.FoodPoint) error {
	point.Name = strings.TrimSpace(point.Name)
	if point.Name == "" {
		return errors.BadRequest("Name is required", nil)
	}
	if point.Capacity < 0 {
		return errors.BadRequest("Capacity cannot be negative", nil)
	}
	if err := point.ValidateSchedule(); err != nil {
		return errors.BadRequest("Invalid schedule", err)
	}

	return uc.pointRepo.Upsert(ctx, point)
}

type foodPointSeed struct {
	FoodPoints []entity.FoodPoint `yaml:"food_points"`
}

// Seed upserts every food point in a YAML document and returns how many
// were written.
func (uc *FoodPointUseCase) Seed(ctx context.Context, r io.Reader) (int, error) {
	var seed foodPointSeed
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		return 0, fmt.Errorf("failed to decode food point seed: %w", err)
	}

	for i := range seed.FoodPoints {
		point := &seed.FoodPoints[i]
		if point.ID == "" {
			return i, fmt.Errorf("food point %q has no id", point.Name)
		}
		if err := uc.Save(ctx, point); err != nil {
			return i, fmt.Errorf("food point %s: %w", point.ID, err)
		}
	}

	return len(seed.FoodPoints), nil
}

func (uc *FoodPointUseCase) SeedFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := uc.Seed(ctx, f)
	if err != nil {
		return n, err
	}

	logger.Info("seeded %d food points from %s", n, path)
	return n, nil
}
