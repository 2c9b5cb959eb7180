package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/foodie-app/foodie-backend/internal/cms"
	"github.com/foodie-app/foodie-backend/internal/config"
	"github.com/foodie-app/foodie-backend/internal/database"
	"github.com/foodie-app/foodie-backend/internal/models"
	"github.com/foodie-app/foodie-backend/internal/rating"
	"github.com/foodie-app/foodie-backend/internal/repository"
	"github.com/foodie-app/foodie-backend/internal/services"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pageSize = 100

func main() {
	log.Println("Strapi sync starting...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	client := cms.NewClient(cfg.StrapiURL, cfg.StrapiKey)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping...")
		cancel()
	}()

	importer := &importer{db: db, client: client}

	if err := importer.run(ctx); err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	if err := recomputeAllStats(db); err != nil {
		log.Fatalf("Stats recomputation failed: %v", err)
	}

	log.Println("Sync completed successfully")
}

type importer struct {
	db     *gorm.DB
	client *cms.Client
}

func (im *importer) run(ctx context.Context) error {
	if err := im.importAttributes(ctx); err != nil {
		return err
	}
	if err := im.importRestaurants(ctx); err != nil {
		return err
	}
	if err := im.importDishes(ctx); err != nil {
		return err
	}
	if err := im.importReviews(ctx); err != nil {
		return err
	}
	return im.importReviewDetails(ctx)
}

func (im *importer) importAttributes(ctx context.Context) error {
	for page := 1; ; page++ {
		resp, err := im.client.ListAttributes(ctx, cms.NewQuery().Paginate(page, pageSize))
		if err != nil {
			return err
		}

		for _, entry := range resp.Data {
			weight := rating.DefaultWeight
			if entry.Attributes.Weight != nil {
				weight = *entry.Attributes.Weight
			}
			attr := models.Attribute{
				ID:          entry.ID,
				Name:        entry.Attributes.Name,
				Description: entry.Attributes.Description,
				Weight:      weight,
			}
			if err := upsert(im.db, &attr); err != nil {
				return fmt.Errorf("attribute %d: %w", entry.ID, err)
			}
		}

		log.Printf("Imported attributes page %d/%d", page, resp.Meta.Pagination.PageCount)
		if page >= resp.Meta.Pagination.PageCount {
			return nil
		}
	}
}

func (im *importer) importRestaurants(ctx context.Context) error {
	for page := 1; ; page++ {
		resp, err := im.client.ListRestaurants(ctx, cms.NewQuery().Paginate(page, pageSize))
		if err != nil {
			return err
		}

		for _, entry := range resp.Data {
			restaurant := models.Restaurant{
				ID:         entry.ID,
				Name:       entry.Attributes.Name,
				Address:    entry.Attributes.Address,
				Cuisine:    entry.Attributes.Cuisine,
				PriceRange: entry.Attributes.PriceRange,
				Lat:        entry.Attributes.Lat,
				Lng:        entry.Attributes.Lng,
			}
			if err := upsert(im.db, &restaurant); err != nil {
				return fmt.Errorf("restaurant %d: %w", entry.ID, err)
			}
		}

		log.Printf("Imported restaurants page %d/%d", page, resp.Meta.Pagination.PageCount)
		if page >= resp.Meta.Pagination.PageCount {
			return nil
		}
	}
}

func (im *importer) importDishes(ctx context.Context) error {
	for page := 1; ; page++ {
		q := cms.NewQuery().Populate("restaurant").Populate("attributes").Paginate(page, pageSize)
		resp, err := im.client.ListDishes(ctx, q)
		if err != nil {
			return err
		}

		for _, entry := range resp.Data {
			restaurantID := entry.Attributes.Restaurant.RefID()
			if restaurantID == 0 {
				log.Printf("Skipping dish %d: no restaurant relation", entry.ID)
				continue
			}

			dish := models.Dish{
				ID:           entry.ID,
				RestaurantID: restaurantID,
				Name:         entry.Attributes.Name,
				Category:     entry.Attributes.Category,
				Price:        entry.Attributes.Price,
			}
			if err := upsert(im.db, &dish); err != nil {
				return fmt.Errorf("dish %d: %w", entry.ID, err)
			}

			var attrs []models.Attribute
			for _, ref := range entry.Attributes.Attributes.Data {
				attrs = append(attrs, models.Attribute{ID: ref.ID})
			}
			if err := im.db.Model(&dish).Association("Attributes").Replace(attrs); err != nil {
				return fmt.Errorf("dish %d attributes: %w", entry.ID, err)
			}
		}

		log.Printf("Imported dishes page %d/%d", page, resp.Meta.Pagination.PageCount)
		if page >= resp.Meta.Pagination.PageCount {
			return nil
		}
	}
}

func (im *importer) importReviews(ctx context.Context) error {
	for page := 1; ; page++ {
		q := cms.NewQuery().Populate("user").Populate("dish").Paginate(page, pageSize)
		resp, err := im.client.ListReviews(ctx, q)
		if err != nil {
			return err
		}

		for _, entry := range resp.Data {
			userID := entry.Attributes.User.RefID()
			dishID := entry.Attributes.Dish.RefID()
			if userID == 0 || dishID == 0 {
				log.Printf("Skipping review %d: missing user or dish relation", entry.ID)
				continue
			}

			if err := im.ensureUser(userID); err != nil {
				return fmt.Errorf("review %d user: %w", entry.ID, err)
			}

			// Legacy records store the overall rating on the 1-10 scale.
			overall := entry.Attributes.Rating
			if overall > 5 {
				overall = rating.Round1(overall / 2)
			}

			review := models.Review{
				ID:            entry.ID,
				UserID:        userID,
				DishID:        dishID,
				Comment:       entry.Attributes.Comment,
				OverallRating: overall,
				IsActive:      true,
			}
			if err := upsert(im.db, &review); err != nil {
				return fmt.Errorf("review %d: %w", entry.ID, err)
			}
		}

		log.Printf("Imported reviews page %d/%d", page, resp.Meta.Pagination.PageCount)
		if page >= resp.Meta.Pagination.PageCount {
			return nil
		}
	}
}

func (im *importer) importReviewDetails(ctx context.Context) error {
	for page := 1; ; page++ {
		q := cms.NewQuery().Populate("review").Populate("attribute").Paginate(page, pageSize)
		resp, err := im.client.ListReviewDetails(ctx, q)
		if err != nil {
			return err
		}

		for _, entry := range resp.Data {
			reviewID := entry.Attributes.Review.RefID()
			attributeID := entry.Attributes.Attribute.RefID()
			if reviewID == 0 || attributeID == 0 {
				log.Printf("Skipping review detail %d: missing review or attribute relation", entry.ID)
				continue
			}

			detail := models.ReviewDetail{
				ID:          entry.ID,
				ReviewID:    reviewID,
				AttributeID: attributeID,
				Rating:      rating.ClampSlider(entry.Attributes.Rating),
			}
			if err := upsert(im.db, &detail); err != nil {
				return fmt.Errorf("review detail %d: %w", entry.ID, err)
			}
		}

		log.Printf("Imported review details page %d/%d", page, resp.Meta.Pagination.PageCount)
		if page >= resp.Meta.Pagination.PageCount {
			return nil
		}
	}
}

// ensureUser creates a placeholder account for a CMS identity so imported
// reviews satisfy the user foreign key. Placeholders cannot log in.
func (im *importer) ensureUser(userID uint) error {
	var count int64
	if err := im.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	user := models.User{
		ID:       userID,
		Email:    fmt.Sprintf("cms-user-%d@import.invalid", userID),
		Username: fmt.Sprintf("cms_user_%d", userID),
		Password: uuid.NewString(),
	}
	return im.db.Create(&user).Error
}

func upsert(db *gorm.DB, value interface{}) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(value).Error
}

func recomputeAllStats(db *gorm.DB) error {
	reviewRepo := repository.NewReviewRepository(db)
	dishRepo := repository.NewDishRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	stats := services.NewStatsService(reviewRepo, dishRepo, restaurantRepo, nil)

	var dishIDs []uint
	if err := db.Model(&models.Dish{}).Pluck("id", &dishIDs).Error; err != nil {
		return err
	}

	for _, dishID := range dishIDs {
		if err := stats.RecomputeForDish(dishID); err != nil {
			return fmt.Errorf("dish %d: %w", dishID, err)
		}
	}

	log.Printf("Recomputed stats for %d dishes", len(dishIDs))
	return nil
}
