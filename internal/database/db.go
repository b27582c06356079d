// Package database persists the catalogs the planner reads: recipes,
// events, banquet event orders and vendor packs.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"banquetprep/internal/models"
)

// Store is the GORM-backed catalog.
type Store struct {
	db *gorm.DB
}

// Open connects to the database. driver is "sqlite3" or "postgres".
func Open(driver, dsn string) (*Store, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == "sqlite3" && strings.Contains(dsn, ":memory:") {
		// Each connection to :memory: is a separate database.
		db.DB().SetMaxOpenConns(1)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates or updates every catalog table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.Recipe{},
		&models.Event{},
		&models.BanquetOrder{},
		&models.VendorPack{},
	).Error
}

// Seed loads the sample catalog into an empty database.
func (s *Store) Seed(ctx context.Context, data Sample) error {
	var count int64
	if err := s.db.Model(&models.Recipe{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return s.transaction(func(tx *Store) error {
		for i := range data.Recipes {
			if err := tx.SaveRecipe(ctx, &data.Recipes[i]); err != nil {
				return err
			}
		}
		for i := range data.Events {
			if err := tx.SaveEvent(ctx, &data.Events[i]); err != nil {
				return err
			}
		}
		for i := range data.Documents {
			if err := tx.SaveDocument(ctx, &data.Documents[i]); err != nil {
				return err
			}
		}
		for i := range data.Packs {
			if err := tx.SaveVendorPack(ctx, &data.Packs[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) transaction(fn func(tx *Store) error) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := fn(&Store{db: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// GetRecipe returns a recipe by its external ID.
func (s *Store) GetRecipe(ctx context.Context, recipeID string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.Where("recipe_id = ?", recipeID).First(&recipe).Error; err != nil {
		return nil, notFound(err, "recipe", recipeID)
	}
	if _, err := recipe.GetIngredients(); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns every recipe ordered by name.
func (s *Store) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.Order("name").Find(&recipes).Error; err != nil {
		return nil, err
	}
	for i := range recipes {
		if _, err := recipes[i].GetIngredients(); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

// SaveRecipe inserts or updates a recipe, assigning an ID when missing.
func (s *Store) SaveRecipe(ctx context.Context, recipe *models.Recipe) error {
	if recipe.RecipeID == "" {
		recipe.RecipeID = uuid.NewString()
	}
	if err := models.ValidateRecipe(recipe); err != nil {
		return err
	}
	return s.db.Save(recipe).Error
}

// EventsOn returns the events booked on day in booking order.
func (s *Store) EventsOn(ctx context.Context, day time.Time) ([]models.Event, error) {
	var events []models.Event
	err := s.db.Where("date = ?", day.Format(models.DateLayout)).Order("id").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// SaveEvent inserts or updates an event.
func (s *Store) SaveEvent(ctx context.Context, event *models.Event) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	return s.db.Save(event).Error
}

// LoadDocument returns the banquet event order with the given document ID.
func (s *Store) LoadDocument(ctx context.Context, documentID string) (*models.BanquetOrder, error) {
	var doc models.BanquetOrder
	if err := s.db.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		return nil, notFound(err, "document", documentID)
	}
	if _, err := doc.GetMenu(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveDocument inserts or updates a banquet event order.
func (s *Store) SaveDocument(ctx context.Context, doc *models.BanquetOrder) error {
	if doc.DocumentID == "" {
		doc.DocumentID = uuid.NewString()
	}
	return s.db.Save(doc).Error
}

// VendorPacks returns the full vendor pack catalog.
func (s *Store) VendorPacks(ctx context.Context) ([]models.VendorPack, error) {
	var packs []models.VendorPack
	if err := s.db.Order("item").Find(&packs).Error; err != nil {
		return nil, err
	}
	return packs, nil
}

// SaveVendorPack inserts or updates a vendor pack.
func (s *Store) SaveVendorPack(ctx context.Context, pack *models.VendorPack) error {
	return s.db.Save(pack).Error
}

func notFound(err error, kind, id string) error {
	if gorm.IsRecordNotFoundError(err) {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	return err
}
