package database

import (
	"time"

	"github.com/shopspring/decimal"

	"banquetprep/internal/models"
)

// Sample is a catalog snapshot used to seed an empty store.
type Sample struct {
	Recipes   []models.Recipe
	Events    []models.Event
	Documents []models.BanquetOrder
	Packs     []models.VendorPack
}

func usd(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SampleData returns a small banquet catalog with events on day.
func SampleData(day time.Time) Sample {
	date := day.Format(models.DateLayout)

	return Sample{
		Recipes: []models.Recipe{
			{
				RecipeID:     "braised-short-rib",
				Name:         "Braised Short Rib",
				Description:  "Red wine braised short rib with root vegetables",
				Division:     models.DivisionHotLine,
				BaseServings: 10,
				MinScale:     0.5,
				MaxScale:     8,
				PrepTime:     30,
				CookTime:     180,
				BaseCost:     usd("84.50"),
				Tags:         models.StringSlice{"beef", "entree"},
				Ingredients: []models.Ingredient{
					{ID: "sr-1", Name: "Beef short rib", Amount: 4.5, Unit: "kg", UnitCost: usd("16.00"), ScalingBehavior: models.ScalingLinear, Vendor: "Prime Meats"},
					{ID: "sr-2", Name: "Carrot", Amount: 0.8, Unit: "kg", UnitCost: usd("1.80"), ScalingBehavior: models.ScalingLinear, Vendor: "Valley Produce", Technique: "dice"},
					{ID: "sr-3", Name: "Yellow onion", Amount: 1, Unit: "kg", UnitCost: usd("1.50"), ScalingBehavior: models.ScalingLinear, Vendor: "Valley Produce", Technique: "chop"},
					{ID: "sr-4", Name: "Red wine", Amount: 1.5, Unit: "l", UnitCost: usd("9.00"), ScalingBehavior: models.ScalingLinear},
					{ID: "sr-5", Name: "Thyme", Amount: 1, Unit: "bunch", UnitCost: usd("2.00"), ScalingBehavior: models.ScalingLogarithmic, Vendor: "Valley Produce"},
					{ID: "sr-6", Name: "Bay leaf", Amount: 4, Unit: "pc", UnitCost: usd("0.10"), ScalingBehavior: models.ScalingThreshold},
				},
			},
			{
				RecipeID:     "caesar-salad",
				Name:         "Caesar Salad",
				Description:  "Romaine, parmesan, garlic croutons",
				Division:     models.DivisionColdLine,
				BaseServings: 12,
				MinScale:     0.5,
				MaxScale:     10,
				PrepTime:     25,
				BaseCost:     usd("22.40"),
				Tags:         models.StringSlice{"salad", "vegetarian"},
				Ingredients: []models.Ingredient{
					{ID: "cs-1", Name: "Romaine", Amount: 3, Unit: "pc", UnitCost: usd("2.10"), ScalingBehavior: models.ScalingLinear, Vendor: "Valley Produce", Technique: "chop"},
					{ID: "cs-2", Name: "Parmesan", Amount: 0.3, Unit: "kg", UnitCost: usd("24.00"), ScalingBehavior: models.ScalingLinear, Vendor: "Dairy Co", Technique: "grate"},
					{ID: "cs-3", Name: "Garlic", Amount: 6, Unit: "pc", UnitCost: usd("0.25"), ScalingBehavior: models.ScalingLogarithmic, Vendor: "Valley Produce", Technique: "peel"},
					{ID: "cs-4", Name: "Caesar dressing base", Amount: 1, Unit: "l", UnitCost: usd("6.00"), ScalingBehavior: models.ScalingLinear, Technique: "mix"},
				},
			},
			{
				RecipeID:     "chocolate-tart",
				Name:         "Chocolate Tart",
				Description:  "Dark chocolate ganache tart",
				Division:     models.DivisionPastry,
				BaseServings: 8,
				MinScale:     1,
				MaxScale:     6,
				PrepTime:     40,
				CookTime:     25,
				BaseCost:     usd("18.00"),
				Tags:         models.StringSlice{"dessert"},
				Ingredients: []models.Ingredient{
					{ID: "ct-1", Name: "Dark chocolate", Amount: 0.4, Unit: "kg", UnitCost: usd("18.00"), ScalingBehavior: models.ScalingLinear, Vendor: "Dairy Co"},
					{ID: "ct-2", Name: "Heavy cream", Amount: 0.5, Unit: "l", UnitCost: usd("5.00"), ScalingBehavior: models.ScalingLinear, Vendor: "Dairy Co"},
					{ID: "ct-3", Name: "Tart mold", Amount: 1, Unit: "pc", UnitCost: usd("0"), ScalingBehavior: models.ScalingFixed},
				},
			},
			{
				RecipeID:     "garlic-mash",
				Name:         "Garlic Mashed Potatoes",
				Division:     models.DivisionHotLine,
				BaseServings: 10,
				MinScale:     0.5,
				MaxScale:     12,
				PrepTime:     20,
				CookTime:     35,
				BaseCost:     usd("9.75"),
				Tags:         models.StringSlice{"side", "vegetarian"},
				Ingredients: []models.Ingredient{
					{ID: "gm-1", Name: "Russet potato", Amount: 2.5, Unit: "kg", UnitCost: usd("1.20"), ScalingBehavior: models.ScalingLinear, Vendor: "Valley Produce", Technique: "peel"},
					{ID: "gm-2", Name: "Garlic", Amount: 8, Unit: "pc", UnitCost: usd("0.25"), ScalingBehavior: models.ScalingLogarithmic, Vendor: "Valley Produce", Technique: "puree"},
					{ID: "gm-3", Name: "Heavy cream", Amount: 0.4, Unit: "l", UnitCost: usd("5.00"), ScalingBehavior: models.ScalingLinear, Vendor: "Dairy Co"},
				},
			},
		},
		Events: []models.Event{
			{
				EventID:    "evt-gala",
				Name:       "Harbor Foundation Gala",
				Date:       date,
				GuestCount: 120,
				TimeRange:  "6:00 pm - 11:00 pm",
				Timeline: models.StringSlice{
					"6:00 pm Guest arrival and cocktails",
					"7:00 pm - Salad course",
					"7:45 pm Entree service",
					"9:00 pm Dessert",
				},
				DocumentID: "beo-gala",
			},
			{
				EventID:    "evt-lunch",
				Name:       "Board Luncheon",
				Date:       date,
				GuestCount: 24,
				TimeRange:  "11:30 am - 1:30 pm",
				Timeline:   models.StringSlice{"11:30 am Seating", "12:00 pm Lunch service"},
				DocumentID: "beo-lunch",
			},
			{
				EventID:    "evt-late",
				Name:       "After Party",
				Date:       date,
				GuestCount: 60,
				TimeRange:  "10:00 pm - 1:00 am",
				Timeline:   models.StringSlice{"11:30 pm Late snack"},
			},
		},
		Documents: []models.BanquetOrder{
			{
				DocumentID:       "beo-gala",
				EventID:          "evt-gala",
				BufferPercentage: 10,
				Menu: []models.MenuSelection{
					{RecipeID: "caesar-salad"},
					{RecipeID: "braised-short-rib"},
					{RecipeID: "garlic-mash"},
					{RecipeID: "chocolate-tart"},
				},
				Notes: models.StringSlice{"8:30 pm Speeches, hold dessert", "10:30 pm Coffee station closes"},
			},
			{
				DocumentID: "beo-lunch",
				EventID:    "evt-lunch",
				Menu: []models.MenuSelection{
					{RecipeID: "caesar-salad"},
					{RecipeID: "chocolate-tart", Servings: 12},
				},
			},
		},
		Packs: []models.VendorPack{
			{Item: "Beef short rib", Unit: "kg", PackSize: 5, Vendor: "Prime Meats", PackCost: usd("78.00")},
			{Item: "Carrot", Unit: "kg", PackSize: 10, Vendor: "Valley Produce", PackCost: usd("16.00")},
			{Item: "Yellow onion", Unit: "kg", PackSize: 10, Vendor: "Valley Produce", PackCost: usd("13.50")},
			{Item: "Thyme", Unit: "bunch", PackSize: 6, Vendor: "Valley Produce", PackCost: usd("10.00")},
			{Item: "Romaine", Unit: "pc", PackSize: 24, Vendor: "Valley Produce", PackCost: usd("42.00")},
			{Item: "Parmesan", Unit: "kg", PackSize: 2, Vendor: "Dairy Co", PackCost: usd("44.00")},
			{Item: "Garlic", Unit: "pc", PackSize: 50, Vendor: "Valley Produce", PackCost: usd("10.00")},
			{Item: "Dark chocolate", Unit: "kg", PackSize: 2.5, Vendor: "Dairy Co", PackCost: usd("40.00")},
			{Item: "Heavy cream", Unit: "l", PackSize: 4, Vendor: "Dairy Co", PackCost: usd("17.00")},
			{Item: "Russet potato", Unit: "kg", PackSize: 20, Vendor: "Valley Produce", PackCost: usd("21.00")},
		},
	}
}
