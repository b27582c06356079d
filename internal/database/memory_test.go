package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banquetprep/internal/models"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(SampleData(testDay))

	recipes, err := store.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 4)
	assert.Equal(t, "Braised Short Rib", recipes[0].Name)
	assert.Equal(t, "Garlic Mashed Potatoes", recipes[3].Name)

	recipe, err := store.GetRecipe(ctx, "caesar-salad")
	require.NoError(t, err)
	assert.Equal(t, models.DivisionColdLine, recipe.Division)

	_, err = store.GetRecipe(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	events, err := store.EventsOn(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"evt-gala", "evt-lunch", "evt-late"},
		[]string{events[0].EventID, events[1].EventID, events[2].EventID})

	_, err = store.LoadDocument(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	packs, err := store.VendorPacks(ctx)
	require.NoError(t, err)
	assert.Len(t, packs, 10)
	assert.Equal(t, "Beef short rib", packs[0].Item)
}

func TestMemoryStorePutReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(Sample{})

	store.PutVendorPack(models.VendorPack{Item: "Garlic", Unit: "pc", PackSize: 50})
	store.PutVendorPack(models.VendorPack{Item: " garlic ", Unit: "pc", PackSize: 100})
	packs, err := store.VendorPacks(ctx)
	require.NoError(t, err)
	require.Len(t, packs, 1)
	assert.Equal(t, 100.0, packs[0].PackSize)

	store.PutRecipe(models.Recipe{Name: "Focaccia", BaseServings: 12})
	recipes, err := store.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.NotEmpty(t, recipes[0].RecipeID)
}
