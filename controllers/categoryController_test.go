package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/Kariqs/maxtech-api/cache"
	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCatalog(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := initializers.Catalog
	initializers.Catalog = cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	t.Cleanup(func() {
		initializers.Catalog.Close()
		initializers.Catalog = prev
	})
}

func productCategoryNames(t *testing.T, env *testEnv, path string) []string {
	t.Helper()
	w := env.do(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Data []models.Product `json:"data"`
	}
	if path == "/products" {
		require.NoError(t, jsonUnmarshal(w.Body.Bytes(), &out))
	} else {
		var one struct {
			Data models.Product `json:"data"`
		}
		require.NoError(t, jsonUnmarshal(w.Body.Bytes(), &one))
		out.Data = []models.Product{one.Data}
	}
	require.Len(t, out.Data, 1)

	var names []string
	for _, c := range out.Data[0].Categories {
		names = append(names, c.Name)
	}
	return names
}

func TestCategoryWritesRefreshCachedProducts(t *testing.T) {
	env := newEnv(t)
	withCatalog(t)
	_, rootToken := env.user("Root", models.RoleSuperAdmin)
	product, _, _ := seedCatalog(t, env.db)
	category := product.Categories[0]
	detail := "/products/" + itoa(product.ID)

	assert.Equal(t, []string{"Laptops"}, productCategoryNames(t, env, "/products"))
	assert.Equal(t, []string{"Laptops"}, productCategoryNames(t, env, detail))

	w := env.do(http.MethodPut, "/categories/"+itoa(category.ID), map[string]any{"name": "Notebooks"}, rootToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, []string{"Notebooks"}, productCategoryNames(t, env, "/products"))
	assert.Equal(t, []string{"Notebooks"}, productCategoryNames(t, env, detail))

	w = env.do(http.MethodDelete, "/categories/"+itoa(category.ID), nil, rootToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Empty(t, productCategoryNames(t, env, "/products"))
	assert.Empty(t, productCategoryNames(t, env, detail))
}
