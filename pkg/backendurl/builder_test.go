package backendurl_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/productattach/pkg/backendurl"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := backendurl.New("not a url")
	assert.ErrorIs(t, err, backendurl.ErrInvalidConfig)

	_, err = backendurl.New("/relative")
	assert.ErrorIs(t, err, backendurl.ErrInvalidConfig)

	b, err := backendurl.New("https://shop.test/")
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestBuilder_URL(t *testing.T) {
	t.Parallel()
	b, err := backendurl.New("https://shop.test/")
	require.NoError(t, err)

	current := backendurl.WithCurrentParams(context.Background(), map[string]string{"id": "7", "store": "1"})

	tests := []struct {
		name   string
		ctx    context.Context
		route  string
		params map[string]any
		want   string
	}{
		{
			name:  "plain route",
			ctx:   context.Background(),
			route: "productattach/index/products",
			want:  "https://shop.test/admin/productattach/index/products/",
		},
		{
			name:   "current params",
			ctx:    current,
			route:  "productattach/index/products",
			params: map[string]any{"_current": true},
			want:   "https://shop.test/admin/productattach/index/products/id/7/store/1/",
		},
		{
			name:   "current without flag is ignored",
			ctx:    current,
			route:  "productattach/index/products",
			params: map[string]any{"_current": false},
			want:   "https://shop.test/admin/productattach/index/products/",
		},
		{
			name:   "explicit params override and remove",
			ctx:    current,
			route:  "productattach/index/products",
			params: map[string]any{"_current": true, "id": 9, "store": nil},
			want:   "https://shop.test/admin/productattach/index/products/id/9/",
		},
		{
			name:  "missing route parts",
			ctx:   context.Background(),
			route: "productattach",
			want:  "https://shop.test/admin/productattach/index/index/",
		},
		{
			name:   "query and fragment",
			ctx:    context.Background(),
			route:  "productattach/index/edit",
			params: map[string]any{"_query": map[string]string{"q": "a b"}, "_fragment": "files", "id": "3"},
			want:   "https://shop.test/admin/productattach/index/edit/id/3/?q=a+b#files",
		},
		{
			name:   "escapes segments",
			ctx:    context.Background(),
			route:  "productattach/index/edit",
			params: map[string]any{"name": "a/b c"},
			want:   "https://shop.test/admin/productattach/index/edit/name/a%2Fb%20c/",
		},
		{
			name:   "url values query",
			ctx:    context.Background(),
			route:  "productattach/index/index",
			params: map[string]any{"_query": url.Values{"page": {"2"}}},
			want:   "https://shop.test/admin/productattach/index/index/?page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := b.URL(tt.ctx, tt.route, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilder_Routes(t *testing.T) {
	t.Parallel()

	b, err := backendurl.New("https://shop.test", backendurl.WithFrontName("/backend/"), backendurl.WithRoutes("productattach/index/products"))
	require.NoError(t, err)

	got, err := b.URL(context.Background(), "/productattach/index/products/", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/backend/productattach/index/products/", got)

	_, err = b.URL(context.Background(), "catalog/product/edit", nil)
	assert.ErrorIs(t, err, backendurl.ErrUnknownRoute)

	_, err = b.URL(context.Background(), "", nil)
	assert.ErrorIs(t, err, backendurl.ErrUnknownRoute)
}

func TestCurrentParams(t *testing.T) {
	t.Parallel()

	params := map[string]string{"id": "1"}
	ctx := backendurl.WithCurrentParams(context.Background(), params)
	params["id"] = "2"

	assert.Equal(t, map[string]string{"id": "1"}, backendurl.CurrentParams(ctx))
	assert.Nil(t, backendurl.CurrentParams(context.Background()))
}
