// Package backendurl builds admin panel URLs for named routes.
//
//	b, _ := backendurl.New("https://shop.example", backendurl.WithFrontName("admin"))
//	u, _ := b.URL(ctx, "productattach/index/products", map[string]any{"_current": true})
//	// https://shop.example/admin/productattach/index/products/id/7/store/1/
//
// With "_current" the parameters stored in ctx by WithCurrentParams are
// carried over. A nil parameter value removes an inherited parameter.
package backendurl
