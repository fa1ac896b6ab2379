// Package storemanager resolves the store a request is made for.
//
// Stores are defined in a YAML file:
//
//	stores:
//	  - id: 1
//	    code: default
//	    website_id: 1
//	    name: Default Store View
//	    base_media_url: https://shop.example/media/
//	    default: true
//	  - id: 2
//	    code: de
//	    website_id: 1
//	    base_media_url: https://shop.example/de/media/
//
// The HTTP layer puts the requested store code or id into the context with
// WithCurrent; Manager.CurrentStore reads it back and falls back to the
// default store.
package storemanager
