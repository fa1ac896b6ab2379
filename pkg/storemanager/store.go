package storemanager

// Store is a storefront the attachments are served for.
type Store struct {
	ID           int    `yaml:"id" json:"id"`
	Code         string `yaml:"code" json:"code"`
	WebsiteID    int    `yaml:"website_id" json:"website_id"`
	Name         string `yaml:"name" json:"name"`
	BaseMediaURL string `yaml:"base_media_url" json:"base_media_url"` // always ends with "/"
	Default      bool   `yaml:"default" json:"default"`
}

type storesFile struct {
	Stores []Store `yaml:"stores"`
}
