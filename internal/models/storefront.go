package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Storefront struct {
	bun.BaseModel `bun:"table:storefronts"`

	ID           string    `bun:"id,pk" json:"id"`
	MerchantSlug string    `bun:"merchant_slug,unique,notnull" json:"merchantSlug"`
	BusinessName string    `bun:"business_name,notnull" json:"businessName"`
	BannerImage  string    `bun:"banner_image" json:"bannerImage"`
	LogoImage    string    `bun:"logo_image" json:"logoImage"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// StorefrontResponse is the payload for the public storefront lookup:
// the storefront card plus every drop published under it.
type StorefrontResponse struct {
	Storefront Storefront `json:"storefront"`
	Events     []Event    `json:"events"`
}
