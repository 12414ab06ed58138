package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Website is the public storefront for a restaurant, keyed by slug.
// Every restaurant gets exactly one.
type Website struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RestaurantID   uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant     Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	Theme          string     `gorm:"default:'default'" json:"theme"`
	PrimaryColor   string     `json:"primary_color"`
	SecondaryColor string     `json:"secondary_color"`
	Logo           string     `json:"logo"`
	Slug           string     `gorm:"uniqueIndex;size:140" json:"slug"`
	Subdomain      string     `json:"subdomain"`
	Domain         string     `json:"domain"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and strips a name down to URL-safe form.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 120 {
		s = s[:120]
	}
	if s == "" {
		s = "site"
	}
	return s
}

// UniqueSlug appends -2, -3, ... until the candidate is free.
func UniqueSlug(db *gorm.DB, base string) (string, error) {
	cand := Slugify(base)
	slug := cand
	for i := 2; ; i++ {
		var count int64
		if err := db.Model(&Website{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", cand, i)
	}
}

// EnsureWebsite returns the restaurant's storefront, creating it with a unique
// slug on first call.
func EnsureWebsite(db *gorm.DB, restaurant *Restaurant) (*Website, error) {
	var site Website
	err := db.Where("restaurant_id = ?", restaurant.ID).Order("id").First(&site).Error
	if err == nil {
		return &site, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	base := restaurant.Name
	if base == "" {
		base = fmt.Sprintf("site-%d", restaurant.ID)
	}
	slug, err := UniqueSlug(db, base)
	if err != nil {
		return nil, err
	}
	site = Website{
		RestaurantID: restaurant.ID,
		Theme:        "default",
		Slug:         slug,
	}
	if err := db.Create(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}
