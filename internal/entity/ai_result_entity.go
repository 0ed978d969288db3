package entity

import (
	"time"

	"github.com/google/uuid"
)

// PriceRange bounds a place's price, either end may be unknown.
type PriceRange struct {
	StartPrice *string `json:"startPrice"`
	EndPrice   *string `json:"endPrice"`
}

// Location is a geo-coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is one AI-suggested point of interest. Attribute fields use the
// upstream tri-state strings "TRUE" / "FALSE" / "NOT_AVAILABLE".
type Place struct {
	Id                       string      `json:"id"`
	DisplayName              string      `json:"displayName"`
	Location                 Location    `json:"location"`
	Rating                   float64     `json:"rating"`
	UserRatingCount          int         `json:"userRatingCount"`
	Types                    []string    `json:"types"`
	CurrentOpeningHours      []string    `json:"currentOpeningHours"`
	GoodForChildren          *string     `json:"goodForChildren"`
	GoodForGroups            *string     `json:"goodForGroups"`
	LiveMusic                *string     `json:"liveMusic"`
	AllowedDogs              *string     `json:"allowedDogs"`
	OutdoorSeating           *string     `json:"outdoorSeating"`
	ParkingOptions           *string     `json:"parkingOptions"`
	DineIn                   *string     `json:"dineIn"`
	Delivery                 *string     `json:"delivery"`
	Reservable               *string     `json:"reservable"`
	PriceLevel               *string     `json:"priceLevel"`
	PriceRange               *PriceRange `json:"priceRange"`
	FormattedAddress         string      `json:"formattedAddress"`
	GoogleMapsUri            string      `json:"googleMapsUri"`
	WebsiteUri               *string     `json:"websiteUri"`
	Photos                   []string    `json:"photos"`
	InternationalPhoneNumber *string     `json:"internationalPhoneNumber"`
	BusinessStatus           *string     `json:"businessStatus"`
}

// UserPreference scores one suggested place.
type UserPreference struct {
	PlaceId string  `json:"place_id"`
	Score   float64 `json:"score"`
}

// AIResult is the single latest AI-derived recommendation snapshot for a
// session. At most one per session, maintained by upsert-by-lookup.
type AIResult struct {
	Id              uuid.UUID
	SessionId       uuid.UUID
	Places          []Place
	UserPreferences []UserPreference
	Justification   string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
