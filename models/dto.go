package models

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// PlaceholderImage is served when an entity has no stored image.
const PlaceholderImage = "https://via.placeholder.com/100?text=No+Image"

// ImageDataURI renders stored image bytes as an inline data URI for
// clients and emails.
func ImageDataURI(data []byte, contentType string) string {
	if len(data) == 0 || contentType == "" {
		return PlaceholderImage
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

// FoodResponse is the presentation shape of a Food. The persisted entity
// keeps raw image bytes; responses carry a data URI and split tags.
type FoodResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Price             float64   `json:"price"`
	Image             string    `json:"image"`
	QuantityAvailable int       `json:"quantity_available"`
	BespokeOption     string    `json:"bespoke_option"`
	Tags              []string  `json:"tags"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewFoodResponse(f Food) FoodResponse {
	return FoodResponse{
		ID:                f.ID,
		Name:              f.Name,
		Price:             f.Price,
		Image:             ImageDataURI(f.Image, f.ImageContentType),
		QuantityAvailable: f.QuantityAvailable,
		BespokeOption:     f.BespokeOption,
		Tags:              SplitTags(f.Tags),
		CreatedAt:         f.CreatedAt,
	}
}

// ChefResponse is the presentation shape of a Chef.
type ChefResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Specialty string  `json:"specialty"`
	Rating    float64 `json:"rating"`
	Image     string  `json:"image"`
	Alloted   int     `json:"alloted"`
}

func NewChefResponse(ch Chef) ChefResponse {
	return ChefResponse{
		ID:        ch.ID,
		Name:      ch.Name,
		Email:     ch.Email,
		Specialty: ch.Specialty,
		Rating:    ch.Rating,
		Image:     ImageDataURI(ch.Image, ch.ImageContentType),
		Alloted:   ch.Alloted,
	}
}

// SplitTags turns the stored comma-joined tag string into a list.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags is the inverse of SplitTags for request handling.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}
