package portfolio

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"portfolio/internal/config"
	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/service/media"
)

// fields groups loose values so ozzo can validate them as a struct
type sectionFields struct {
	Title      string
	Icon       string
	Color      string
	OrderIndex *int
}

type subItemFields struct {
	Title      string
	Type       string
	OrderIndex *int
	MediaItems []models.MediaItem
}

func validateSectionFields(title, icon, color string, order *int) error {
	f := sectionFields{Title: title, Icon: icon, Color: color, OrderIndex: order}
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&f.Icon, validation.Length(0, config.MaxIconLength)),
		validation.Field(&f.Color, validation.Length(0, config.MaxColorLength)),
		validation.Field(&f.OrderIndex, validation.Min(0)),
	)
}

func validateSubItemFields(title, itemType string, order *int, media []models.MediaItem) error {
	f := subItemFields{Title: title, Type: itemType, OrderIndex: order, MediaItems: media}
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&f.Type, validation.In(models.SubItemTypeGallery, models.SubItemTypeYouTube)),
		validation.Field(&f.OrderIndex, validation.Min(0)),
		validation.Field(&f.MediaItems, validation.Each(validation.By(validateMediaItem))),
	)
}

// notBlank rejects whitespace-only strings, which Required lets through
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

func validateMediaItem(value interface{}) error {
	item, ok := value.(models.MediaItem)
	if !ok {
		return errors.New("must be a media item")
	}
	if !models.IsValidMediaType(item.Type) {
		return errors.New("type must be image or youtube")
	}
	if strings.TrimSpace(item.URL) == "" {
		return errors.New("url is required")
	}
	if item.Type == models.MediaTypeYouTube {
		if _, err := media.ExtractVideoID(item.URL); err != nil {
			return errors.New("youtube items need a valid video id or link")
		}
	}
	return nil
}
