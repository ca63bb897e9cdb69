package core

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// LanguageKey is the durable storage key holding the selected language.
const LanguageKey = "site_lang"

// DefaultLanguage is used when no preference is stored or loading fails.
const DefaultLanguage = "el"

// SupportedLanguages lists the language codes the site ships content for.
// The first entry is the fallback.
var SupportedLanguages = []language.Tag{
	language.Greek,
	language.English,
}

// ParseLanguage normalizes a language code ("EN", "en-GB", "el") to one of
// the supported two-letter codes. It reports false for anything else.
func ParseLanguage(code string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, supported := range SupportedLanguages {
		b, _ := supported.Base()
		if b == base {
			return b.String(), true
		}
	}
	return "", false
}

// Dictionary is the full localized content document for one language.
// Absent fields decode to zero values, which render as empty text.
type Dictionary struct {
	Brand   string         `json:"brand"`
	Nav     Navigation     `json:"nav"`
	Hero    Hero           `json:"hero"`
	Menu    MenuSection    `json:"menu"`
	Photos  PhotosSection  `json:"photos"`
	Events  EventsSection  `json:"events"`
	Contact ContactSection `json:"contact"`
	Footer  FooterSection  `json:"footer"`
}

type Navigation struct {
	Home    string `json:"home"`
	Menu    string `json:"menu"`
	Photos  string `json:"photos"`
	Events  string `json:"events"`
	Contact string `json:"contact"`
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type MenuSection struct {
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle"`
	Categories []MenuCategory `json:"categories"`
}

// MenuCategory groups menu items; Items order is display order.
type MenuCategory struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

type MenuItem struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
}

type PhotosSection struct {
	Title string  `json:"title"`
	Items []Slide `json:"items"`
}

type EventsSection struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Items    []Slide `json:"items"`
}

type ContactSection struct {
	Title        string `json:"title"`
	BoxTitle     string `json:"boxTitle"`
	PhoneLabel   string `json:"phoneLabel"`
	PhoneValue   string `json:"phoneValue"`
	AddressLabel string `json:"addressLabel"`
	AddressValue string `json:"addressValue"`
	HoursLabel   string `json:"hoursLabel"`
	HoursValue   string `json:"hoursValue"`
	CallBtn      string `json:"callBtn"`
	MapsBtn      string `json:"mapsBtn"`
	MapsURL      string `json:"mapsUrl"`
}

type FooterSection struct {
	// Rights may contain the {year} placeholder.
	Rights string `json:"rights"`
}

// Slide is one image-plus-optional-caption unit within a carousel.
type Slide struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// DictionarySource fetches the content document for a language.
// Implementations must not serve a cached copy.
type DictionarySource interface {
	Fetch(ctx context.Context, lang string) (*Dictionary, error)
}

// Storage is a durable key-value slot store surviving restarts.
type Storage interface {
	// GetItem reports false when the key has never been set.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}
