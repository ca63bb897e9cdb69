package render

import (
	"fmt"
	"strings"

	"tavernasite/internal/carousel"
	"tavernasite/internal/core"
	"tavernasite/internal/dom"
	"tavernasite/internal/escape"
)

// Container ids of the procedurally built sections.
const (
	IDMenuContainer = "menu-container"
	IDPhotosWrap    = "photos-carousel-wrap"
	IDEventsWrap    = "events-carousel-wrap"

	PhotosCarouselID = "photosCarousel"
	EventsCarouselID = "eventsCarousel"
)

// MenuStyle selects how menu items are presented.
type MenuStyle string

const (
	// MenuCarousel renders one carousel per category, one slide per item.
	MenuCarousel MenuStyle = "carousel"
	// MenuCards renders one responsive card per item.
	MenuCards MenuStyle = "cards"
)

func ParseMenuStyle(s string) (MenuStyle, error) {
	switch MenuStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", MenuCarousel:
		return MenuCarousel, nil
	case MenuCards:
		return MenuCards, nil
	default:
		return "", fmt.Errorf("unknown menu style %q", s)
	}
}

// MenuCarouselID is the carousel id for the category at index i.
func MenuCarouselID(i int) string {
	return fmt.Sprintf("menuCarousel-%d", i)
}

// MenuHTML builds the menu section markup: a heading per category followed
// by its items. Categories without items get the heading only.
func MenuHTML(d *core.Dictionary, style MenuStyle) string {
	if d == nil {
		return ""
	}
	var b strings.Builder
	for i, cat := range d.Menu.Categories {
		b.WriteString(`<div>`)
		fmt.Fprintf(&b,
			`<div class="d-flex align-items-end justify-content-between flex-wrap gap-2"><h3 class="fw-bold mb-0">%s</h3></div>`,
			escape.HTML(cat.Name))
		if len(cat.Items) > 0 {
			b.WriteString(`<div class="mt-2">`)
			if style == MenuCards {
				b.WriteString(menuCards(cat.Items))
			} else {
				b.WriteString(carousel.Build(MenuCarouselID(i), menuSlides(cat.Items)))
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}

func menuSlides(items []core.MenuItem) []core.Slide {
	slides := make([]core.Slide, 0, len(items))
	for _, it := range items {
		slides = append(slides, core.Slide{Src: it.Image, Alt: it.Name, Caption: it.Name})
	}
	return slides
}

func menuCards(items []core.MenuItem) string {
	var b strings.Builder
	b.WriteString(`<div class="row g-3">`)
	for _, it := range items {
		b.WriteString(`<div class="col-12 col-sm-6 col-lg-4"><div class="card h-100 menu-card">`)
		fmt.Fprintf(&b, `<img src="%s" alt="%s" class="card-img-top" loading="lazy">`,
			escape.Attr(it.Image), escape.Attr(it.Name))
		b.WriteString(`<div class="card-body">`)
		fmt.Fprintf(&b, `<h5 class="card-title mb-1">%s</h5>`, escape.HTML(it.Name))
		fmt.Fprintf(&b, `<p class="card-text fw-semibold mb-1">%s</p>`, escape.HTML(it.Price))
		if it.Description != "" {
			fmt.Fprintf(&b, `<p class="card-text text-muted small">%s</p>`, escape.HTML(it.Description))
		}
		b.WriteString(`</div></div></div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// SlidesHTML normalizes items and builds a carousel with id, or returns ""
// when there is nothing to show.
func SlidesHTML(id string, items []core.Slide) string {
	slides := carousel.Normalize(items)
	if len(slides) == 0 {
		return ""
	}
	return carousel.Build(id, slides)
}

func PhotosHTML(d *core.Dictionary) string {
	if d == nil {
		return ""
	}
	return SlidesHTML(PhotosCarouselID, d.Photos.Items)
}

func EventsHTML(d *core.Dictionary) string {
	if d == nil {
		return ""
	}
	return SlidesHTML(EventsCarouselID, d.Events.Items)
}

// RenderMenu clears the menu container and rebuilds it.
func RenderMenu(doc *dom.Document, d *core.Dictionary, style MenuStyle) error {
	return fill(doc, IDMenuContainer, MenuHTML(d, style))
}

// RenderPhotos rebuilds the photos carousel, or clears the wrap when there
// are no photos.
func RenderPhotos(doc *dom.Document, d *core.Dictionary) error {
	return fill(doc, IDPhotosWrap, PhotosHTML(d))
}

// RenderEvents rebuilds the events carousel, or clears the wrap when there
// are no events.
func RenderEvents(doc *dom.Document, d *core.Dictionary) error {
	return fill(doc, IDEventsWrap, EventsHTML(d))
}

func fill(doc *dom.Document, id, markup string) error {
	el := doc.ElementByID(id)
	if el == nil {
		return nil
	}
	if markup == "" {
		dom.Clear(el)
		return nil
	}
	if err := dom.SetInnerHTML(el, markup); err != nil {
		return fmt.Errorf("render #%s: %w", id, err)
	}
	return nil
}
