package render

import (
	"strconv"
	"strings"
	"time"

	"tavernasite/internal/core"
	"tavernasite/internal/dom"
)

// YearPlaceholder in the footer rights notice is replaced by the current year.
const YearPlaceholder = "{year}"

// Element ids of the text slots the host page provides.
const (
	IDMapsButton   = "contact-maps-btn"
	IDFooterRights = "footer-rights"
)

type textSlot struct {
	id    string
	value func(*core.Dictionary) string
}

var textSlots = []textSlot{
	{"brand", func(d *core.Dictionary) string { return d.Brand }},

	{"nav-home", func(d *core.Dictionary) string { return d.Nav.Home }},
	{"nav-menu", func(d *core.Dictionary) string { return d.Nav.Menu }},
	{"nav-photos", func(d *core.Dictionary) string { return d.Nav.Photos }},
	{"nav-events", func(d *core.Dictionary) string { return d.Nav.Events }},
	{"nav-contact", func(d *core.Dictionary) string { return d.Nav.Contact }},

	{"hero-title", func(d *core.Dictionary) string { return d.Hero.Title }},
	{"hero-subtitle", func(d *core.Dictionary) string { return d.Hero.Subtitle }},

	{"menu-title", func(d *core.Dictionary) string { return d.Menu.Title }},
	{"menu-subtitle", func(d *core.Dictionary) string { return d.Menu.Subtitle }},

	{"photos-title", func(d *core.Dictionary) string { return d.Photos.Title }},

	{"events-title", func(d *core.Dictionary) string { return d.Events.Title }},
	{"events-subtitle", func(d *core.Dictionary) string { return d.Events.Subtitle }},

	{"contact-title", func(d *core.Dictionary) string { return d.Contact.Title }},
	{"contact-box-title", func(d *core.Dictionary) string { return d.Contact.BoxTitle }},
	{"contact-phone-label", func(d *core.Dictionary) string { return d.Contact.PhoneLabel }},
	{"contact-phone-value", func(d *core.Dictionary) string { return d.Contact.PhoneValue }},
	{"contact-address-label", func(d *core.Dictionary) string { return d.Contact.AddressLabel }},
	{"contact-address-value", func(d *core.Dictionary) string { return d.Contact.AddressValue }},
	{"contact-hours-label", func(d *core.Dictionary) string { return d.Contact.HoursLabel }},
	{"contact-hours-value", func(d *core.Dictionary) string { return d.Contact.HoursValue }},
	{"contact-call-btn", func(d *core.Dictionary) string { return d.Contact.CallBtn }},
}

// TextSlotIDs returns the ids of the plain text slots, in application order.
func TextSlotIDs() []string {
	ids := make([]string, 0, len(textSlots))
	for _, s := range textSlots {
		ids = append(ids, s.id)
	}
	return ids
}

// FooterRights substitutes the first {year} in template with now's year.
func FooterRights(template string, now time.Time) string {
	return strings.Replace(template, YearPlaceholder, strconv.Itoa(now.Year()), 1)
}

// ApplyTranslations copies the scalar dictionary fields into their slots as
// plain text. Absent fields clear the slot; absent elements are skipped.
// A nil dictionary clears every slot.
func ApplyTranslations(doc *dom.Document, d *core.Dictionary, now time.Time) {
	if d == nil {
		d = &core.Dictionary{}
	}
	for _, s := range textSlots {
		doc.SetText(s.id, s.value(d))
	}

	if maps := doc.ElementByID(IDMapsButton); maps != nil {
		dom.SetText(maps, d.Contact.MapsBtn)
		dom.SetAttr(maps, "href", d.Contact.MapsURL)
	}

	doc.SetText(IDFooterRights, FooterRights(d.Footer.Rights, now))
}
