// Package chrome implements the page helpers that do not depend on the
// dictionary: back-to-top visibility, mobile navigation auto-close and the
// active language buttons.
package chrome

import (
	"context"

	"golang.org/x/net/html"

	"tavernasite/internal/dom"
)

const (
	IDBackToTop = "backToTop"
	IDNavMenu   = "navMenu"

	ClassToggler = "navbar-toggler"
	ClassNavLink = "nav-link"
	ClassShow    = "show"

	ClassLangSelected   = "btn-secondary"
	ClassLangUnselected = "btn-outline-secondary"

	// BackToTopThreshold is the scroll offset past which the control shows.
	BackToTopThreshold = 300
)

// Viewport is the window the document is displayed in.
type Viewport interface {
	ScrollY() int
	ScrollTo(top int, smooth bool)
	// Displayed reports whether n is rendered (computed display != none).
	Displayed(n *html.Node) bool
}

// Collapser hides an expanded collapsible element.
type Collapser interface {
	Hide(n *html.Node)
}

// ClassCollapser collapses by removing the "show" class, the state Bootstrap
// uses for an expanded collapse.
type ClassCollapser struct{}

func (ClassCollapser) Hide(n *html.Node) {
	dom.RemoveClass(n, ClassShow)
}

// StaticViewport is a Viewport with fixed layout for headless rendering.
type StaticViewport struct {
	Y int
	// Mobile makes the menu toggler count as displayed.
	Mobile bool
}

func (v *StaticViewport) ScrollY() int { return v.Y }

func (v *StaticViewport) ScrollTo(top int, _ bool) { v.Y = top }

func (v *StaticViewport) Displayed(n *html.Node) bool {
	if dom.HasClass(n, ClassToggler) {
		return v.Mobile
	}
	return true
}

// LanguageButtonID is the id of the selector control for lang.
func LanguageButtonID(lang string) string {
	return "lang-" + lang
}

// SetupBackToTop shows the back-to-top control once the viewport scrolls past
// BackToTopThreshold and scrolls smoothly to the top when it is clicked.
// It does nothing when the control is missing.
func SetupBackToTop(doc *dom.Document, vp Viewport) {
	btn := doc.ElementByID(IDBackToTop)
	if btn == nil {
		return
	}
	doc.AddEventListener(doc.Window(), "scroll", func(dom.Event) {
		doc.Lock()
		defer doc.Unlock()
		dom.ToggleClass(btn, ClassShow, vp.ScrollY() > BackToTopThreshold)
	})
	doc.AddEventListener(btn, "click", func(dom.Event) {
		vp.ScrollTo(0, true)
	})
}

// SetupMobileNavAutoClose collapses the navigation menu when one of its links
// is clicked while the menu toggler is displayed.
func SetupMobileNavAutoClose(doc *dom.Document, vp Viewport, c Collapser) {
	menu := doc.ElementByID(IDNavMenu)
	togglers := doc.FindByClass(nil, ClassToggler)
	if menu == nil || len(togglers) == 0 {
		return
	}
	toggler := togglers[0]
	for _, link := range doc.FindByClass(menu, ClassNavLink) {
		doc.AddEventListener(link, "click", func(dom.Event) {
			if !vp.Displayed(toggler) {
				return
			}
			doc.Lock()
			defer doc.Unlock()
			c.Hide(menu)
		})
	}
}

// SetupLanguageButtons calls load when a language selector control is clicked.
func SetupLanguageButtons(doc *dom.Document, langs []string, load func(ctx context.Context, lang string)) {
	for _, lang := range langs {
		btn := doc.ElementByID(LanguageButtonID(lang))
		if btn == nil {
			continue
		}
		doc.AddEventListener(btn, "click", func(ev dom.Event) {
			load(ev.Context, lang)
		})
	}
}

// SetActiveLanguage marks the selector for lang as selected and every other
// one as unselected. Nothing changes unless all selectors are present.
// The caller holds the document lock.
func SetActiveLanguage(doc *dom.Document, langs []string, lang string) {
	buttons := make([]*html.Node, len(langs))
	for i, l := range langs {
		if buttons[i] = doc.ElementByID(LanguageButtonID(l)); buttons[i] == nil {
			return
		}
	}
	for i, l := range langs {
		dom.ToggleClass(buttons[i], ClassLangSelected, l == lang)
		dom.ToggleClass(buttons[i], ClassLangUnselected, l != lang)
	}
}
