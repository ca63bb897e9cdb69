// Package carousel builds Bootstrap carousel markup from slide lists.
package carousel

import (
	"fmt"
	"strings"

	"tavernasite/internal/core"
	"tavernasite/internal/escape"
)

// Build returns a self-contained carousel fragment with indicators, slide
// panels and, for more than one slide, prev/next controls. The first slide
// is the active one. id must be unique within the document; Build does not
// check it. An empty slide list still yields the (empty) shell.
func Build(id string, slides []core.Slide) string {
	target := escape.Attr(id)

	var b strings.Builder
	fmt.Fprintf(&b, `<div id="%s" class="carousel slide" data-bs-ride="false">`, target)

	b.WriteString(`<div class="carousel-indicators">`)
	for i := range slides {
		class, current := "", ""
		if i == 0 {
			class, current = "active", ` aria-current="true"`
		}
		fmt.Fprintf(&b,
			`<button type="button" data-bs-target="#%s" data-bs-slide-to="%d" class="%s"%s aria-label="Slide %d"></button>`,
			target, i, class, current, i+1)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<div class="carousel-inner">`)
	for i, s := range slides {
		class := "carousel-item"
		if i == 0 {
			class += " active"
		}
		fmt.Fprintf(&b, `<div class="%s">`, class)
		fmt.Fprintf(&b, `<img src="%s" alt="%s" class="d-block w-100 carousel-img" loading="lazy">`,
			escape.Attr(s.Src), escape.Attr(s.Alt))
		if s.Caption != "" {
			fmt.Fprintf(&b, `<div class="carousel-caption"><h5 class="mb-0">%s</h5></div>`, escape.HTML(s.Caption))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)

	if len(slides) > 1 {
		for _, dir := range []struct{ slide, label string }{{"prev", "Previous"}, {"next", "Next"}} {
			fmt.Fprintf(&b,
				`<button class="carousel-control-%[1]s" type="button" data-bs-target="#%[2]s" data-bs-slide="%[1]s" aria-label="%[3]s">`+
					`<span class="carousel-control-%[1]s-icon" aria-hidden="true"></span></button>`,
				dir.slide, target, dir.label)
		}
	}

	b.WriteString(`</div>`)
	return b.String()
}

// Normalize prepares a dictionary slide list for Build: a nil list becomes
// empty and every slide without alt text gets "Slide N" (1-based).
func Normalize(items []core.Slide) []core.Slide {
	out := make([]core.Slide, 0, len(items))
	for i, it := range items {
		if it.Alt == "" {
			it.Alt = fmt.Sprintf("Slide %d", i+1)
		}
		out = append(out, it)
	}
	return out
}
