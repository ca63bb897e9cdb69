package dom

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shell = `<!DOCTYPE html>
<html lang="el">
<head><title>t</title></head>
<body>
<span id="brand">placeholder</span>
<a id="contact-maps-btn" href="#">Map</a>
<div id="menu-container"><p>old</p></div>
<button id="lang-el" class="btn btn-sm btn-secondary">EL</button>
</body>
</html>`

func newDoc(t *testing.T) *Document {
	t.Helper()
	d, err := ParseString(shell)
	require.NoError(t, err)
	return d
}

func TestLang(t *testing.T) {
	d := newDoc(t)
	assert.Equal(t, "el", d.Lang())
	d.SetLang("en")
	assert.Equal(t, "en", d.Lang())
	assert.Contains(t, d.String(), `<html lang="en">`)
}

func TestTitleAndMeta(t *testing.T) {
	d := newDoc(t)
	assert.Equal(t, "t", d.Title())

	d.SetTitle("Taverna & Co")
	assert.Equal(t, "Taverna & Co", d.Title())
	assert.Contains(t, d.String(), `<title>Taverna &amp; Co</title>`)

	d.SetMeta("description", "By the sea")
	assert.Contains(t, d.String(), `<meta name="description" content="By the sea"/>`)
	d.SetMeta("description", "Fresh fish")
	assert.Contains(t, d.String(), `<meta name="description" content="Fresh fish"/>`)
	assert.NotContains(t, d.String(), "By the sea")

	bare, err := ParseString(`<html><body></body></html>`)
	require.NoError(t, err)
	bare.SetTitle("Taverna")
	assert.Equal(t, "Taverna", bare.Title())
}

func TestSetText(t *testing.T) {
	d := newDoc(t)

	d.SetText("brand", "<b>Taverna</b>")
	brand := d.ElementByID("brand")
	require.NotNil(t, brand)
	assert.Equal(t, "<b>Taverna</b>", Text(brand))
	assert.Contains(t, d.String(), `<span id="brand">&lt;b&gt;Taverna&lt;/b&gt;</span>`)

	d.SetText("brand", "")
	assert.Nil(t, brand.FirstChild)

	// missing element is a no-op
	d.SetText("does-not-exist", "x")
}

func TestSetInnerHTML(t *testing.T) {
	d := newDoc(t)
	c := d.ElementByID("menu-container")
	require.NotNil(t, c)

	require.NoError(t, SetInnerHTML(c, `<h3 class="fw-bold">Starters</h3><div class="mt-2"></div>`))
	assert.Equal(t, `<h3 class="fw-bold">Starters</h3><div class="mt-2"></div>`, InnerHTML(c))
	assert.Len(t, d.FindByClass(c, "mt-2"), 1)

	require.NoError(t, SetInnerHTML(c, ""))
	assert.Empty(t, InnerHTML(c))
}

func TestClassList(t *testing.T) {
	d := newDoc(t)
	b := d.ElementByID("lang-el")
	require.NotNil(t, b)

	assert.True(t, HasClass(b, "btn-secondary"))
	ToggleClass(b, "btn-secondary", false)
	ToggleClass(b, "btn-outline-secondary", true)
	assert.False(t, HasClass(b, "btn-secondary"))
	assert.True(t, HasClass(b, "btn-outline-secondary"))

	AddClass(b, "btn-outline-secondary")
	v, _ := Attr(b, "class")
	assert.Equal(t, "btn btn-sm btn-outline-secondary", v)

	RemoveClass(b, "missing")
	v, _ = Attr(b, "class")
	assert.Equal(t, "btn btn-sm btn-outline-secondary", v)
}

func TestSetAttr(t *testing.T) {
	d := newDoc(t)
	a := d.ElementByID("contact-maps-btn")
	require.NotNil(t, a)

	SetAttr(a, "href", "https://maps.example/x?a=1&b=2")
	v, ok := Attr(a, "href")
	assert.True(t, ok)
	assert.Equal(t, "https://maps.example/x?a=1&b=2", v)
	assert.Len(t, a.Attr, 2)
}

func TestDispatch(t *testing.T) {
	d := newDoc(t)
	b := d.ElementByID("lang-el")

	var order []int
	d.AddEventListener(b, "click", func(Event) { order = append(order, 1) })
	d.AddEventListener(b, "click", func(ev Event) {
		assert.Equal(t, "click", ev.Type)
		assert.Same(t, b, ev.Target)
		order = append(order, 2)
	})
	d.AddEventListener(nil, "click", func(Event) { t.Fatal("nil target registered") })

	assert.Equal(t, 2, d.Dispatch(context.Background(), b, "click"))
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 0, d.Dispatch(context.Background(), b, "scroll"))
	assert.Equal(t, 0, d.Dispatch(context.Background(), d.Window(), "scroll"))
}
