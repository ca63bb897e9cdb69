// Package dom is a small mutable document model over golang.org/x/net/html.
// It provides the handful of browser DOM operations the site pipeline needs:
// id lookup, text and innerHTML assignment, class lists and event listeners.
//
// Document implements sync.Locker. Callers hold the lock around any
// mutation so that complete render steps never interleave.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Document struct {
	sync.Mutex

	root   *html.Node
	window *html.Node

	listenersMu sync.RWMutex
	listeners   map[*html.Node]map[string][]Listener
}

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{
		root:      root,
		window:    &html.Node{Type: html.DocumentNode},
		listeners: make(map[*html.Node]map[string][]Listener),
	}, nil
}

// ParseString is Parse for an in-memory document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Window returns the target used for window-level events such as scroll.
func (d *Document) Window() *html.Node {
	return d.window
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *html.Node {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return c
		}
	}
	return nil
}

// SetLang sets the document's declared language.
func (d *Document) SetLang(lang string) {
	if el := d.DocumentElement(); el != nil {
		SetAttr(el, "lang", lang)
	}
}

// Lang returns the document's declared language.
func (d *Document) Lang() string {
	if el := d.DocumentElement(); el != nil {
		v, _ := Attr(el, "lang")
		return v
	}
	return ""
}

func (d *Document) head() *html.Node {
	return find(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Head })
}

// SetTitle replaces the text of <title>, adding one to <head> if absent.
func (d *Document) SetTitle(title string) {
	t := find(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Title })
	if t == nil {
		head := d.head()
		if head == nil {
			return
		}
		t = &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		head.AppendChild(t)
	}
	SetText(t, title)
}

// Title returns the text of <title>.
func (d *Document) Title() string {
	if t := find(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Title }); t != nil {
		return Text(t)
	}
	return ""
}

// SetMeta sets the content of <meta name=name>, adding one to <head> if
// absent.
func (d *Document) SetMeta(name, content string) {
	m := find(d.root, func(n *html.Node) bool {
		v, ok := Attr(n, "name")
		return n.DataAtom == atom.Meta && ok && v == name
	})
	if m == nil {
		head := d.head()
		if head == nil {
			return
		}
		m = &html.Node{Type: html.ElementNode, Data: "meta", DataAtom: atom.Meta,
			Attr: []html.Attribute{{Key: "name", Val: name}}}
		head.AppendChild(m)
	}
	SetAttr(m, "content", content)
}

// ElementByID returns the first element with the given id, or nil.
func (d *Document) ElementByID(id string) *html.Node {
	return find(d.root, func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return ok && v == id
	})
}

// SetText replaces the content of the element with the given id by a single
// text node. A missing element is a no-op.
func (d *Document) SetText(id, text string) {
	if el := d.ElementByID(id); el != nil {
		SetText(el, text)
	}
}

// FindByClass returns all elements under root (inclusive) carrying class, in
// document order. A nil root searches the whole document.
func (d *Document) FindByClass(root *html.Node, class string) []*html.Node {
	if root == nil {
		root = d.root
	}
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && HasClass(n, class) {
			out = append(out, n)
		}
	})
	return out
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the whole document, ignoring write errors.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// SetText replaces n's children by a single text node (none for "").
func SetText(n *html.Node, text string) {
	Clear(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// Clear removes all children of n.
func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// SetInnerHTML replaces n's children with markup parsed in n's context.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	Clear(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// InnerHTML renders n's children.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.Join(append(classes(n), class), " "))
}

func RemoveClass(n *html.Node, class string) {
	cs := classes(n)
	kept := cs[:0]
	for _, c := range cs {
		if c != class {
			kept = append(kept, c)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass adds class when force is true and removes it otherwise.
func ToggleClass(n *html.Node, class string, force bool) {
	if force {
		AddClass(n, class)
	} else {
		RemoveClass(n, class)
	}
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}
