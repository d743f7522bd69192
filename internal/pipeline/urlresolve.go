package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveRelativeURLs resolves relative image sources and link targets in
// an HTML fragment against base. If base is nil, returns the fragment
// unchanged.
//
// Resolves:
//   - img[src]
//   - a[href]
//
// Leaves alone absolute URLs, fragment-only references (#x),
// protocol-relative references (//host) and anything that does not parse.
//
// The fragment is re-serialized by the html package, which normalizes
// entity spelling (&#039; becomes &#39;) without changing meaning.
func ResolveRelativeURLs(fragment string, base *url.URL) (string, error) {
	if base == nil {
		return fragment, nil
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		resolveNode(n, base)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// resolveNode walks the tree below n.
func resolveNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			resolveAttr(n, "src", base)
		case atom.A:
			resolveAttr(n, "href", base)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		resolveNode(c, base)
	}
}

func resolveAttr(n *html.Node, key string, base *url.URL) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativeRef(attr.Val) {
			continue
		}
		ref, err := url.Parse(attr.Val)
		if err != nil {
			continue
		}
		n.Attr[i].Val = base.ResolveReference(ref).String()
	}
}

// isRelativeRef reports whether ref is a path reference worth resolving.
func isRelativeRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return !u.IsAbs() && u.Host == ""
}
