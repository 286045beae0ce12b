package mirror

import (
	"strings"

	"github.com/AYColumbia/vtree/vtree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidAtoms are the HTML elements with no content model and no closing tag.
var voidAtoms = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

// IsVoidElement reports whether tag is a standard void HTML element,
// looked up via its well-known atom rather than a name table.
func IsVoidElement(tag string) bool {
	return voidAtoms[atom.Lookup([]byte(strings.ToLower(tag)))]
}

// Serialize renders a mirror tree as HTML text, for debug output and test
// assertions.
func Serialize(n *Node) string {
	var sb strings.Builder
	serializeNode(n, &sb)
	return sb.String()
}

func serializeNode(n *Node, sb *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Kind {
	case vtree.KindLeaf:
		switch n.Leaf.Kind {
		case CommentLeaf:
			sb.WriteString("<!--")
			sb.WriteString(n.Leaf.Text)
			sb.WriteString("-->")
		default:
			sb.WriteString(html.EscapeString(n.Leaf.Text))
		}
	case vtree.KindFragment:
		for _, c := range n.Children {
			serializeNode(c, sb)
		}
	default:
		tag := strings.ToLower(n.Tag)
		sb.WriteString("<")
		sb.WriteString(tag)
		for _, a := range n.Attrs {
			sb.WriteString(" ")
			sb.WriteString(a.Name)
			sb.WriteString("=\"")
			sb.WriteString(html.EscapeString(strings.Join(a.Values, " ")))
			sb.WriteString("\"")
		}
		if IsVoidElement(tag) {
			sb.WriteString(">")
			return
		}
		sb.WriteString(">")
		for _, c := range n.Children {
			serializeNode(c, sb)
		}
		sb.WriteString("</")
		sb.WriteString(tag)
		sb.WriteString(">")
	}
}
