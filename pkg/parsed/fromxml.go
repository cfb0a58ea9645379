package parsed

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/ewskit/ewskit/pkg/names"
)

// FromDocument converts an XML document, already parsed by etree, into
// the ordered-mapping representation this package navigates. Tags and
// attribute names are normalized to snake_case; namespace prefixes and
// declarations are dropped, since response navigation is by local name.
func FromDocument(doc *etree.Document) Map {
	root := NewMap()
	if el := doc.Root(); el != nil {
		root.Set(names.SnakeCase(el.Tag), fromElement(el))
	}
	return root
}

func fromElement(el *etree.Element) Map {
	m := NewMap()
	for _, attr := range el.Attr {
		if attr.Space == "xmlns" || attr.Key == "xmlns" {
			continue
		}
		m.Set(names.SnakeCase(attr.Key), attr.Value)
	}
	if text := strings.TrimSpace(el.Text()); text != "" {
		m.Set("text", text)
	}
	children := el.ChildElements()
	if len(children) > 0 {
		elems := make(Seq, 0, len(children))
		for _, child := range children {
			node := NewMap()
			node.Set(names.SnakeCase(child.Tag), fromElement(child))
			elems = append(elems, node)
		}
		m.Set("elems", elems)
	}
	return m
}
