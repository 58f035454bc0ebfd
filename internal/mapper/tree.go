package mapper

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// element is a minimal in-memory XML node. Only the direct character data of
// the element is kept in text.
type element struct {
	name     string
	attrs    map[string]string
	text     strings.Builder
	children []*element
}

func (e *element) attr(name string) string {
	return e.attrs[name]
}

// child returns the first direct child with the given tag.
func (e *element) child(name string) *element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// find returns the first descendant (pre-order, excluding e) matching the tag
// and, when schemaID is non-empty, the schema_id attribute.
func (e *element) find(name, schemaID string) *element {
	for _, c := range e.children {
		if c.matches(name, schemaID) {
			return c
		}
		if found := c.find(name, schemaID); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every matching descendant in document order.
func (e *element) findAll(name, schemaID string) []*element {
	var out []*element
	for _, c := range e.children {
		if c.matches(name, schemaID) {
			out = append(out, c)
		}
		out = append(out, c.findAll(name, schemaID)...)
	}
	return out
}

func (e *element) matches(name, schemaID string) bool {
	if e.name != name {
		return false
	}
	return schemaID == "" || e.attr("schema_id") == schemaID
}

// parseTree decodes a whole document into an element tree.
func parseTree(doc []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("decoding xml: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("decoding xml: empty document")
	}
	return root, nil
}
