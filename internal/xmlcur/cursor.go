// Package xmlcur provides a forward-only cursor over one XML document.
//
// The cursor is either positioned ON an element (the start tag has been read,
// its content has not) or between elements. Consuming operations (Text, Skip)
// read exactly through the current element's close tag, so a caller walking a
// subtree can never escape the enclosing element by accident: NextSibling
// returns false when it reaches the parent's close tag.
package xmlcur

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Cursor wraps an xml.Decoder with a positioned-on-element model.
// Not safe for concurrent use; open one per scan.
type Cursor struct {
	dec *xml.Decoder
	cur xml.StartElement
	on  bool
	eof bool
}

// New returns a cursor reading from r. Input in any charset the document
// declares (windows-1251 and friends are common in XMLTV feeds) is
// transcoded via charset.NewReaderLabel.
func New(r io.Reader) *Cursor {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return &Cursor{dec: dec}
}

// OnElement reports whether the cursor is positioned on a start tag.
func (c *Cursor) OnElement() bool { return c.on }

// EOF reports whether the underlying document has been fully consumed.
func (c *Cursor) EOF() bool { return c.eof }

// Name returns the local name of the current element, or "" when the cursor
// is not on an element.
func (c *Cursor) Name() string {
	if !c.on {
		return ""
	}
	return c.cur.Name.Local
}

// Attr returns the value of the named attribute on the current element and
// whether the attribute is present at all.
func (c *Cursor) Attr(name string) (string, bool) {
	if !c.on {
		return "", false
	}
	for _, a := range c.cur.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text consumes the current element and returns its character data, trimmed.
// Character data inside nested elements is included; markup is not.
func (c *Cursor) Text() (string, error) {
	if !c.on {
		return "", errors.New("xmlcur: Text called while not on an element")
	}
	c.on = false
	var sb strings.Builder
	depth := 0
	for {
		tok, err := c.dec.Token()
		if err != nil {
			return "", c.fail(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return strings.TrimSpace(sb.String()), nil
			}
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
}

// Skip consumes the current element, content and close tag included.
// A no-op when the cursor is not on an element.
func (c *Cursor) Skip() error {
	if !c.on {
		return nil
	}
	c.on = false
	if err := c.dec.Skip(); err != nil {
		return c.fail(err)
	}
	return nil
}

// FirstChild enters the current element and positions on its first child
// element. Returns false when the element has no child elements; the element
// is then fully consumed.
func (c *Cursor) FirstChild() (bool, error) {
	if !c.on {
		return false, errors.New("xmlcur: FirstChild called while not on an element")
	}
	c.on = false
	return c.scanSibling()
}

// NextSibling advances to the next element at the current nesting level.
// If the cursor is on an element, that element's subtree is skipped first.
// Returns false at the enclosing element's close tag (which is consumed) or
// at end of document.
func (c *Cursor) NextSibling() (bool, error) {
	if c.on {
		c.on = false
		if err := c.dec.Skip(); err != nil {
			return false, c.fail(err)
		}
	}
	return c.scanSibling()
}

func (c *Cursor) scanSibling() (bool, error) {
	for {
		tok, err := c.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.eof = true
				return false, nil
			}
			return false, c.fail(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			c.cur = t
			c.on = true
			return true, nil
		case xml.EndElement:
			return false, nil
		}
	}
}

// SeekDescendant advances to the next element named name at any depth,
// descending into subtrees. Used to find the document root. Returns false at
// end of document.
func (c *Cursor) SeekDescendant(name string) (bool, error) {
	for {
		ok, err := c.NextElement()
		if !ok || err != nil {
			return false, err
		}
		if c.cur.Name.Local == name {
			return true, nil
		}
	}
}

// NextElement advances to the next start tag anywhere in the document,
// entering the current element's content rather than skipping it. Returns
// false at end of document.
func (c *Cursor) NextElement() (bool, error) {
	c.on = false
	for {
		tok, err := c.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.eof = true
				return false, nil
			}
			return false, c.fail(err)
		}
		if t, ok := tok.(xml.StartElement); ok {
			c.cur = t
			c.on = true
			return true, nil
		}
	}
}

func (c *Cursor) fail(err error) error {
	if errors.Is(err, io.EOF) {
		c.eof = true
		return io.ErrUnexpectedEOF
	}
	return err
}
