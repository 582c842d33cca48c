package soap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Value is a decoded XML node: a Scalar, a List or an Object.
type Value interface {
	isValue()
}

// Scalar is the text of a leaf element.
type Scalar string

// List holds the repeated occurrences of a child element, in document order.
type List []Value

// TextKey names the character data of an element that also carries
// attributes, e.g. <amount currency="USD">10.00</amount>.
const TextKey = "_value"

// Object is an element with children or attributes. Keys keeps document order.
type Object struct {
	Keys   []string
	Fields map[string]Value
}

func (Scalar) isValue()  {}
func (List) isValue()    {}
func (*Object) isValue() {}

func newObject() *Object {
	return &Object{Fields: map[string]Value{}}
}

// Get returns the named child, or nil.
func (o *Object) Get(key string) Value {
	if o == nil {
		return nil
	}
	return o.Fields[key]
}

// add appends a child; a second child with the same name turns the entry into a List.
func (o *Object) add(key string, v Value) {
	existing, ok := o.Fields[key]
	if !ok {
		o.Keys = append(o.Keys, key)
		o.Fields[key] = v
		return
	}
	if list, isList := existing.(List); isList {
		o.Fields[key] = append(list, v)
		return
	}
	o.Fields[key] = List{existing, v}
}

// Decode reads the next element from r into a Value. Namespace prefixes are dropped.
func Decode(r io.Reader) (Value, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("no xml element found")
			}
			return nil, fmt.Errorf("read xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			v, err := decodeElement(dec, start)
			if err != nil {
				return nil, err
			}
			obj := newObject()
			obj.add(start.Name.Local, v)
			return obj, nil
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (Value, error) {
	obj := newObject()
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		obj.add(a.Name.Local, Scalar(a.Value))
	}

	var text strings.Builder
	children := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read <%s>: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			obj.add(t.Name.Local, child)
			children++
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			content := strings.TrimSpace(text.String())
			if children == 0 && len(obj.Keys) == 0 {
				return Scalar(content), nil
			}
			if children == 0 && content != "" {
				obj.add(TextKey, Scalar(content))
			}
			return obj, nil
		}
	}
}

// Flatten turns v into dotted keys: object fields are joined with "." and
// list entries are indexed as "[i]", e.g. "ccAuthReply.amount" or
// "item[0].unitPrice".
func Flatten(v Value) map[string]string {
	out := map[string]string{}
	flattenInto(out, "", v)
	return out
}

func flattenInto(out map[string]string, prefix string, v Value) {
	switch t := v.(type) {
	case Scalar:
		out[prefix] = string(t)
	case List:
		for i, item := range t {
			flattenInto(out, prefix+"["+strconv.Itoa(i)+"]", item)
		}
	case *Object:
		for _, k := range t.Keys {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenInto(out, key, t.Fields[k])
		}
	}
}

// Find walks a path of element names from v and returns the node, or nil.
func Find(v Value, path ...string) Value {
	for _, name := range path {
		obj, ok := v.(*Object)
		if !ok {
			return nil
		}
		v = obj.Get(name)
		if v == nil {
			return nil
		}
	}
	return v
}
