// Package jsonparser flattens Power BI descriptors into pbidoc records.
// Descriptors are walked in place with github.com/buger/jsonparser, which
// keeps object keys in document order.
package jsonparser

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/fwojciec/pbidoc"
)

// Node is a read-only view of a JSON value. Accessors never fail: reading a
// key or index that does not exist yields a missing Node, and typed getters
// on a missing or mistyped Node return the zero value. This lets deeply
// nested lookups be chained without intermediate checks.
type Node struct {
	data []byte
	typ  jsonparser.ValueType
}

// Parse validates data as JSON and returns its root Node.
// Returns EINVALID if data is not valid JSON.
func Parse(data []byte) (Node, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return Node{}, pbidoc.Errorf(pbidoc.EINVALID, "invalid JSON")
	}
	return newNode(data), nil
}

// EmptyObject returns a Node holding {}.
func EmptyObject() Node {
	return Node{data: []byte("{}"), typ: jsonparser.Object}
}

// ParseDescriptor returns the root Node of a descriptor, or an empty object
// if the descriptor is not valid JSON.
func ParseDescriptor(d pbidoc.Descriptor) Node {
	n, err := Parse(d)
	if err != nil {
		return EmptyObject()
	}
	return n
}

// newNode wraps valid JSON text, detecting its type from the first byte.
func newNode(data []byte) Node {
	if len(data) == 0 {
		return Node{}
	}
	switch data[0] {
	case '{':
		return Node{data: data, typ: jsonparser.Object}
	case '[':
		return Node{data: data, typ: jsonparser.Array}
	case '"':
		// Match jsonparser.Get, which returns string content without quotes.
		return Node{data: data[1 : len(data)-1], typ: jsonparser.String}
	case 't', 'f':
		return Node{data: data, typ: jsonparser.Boolean}
	case 'n':
		return Node{data: data, typ: jsonparser.Null}
	default:
		return Node{data: data, typ: jsonparser.Number}
	}
}

// Exists reports whether the value is present.
func (n Node) Exists() bool {
	return n.typ != jsonparser.NotExist
}

// IsNull reports whether the value is a JSON null.
func (n Node) IsNull() bool {
	return n.typ == jsonparser.Null
}

// IsObject reports whether the value is a JSON object.
func (n Node) IsObject() bool {
	return n.typ == jsonparser.Object
}

// IsString reports whether the value is a JSON string.
func (n Node) IsString() bool {
	return n.typ == jsonparser.String
}

// Get follows a path of object keys.
func (n Node) Get(keys ...string) Node {
	cur := n
	for _, key := range keys {
		if cur.typ != jsonparser.Object {
			return Node{}
		}
		value, typ, _, err := jsonparser.Get(cur.data, key)
		if err != nil {
			return Node{}
		}
		cur = Node{data: value, typ: typ}
	}
	return cur
}

// Index returns the i-th element of an array.
func (n Node) Index(i int) Node {
	if n.typ != jsonparser.Array || i < 0 {
		return Node{}
	}
	value, typ, _, err := jsonparser.Get(n.data, "["+strconv.Itoa(i)+"]")
	if err != nil {
		return Node{}
	}
	return Node{data: value, typ: typ}
}

// Items returns the elements of an array in order, or nil if n is not an array.
func (n Node) Items() []Node {
	if n.typ != jsonparser.Array {
		return nil
	}
	var items []Node
	_, _ = jsonparser.ArrayEach(n.data, func(value []byte, typ jsonparser.ValueType, _ int, err error) {
		if err != nil {
			return
		}
		items = append(items, Node{data: value, typ: typ})
	})
	return items
}

// Entry is one key/value pair of an object.
type Entry struct {
	Key   string
	Value Node
}

// Entries returns the members of an object in document order, or nil if n
// is not an object.
func (n Node) Entries() []Entry {
	if n.typ != jsonparser.Object {
		return nil
	}
	var entries []Entry
	// ObjectEach hands keys over already unescaped.
	_ = jsonparser.ObjectEach(n.data, func(key, value []byte, typ jsonparser.ValueType, _ int) error {
		entries = append(entries, Entry{Key: string(key), Value: Node{data: value, typ: typ}})
		return nil
	})
	return entries
}

// String returns the unescaped value of a string, or "" for any other type.
func (n Node) String() string {
	return n.StringOr("")
}

// StringOr returns the unescaped value of a string, or def for any other type.
func (n Node) StringOr(def string) string {
	if n.typ != jsonparser.String {
		return def
	}
	s, err := jsonparser.ParseString(n.data)
	if err != nil {
		return def
	}
	return s
}

// Int coerces a number or numeric string to an int, truncating fractions.
// Any other value yields 0.
func (n Node) Int() int {
	var text string
	switch n.typ {
	case jsonparser.Number:
		text = string(n.data)
	case jsonparser.String:
		text = strings.TrimSpace(n.String())
	default:
		return 0
	}
	if i, err := strconv.Atoi(text); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int(f)
}

// Raw returns the JSON text of the value. Strings are returned without
// their surrounding quotes and still escaped.
func (n Node) Raw() []byte {
	return n.data
}
