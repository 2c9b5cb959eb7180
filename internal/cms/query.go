package cms

import (
	"net/url"
	"strconv"
	"strings"
)

// Filter operators understood by the Strapi REST API.
const (
	OpEq        = "$eq"
	OpGte       = "$gte"
	OpLte       = "$lte"
	OpContainsI = "$containsi"
	OpIn        = "$in"
)

type param struct {
	key   string
	value string
}

// Query builds Strapi-style bracket querystrings, e.g.
// filters[cuisine][$eq]=Italian or filters[$or][0][name][$containsi]=pizza.
// Parameters are encoded in insertion order.
type Query struct {
	params []param
}

func NewQuery() *Query {
	return &Query{}
}

func (q *Query) add(key, value string) *Query {
	q.params = append(q.params, param{key: key, value: value})
	return q
}

// Filter appends filters[<path...>][<op>]=<value>. Path segments may include
// grouping tokens such as "$or" and numeric group indexes.
func (q *Query) Filter(op, value string, path ...string) *Query {
	var b strings.Builder
	b.WriteString("filters")
	for _, seg := range path {
		b.WriteString("[")
		b.WriteString(seg)
		b.WriteString("]")
	}
	b.WriteString("[")
	b.WriteString(op)
	b.WriteString("]")
	return q.add(b.String(), value)
}

// SearchOr appends a case-insensitive $or group matching value against each
// of the given fields.
func (q *Query) SearchOr(value string, fields ...string) *Query {
	for i, field := range fields {
		q.Filter(OpContainsI, value, "$or", strconv.Itoa(i), field)
	}
	return q
}

// Populate appends populate[<relation>]=*.
func (q *Query) Populate(relation string) *Query {
	return q.add("populate["+relation+"]", "*")
}

// PopulateAll appends populate=*.
func (q *Query) PopulateAll() *Query {
	return q.add("populate", "*")
}

// Paginate appends pagination[page] and pagination[pageSize].
func (q *Query) Paginate(page, pageSize int) *Query {
	q.add("pagination[page]", strconv.Itoa(page))
	return q.add("pagination[pageSize]", strconv.Itoa(pageSize))
}

// Sort appends sort=<field>. Prefix the field with "-" via "field:desc"
// Strapi syntax for descending order.
func (q *Query) Sort(field string) *Query {
	return q.add("sort", field)
}

// Encode serializes the query in insertion order using form-urlencoded
// escaping. The urlencoded serializer leaves '*' bare, which Strapi's
// populate=* shorthand relies on.
func (q *Query) Encode() string {
	if len(q.params) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range q.params {
		if i > 0 {
			b.WriteString("&")
		}
		b.WriteString(queryEscape(p.key))
		b.WriteString("=")
		b.WriteString(queryEscape(p.value))
	}
	return b.String()
}

func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2A", "*")
}
