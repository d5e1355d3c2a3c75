package archivist

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	paramPageSize  = "page_size"
	paramPageToken = "page_token"
)

// Filter selects the records returned by List and Count. Keys are literal
// query parameter names; values may be strings, numbers, booleans or
// slices of those (encoded as repeated parameters).
type Filter map[string]any

// queryParam is a single key=value pair.
type queryParam struct {
	key   string
	value string
}

// query is an ordered list of query parameters. Order is significant so
// that identical inputs always produce byte-identical request URLs.
type query []queryParam

// newQuery builds the query for a list or count request: page_size first,
// then page_token, then filter keys in ascending order.
func newQuery(pageSize int, pageToken string, filter Filter) query {
	q := make(query, 0, len(filter)+2)
	if pageSize > 0 {
		q = append(q, queryParam{paramPageSize, strconv.Itoa(pageSize)})
	}
	if pageToken != "" {
		q = append(q, queryParam{paramPageToken, pageToken})
	}
	return append(q, filter.params()...)
}

// params flattens the filter into sorted pairs. page_size and page_token
// are owned by the cursor and dropped from the filter.
func (f Filter) params() query {
	keys := make([]string, 0, len(f))
	for k := range f {
		if k == paramPageSize || k == paramPageToken {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var q query
	for _, k := range keys {
		for _, v := range formatValues(f[k]) {
			q = append(q, queryParam{k, v})
		}
	}
	return q
}

// Encode renders the query string without a leading "?".
func (q query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

func formatValues(v any) []string {
	switch tv := v.(type) {
	case nil:
		return nil
	case string:
		return []string{tv}
	case []string:
		return tv
	case []any:
		out := make([]string, 0, len(tv))
		for _, e := range tv {
			out = append(out, formatValue(e))
		}
		return out
	default:
		return []string{formatValue(tv)}
	}
}

func formatValue(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case bool:
		return strconv.FormatBool(tv)
	case int:
		return strconv.Itoa(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	default:
		return fmt.Sprint(tv)
	}
}

// mergeFilters builds a Filter from record properties and prefixed
// attribute maps, e.g. {"attributes": {"arc_display_type": "Door"}} becomes
// "attributes.arc_display_type=Door".
func mergeFilters(props Filter, prefixed map[string]Attributes) Filter {
	f := make(Filter, len(props))
	for k, v := range props {
		f[k] = v
	}
	for prefix, attrs := range prefixed {
		for k, v := range attrs {
			f[prefix+"."+k] = v
		}
	}
	return f
}
