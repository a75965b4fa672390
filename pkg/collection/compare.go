package collection

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKind selects how Compare interprets its operands.
type SortKind string

const (
	SortString     SortKind = "string"
	SortNumber     SortKind = "number"
	SortDateString SortKind = "dateString" // DD/MM/YYYY
	SortBoolean    SortKind = "boolean"
)

const dateLayout = "02/01/2006"

// Collators are not safe for concurrent use.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.Vietnamese, collate.IgnoreCase)
	},
}

// Compare orders a and b ascending. nil (including typed nil pointers) sorts last.
// Unknown kinds compare as strings. Unparsable dates compare equal.
func Compare(a, b any, kind SortKind) int {
	a, b = deref(a), deref(b)
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	switch kind {
	case SortNumber:
		return cmp.Compare(toFloat(a), toFloat(b))
	case SortDateString:
		return compareDates(fmt.Sprint(a), fmt.Sprint(b))
	case SortBoolean:
		return compareStrings(fmt.Sprint(a), fmt.Sprint(b))
	default:
		return compareStrings(fmt.Sprint(a), fmt.Sprint(b))
	}
}

// SortBy stable-sorts items by the value key returns, using Compare.
func SortBy[T any](items []T, kind SortKind, key func(T) any) {
	slices.SortStableFunc(items, func(x, y T) int {
		return Compare(key(x), key(y), kind)
	})
}

func compareStrings(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(strings.ToLower(a), strings.ToLower(b))
}

func compareDates(a, b string) int {
	ta, errA := time.Parse(dateLayout, strings.TrimSpace(a))
	tb, errB := time.Parse(dateLayout, strings.TrimSpace(b))
	if errA != nil || errB != nil {
		return 0
	}
	return ta.Compare(tb)
}

func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

func toFloat(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	default:
		var f float64
		if _, err := fmt.Sscan(fmt.Sprint(v), &f); err != nil {
			return 0
		}
		return f
	}
}
