package memoize

import (
	"fmt"
	"slices"
	"strings"

	"github.com/phildavis/go-jsonmemoize/logger"
)

// CallString renders positional and named arguments into a cache key:
// a tuple-like list of the positional arguments followed by the named
// arguments in sorted name order, so equal logical calls always produce
// equal strings. The store treats the result as an opaque key; any other
// derivation with the same stability property works too.
func CallString(args []any, kwargs map[string]any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}
	slices.Sort(names)
	kw := make([]string, len(names))
	for i, name := range names {
		kw[i] = fmt.Sprintf("%s: %v", name, kwargs[name])
	}
	return fmt.Sprintf("(%s), {%s}", strings.Join(parts, ", "), strings.Join(kw, ", "))
}

// CallString is the advisory-checked variant of the package-level
// [CallString]: each argument is inspected and a warning is logged when its
// string form looks like an opaque rendering rather than a stable,
// human-meaningful one.
func (m *Memoizer) CallString(args []any, kwargs map[string]any) string {
	for _, arg := range args {
		warnIfOpaque(m.defaults.Logger, arg)
	}
	for name, val := range kwargs {
		warnIfOpaque(m.defaults.Logger, name)
		warnIfOpaque(m.defaults.Logger, val)
	}
	return CallString(args, kwargs)
}

// warnIfOpaque logs a warning if the item's string form contains both "<"
// and ">", the telltale of renderings like "<nil>" or "<WidgetClient
// 0xc000123456>" that vary between runs and make unstable cache keys.
// Advisory only; the key is used either way.
func warnIfOpaque(log logger.Logger, item any) {
	s := fmt.Sprint(item)
	if strings.Contains(s, "<") && strings.Contains(s, ">") {
		log.Warn("%s <-- this looks like an opaque rendering; cache may not behave as expected", s)
	}
}
