package catalog

import (
	"strconv"
	"strings"

	"pmresolve/resolver"
)

// Comparator implements resolver.Comparator using pacman-style dotted
// numeric version comparison. This is deliberately stdlib-only: no library
// in the example pack models pacman/libalpm version ordering, and the
// resolver core treats comparison as an opaque oracle, so there is nothing
// here for a third-party dependency to be grounded on (see DESIGN.md).
type Comparator struct{}

// Satisfies reports whether pkg satisfies dep: the names must match (either
// directly or via one of pkg's provides entries), and when dep.Mod is not
// Any, the relevant version must compare accordingly.
func (Comparator) Satisfies(pkg resolver.Pkg, dep resolver.DependencyExpression) bool {
	if pkg.Name() == dep.Name {
		return versionSatisfies(pkg.Version(), dep)
	}
	for _, p := range pkg.Provides() {
		if p.Name == dep.Name {
			return versionSatisfies(p.Version, dep)
		}
	}
	return false
}

// ProvidesMatch reports whether dep is satisfied by any entry of virtuals,
// the assume-installed shortcut's provides list.
func (Comparator) ProvidesMatch(dep resolver.DependencyExpression, virtuals []resolver.DependencyExpression) bool {
	for _, v := range virtuals {
		if v.Name != dep.Name {
			continue
		}
		if versionSatisfies(v.Version, dep) {
			return true
		}
	}
	return false
}

func versionSatisfies(version string, dep resolver.DependencyExpression) bool {
	if dep.Mod == resolver.Any {
		return true
	}
	cmp := vercmp(version, dep.Version)
	switch dep.Mod {
	case resolver.EQ:
		return cmp == 0
	case resolver.GE:
		return cmp >= 0
	case resolver.LE:
		return cmp <= 0
	case resolver.GT:
		return cmp > 0
	case resolver.LT:
		return cmp < 0
	default:
		return false
	}
}

// vercmp compares two dotted-numeric version strings segment by segment,
// the way pacman's vercmp does: numeric segments compare numerically,
// non-numeric segments compare lexically, and a version with more segments
// than the other is greater once the shared prefix is equal.
func vercmp(a, b string) int {
	as := strings.FieldsFunc(a, isVersionSep)
	bs := strings.FieldsFunc(b, isVersionSep)

	for i := 0; i < len(as) || i < len(bs); i++ {
		if i >= len(as) {
			return -1
		}
		if i >= len(bs) {
			return 1
		}
		sa, sb := as[i], bs[i]
		if sa == sb {
			continue
		}
		na, aIsNum := toInt(sa)
		nb, bIsNum := toInt(sb)
		if aIsNum && bIsNum {
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			continue
		}
		if sa < sb {
			return -1
		}
		return 1
	}
	return 0
}

func isVersionSep(r rune) bool {
	return r == '.' || r == '-' || r == '_' || r == '+'
}

func toInt(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

var _ resolver.Comparator = Comparator{}
