package util

import (
	"math"
	"strings"
	"sync"
)

// LCase returns s with all letters lower-cased.
func LCase[T ~string](s T) T { return T(strings.ToLower(string(s))) }

// EqFold reports whether s1 and s2 are equal under simple Unicode case-folding.
func EqFold[T1, T2 ~string](s1 T1, s2 T2) bool {
	return strings.EqualFold(string(s1), string(s2))
}

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

// GetStringBuilder returns an empty builder from the pool.
// Release it with [FreeStringBuilder] once the result is copied out.
func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

// FreeStringBuilder resets sb and returns it to the pool.
// Builders grown over 64 KiB are dropped.
func FreeStringBuilder(sb *strings.Builder) {
	if sb.Cap() > math.MaxUint16 {
		return
	}
	sb.Reset()
	strBldrPool.Put(sb)
}
