package pgtype

import (
	"sync"

	pgxtype "github.com/jackc/pgx/v5/pgtype"
)

// registry is pgx's built-in OID-to-name table, reused here the same way
// the teacher's wire.go keeps one on its Server for the lifetime of the
// process rather than constructing one per lookup.
var registry = sync.OnceValue(func() *pgxtype.Map {
	return pgxtype.NewMap()
})

// OIDName returns the canonical PostgreSQL type name pgx's registry
// associates with a type OID, for display and logging purposes only. This
// module's own codecs above decode column bytes independently of whatever
// this returns.
func OIDName(o uint32) (string, bool) {
	t, ok := registry().TypeForOID(o)
	if !ok {
		return "", false
	}
	return t.Name, true
}
