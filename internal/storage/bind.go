package storage

import "strconv"

// PlaceholderStyle enumerates the positional-parameter syntaxes of the
// supported engines.
type PlaceholderStyle int

const (
	// Question leaves '?' placeholders untouched (SQLite, MySQL).
	Question PlaceholderStyle = iota
	// Dollar rewrites to $1, $2, ... (Postgres).
	Dollar
	// AtP rewrites to @p1, @p2, ... (SQL Server).
	AtP
)

// Rebind rewrites the '?' placeholders in a query template to the given
// style. Question marks inside single-quoted literals are left alone. This is
// the single point where placeholder syntax diverges; query templates are
// written once, with '?', everywhere else.
func Rebind(style PlaceholderStyle, query string) string {
	if style == Question {
		return query
	}
	buf := make([]byte, 0, len(query)+8)
	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inLiteral = !inLiteral
			buf = append(buf, ch)
		case ch == '?' && !inLiteral:
			n++
			switch style {
			case Dollar:
				buf = append(buf, '$')
			case AtP:
				buf = append(buf, '@', 'p')
			}
			buf = strconv.AppendInt(buf, int64(n), 10)
		default:
			buf = append(buf, ch)
		}
	}
	return string(buf)
}
