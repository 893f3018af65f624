// Package form flattens Go values into the form parameters understood by the
// Moodle web-service REST endpoint.
//
// Moodle has no native way to receive lists or records in a form body, so it
// reads them from bracketed keys. A list of records is sent as
// collection[index][field] and a bare list as collection[index]:
//
//	groups[0][courseid]=2
//	groups[0][name]=Tutorial A
//	groups[1][courseid]=2
//	groups[1][name]=Tutorial B
//	groupids[0]=17
//
// The server correlates its response with the request by index, so indexes
// always follow input order starting at 0.
//
// # Options
//
// Each operation describes its optional fields with a struct carrying url
// tags. The tags name the wire field and drive the encoding:
//
//	type CreateOptions struct {
//		Visible   *bool      `url:"visible,omitempty,int"`   // 0 or 1
//		StartDate *time.Time `url:"startdate,omitempty,unix"` // unix seconds
//	}
//
// The url-tagged fields are also the operation's whitelist. Callers holding
// an untyped map (a command line, a JSON file) go through Decode, which
// rejects unknown names with an *InvalidOptionError before anything is sent.
package form
