// Package countries provides the static country directory used for
// phone-prefix defaulting and country selection, search helpers, and a
// small net/http handler that returns JSON options for form inputs.
//
// The default handler responds to GET and HEAD requests and supports
// query and limit parameters to filter results. The backing data is
// loaded from the embedded directory under data/countries.txt.
package countries
