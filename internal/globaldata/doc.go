// Package globaldata resolves the site-wide display strings of the blog (author
// name, title, footer text and, for the contact variant, a contact e-mail).
//
// Values come from a LookupFunc, usually the process environment. A value that
// is set and non-empty is percent-decoded; anything else falls back to a fixed
// default. A record is built fresh on every call and is never cached.
package globaldata
