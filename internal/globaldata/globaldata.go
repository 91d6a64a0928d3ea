package globaldata

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Recognised lookup keys.
const (
	KeyName         = "BLOG_NAME"
	KeyBlogTitle    = "BLOG_TITLE"
	KeyFooterText   = "BLOG_FOOTER_TEXT"
	KeyEmailContact = "EMAIL_CONTACT"
)

// Defaults used when a key is unset or empty.
const (
	DefaultName         = "Cleibson Gomes"
	DefaultBlogTitle    = "Code And Coffee"
	DefaultBlogTitlePT  = "Códigos, Jogos e Café"
	DefaultFooterText   = "Made with ❤️ in Quebec, CA."
	DefaultEmailContact = "blog@nosbielc.com"
)

// Variant selects the title default and whether the record carries a contact e-mail.
// The zero value is Classic.
type Variant int

const (
	// Classic uses the English title and has no contact e-mail.
	Classic Variant = iota
	// Contact uses the Portuguese title and includes EMAIL_CONTACT.
	Contact
)

var variantNames = map[Variant]string{
	Classic: "classic",
	Contact: "contact",
}

// ParseVariant resolves a variant by name. An empty name selects Classic.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Classic, nil
	}
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return Classic, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

func (v Variant) String() string {
	if n, ok := variantNames[v]; ok {
		return n
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Valid reports whether v is one of the declared variants.
func (v Variant) Valid() bool {
	_, ok := variantNames[v]
	return ok
}

// IncludesEmail reports whether records of this variant carry EmailContact.
func (v Variant) IncludesEmail() bool {
	return v == Contact
}

// Keys lists the lookup keys read by this variant.
func (v Variant) Keys() []string {
	keys := []string{KeyName, KeyBlogTitle, KeyFooterText}
	if v.IncludesEmail() {
		keys = append(keys, KeyEmailContact)
	}
	return keys
}

func (v Variant) titleDefault() string {
	if v == Contact {
		return DefaultBlogTitlePT
	}
	return DefaultBlogTitle
}

// Load builds a fresh record from lookup. A nil lookup reads the process
// environment. Any malformed value fails the whole call with a *DecodeError.
func (v Variant) Load(lookup LookupFunc) (GlobalData, error) {
	if !v.Valid() {
		return GlobalData{}, fmt.Errorf("%w: %s", ErrUnknownVariant, v)
	}
	if lookup == nil {
		lookup = EnvLookup
	}

	name, err := resolve(lookup, KeyName, DefaultName)
	if err != nil {
		return GlobalData{}, err
	}
	title, err := resolve(lookup, KeyBlogTitle, v.titleDefault())
	if err != nil {
		return GlobalData{}, err
	}
	footer, err := resolve(lookup, KeyFooterText, DefaultFooterText)
	if err != nil {
		return GlobalData{}, err
	}

	data := GlobalData{
		Name:       name,
		BlogTitle:  title,
		FooterText: footer,
	}

	if v.IncludesEmail() {
		email, err := resolve(lookup, KeyEmailContact, DefaultEmailContact)
		if err != nil {
			return GlobalData{}, err
		}
		data.EmailContact = email
	}

	return data, nil
}

// Load builds a Classic record from lookup.
func Load(lookup LookupFunc) (GlobalData, error) {
	return Classic.Load(lookup)
}

// FromEnv builds a Classic record from the process environment.
func FromEnv() (GlobalData, error) {
	return Classic.Load(EnvLookup)
}

// resolve returns the decoded value of key, or fallback when it is unset or empty.
// Decoding keeps '+' literal; only %XX escapes are reversed. The decoded bytes
// must form valid UTF-8.
func resolve(lookup LookupFunc, key, fallback string) (string, error) {
	raw, ok := lookup(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", &DecodeError{Key: key, Value: raw, Err: err}
	}
	if !utf8.ValidString(decoded) {
		return "", &DecodeError{Key: key, Value: raw, Err: ErrInvalidUTF8}
	}
	return decoded, nil
}
