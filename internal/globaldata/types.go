package globaldata

// GlobalData holds the site-wide strings used to render the blog page shell.
// EmailContact is only populated by variants that include it.
type GlobalData struct {
	Name         string `json:"name" yaml:"name"`
	BlogTitle    string `json:"blogTitle" yaml:"blogTitle"`
	FooterText   string `json:"footerText" yaml:"footerText"`
	EmailContact string `json:"emailContact,omitempty" yaml:"emailContact,omitempty"`
}

// Provider describes anything able to build a GlobalData record from a lookup source.
type Provider interface {
	Load(lookup LookupFunc) (GlobalData, error)
}
