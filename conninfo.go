package dsql

import "net/url"

// ConnString renders the resolved parameters as a postgresql:// URL for the
// host driver's config parser. driverName tags the composed
// application_name; a caller-supplied application_name value is consumed as
// the ORM prefix of that tag. The rendered URL never carries a password:
// minted tokens are injected into the parsed driver config afterwards.
//
// Query keys are rendered in sorted order, so equal properties produce
// byte-equal strings.
func (p *Properties) ConnString(driverName string) string {
	q := url.Values{}
	q.Set("user", p.User)
	for k, v := range p.Driver {
		if k == "application_name" {
			continue
		}
		q.Set(k, v)
	}
	q.Set("application_name", BuildApplicationName(driverName, p.Driver["application_name"]))

	u := url.URL{
		Scheme:   "postgresql",
		Host:     p.Host,
		Path:     "/" + p.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}
