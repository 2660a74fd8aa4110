package portal

// Profile describes the column layout of a listing-portal CSV export.
// Adding a new portal is just adding a new Profile to the profiles slice.
type Profile struct {
	Name        string // also recorded as the lead source
	NameCol     string
	EmailCol    string
	PhoneCol    string
	PropertyCol string
	MessageCol  string // optional, empty when the portal exports no message
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.EmailCol, p.PhoneCol, p.PropertyCol}
}

// profiles is the ordered list of portal export formats to try during
// auto-detection. More specific profiles should come first to avoid false
// matches.
var profiles = []Profile{
	{
		Name:        "idealista",
		NameCol:     "Nome",
		EmailCol:    "Email",
		PhoneCol:    "Telefone",
		PropertyCol: "Referência",
		MessageCol:  "Mensagem",
	},
	{
		Name:        "imovirtual",
		NameCol:     "Nome do contacto",
		EmailCol:    "E-mail",
		PhoneCol:    "Contacto telefónico",
		PropertyCol: "ID do anúncio",
	},
	{
		Name:        "generic",
		NameCol:     "Name",
		EmailCol:    "Email",
		PhoneCol:    "Phone",
		PropertyCol: "Listing",
		MessageCol:  "Message",
	},
}
