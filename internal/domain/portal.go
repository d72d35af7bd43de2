package domain

// PortalLink is a single entry in the service directory. Only Enabled and URL
// drive behavior; everything else is pass-through display data.
type PortalLink struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	URL         string `json:"url"`
	DisplayURL  string `json:"displayUrl"`
	Enabled     bool   `json:"enabled"`
}

// PortalMeta describes the portal itself.
type PortalMeta struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Version  string `json:"version"`
}

// PortalDocument is the full configuration document served to clients.
type PortalDocument struct {
	Portal PortalMeta   `json:"portal"`
	Links  []PortalLink `json:"links"`
}
