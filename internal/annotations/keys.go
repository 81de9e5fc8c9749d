// Package annotations defines the metadata keys Signpost recognises on
// Kubernetes objects that are not themselves link declarations (Ingresses,
// Routes, VirtualServices, HTTPRoutes) and on legacy Hajimari resources.
//
// # Precedence
//
// For every field the keys are listed in lookup order. Signpost's own keys
// come first, then Hajimari's, then Forecastle's. The first key present on
// the object wins. Each key is looked up on annotations first and then on
// labels, so that tools which can only set labels still work.
//
// # Example
//
//	metadata:
//	  annotations:
//	    signpost.potoo.io/enable: "true"
//	    signpost.potoo.io/appName: Grafana
//	    signpost.potoo.io/group: Monitoring
//	    signpost.potoo.io/icon: mdi:chart-line
package annotations

// Key prefixes of the three recognised ecosystems.
const (
	Prefix           = "signpost.potoo.io/"
	HajimariPrefix   = "hajimari.io/"
	ForecastlePrefix = "forecastle.stakater.com/"
)

// Signpost keys.
const (
	// Enable opts a routing object into discovery.
	// Value: "true" / "false"
	Enable = Prefix + "enable"

	// AppName overrides the display name. Lowercased on read.
	AppName = Prefix + "appName"

	// Group overrides the display group. Lowercased on read.
	// Default: the object's namespace.
	Group = Prefix + "group"

	// Icon is an icon reference such as "mdi:home". Lowercased on read.
	Icon = Prefix + "icon"

	// IconColor is a CSS color name or hex value.
	IconColor = Prefix + "iconColor"

	// URL overrides the link target. Lowercased when read.
	URL = Prefix + "url"

	// Info is a free-form subtitle.
	Info = Prefix + "info"

	// TargetBlank controls whether the link opens in a new tab.
	// Value: "true" / "false"
	TargetBlank = Prefix + "targetBlank"

	// Location is the integer sort weight. 0 means unset (1000).
	Location = Prefix + "location"

	// Tags is a comma-separated tag list for role-scoped dashboards.
	Tags = Prefix + "tags"

	// Protocol overrides the URL scheme for mesh and gateway routes.
	// Value: "http" or "https" (a trailing "://" is tolerated).
	Protocol = Prefix + "protocol"

	// Instance pins the object to one Signpost instance.
	// Value: instance name, or a comma-separated list of names.
	Instance = Prefix + "instance"
)

// Hajimari keys.
const (
	HajimariEnable      = HajimariPrefix + "enable"
	HajimariAppName     = HajimariPrefix + "appName"
	HajimariGroup       = HajimariPrefix + "group"
	HajimariIcon        = HajimariPrefix + "icon"
	HajimariURL         = HajimariPrefix + "url"
	HajimariInfo        = HajimariPrefix + "info"
	HajimariTargetBlank = HajimariPrefix + "targetBlank"
	HajimariInstance    = HajimariPrefix + "instance"
)

// Forecastle keys. Forecastle calls the opt-in key "expose".
const (
	ForecastleExpose   = ForecastlePrefix + "expose"
	ForecastleAppName  = ForecastlePrefix + "appName"
	ForecastleGroup    = ForecastlePrefix + "group"
	ForecastleIcon     = ForecastlePrefix + "icon"
	ForecastleURL      = ForecastlePrefix + "url"
	ForecastleInstance = ForecastlePrefix + "instance"
)

// Lookup order per field. Fields that only Signpost defines have a single key.
var (
	EnableKeys      = []string{Enable, HajimariEnable, ForecastleExpose}
	AppNameKeys     = []string{AppName, HajimariAppName, ForecastleAppName}
	GroupKeys       = []string{Group, HajimariGroup, ForecastleGroup}
	IconKeys        = []string{Icon, HajimariIcon, ForecastleIcon}
	IconColorKeys   = []string{IconColor}
	URLKeys         = []string{URL, HajimariURL, ForecastleURL}
	InfoKeys        = []string{Info, HajimariInfo}
	TargetBlankKeys = []string{TargetBlank, HajimariTargetBlank}
	LocationKeys    = []string{Location}
	TagsKeys        = []string{Tags}
	ProtocolKeys    = []string{Protocol}
	InstanceKeys    = []string{Instance, HajimariInstance, ForecastleInstance}
)
