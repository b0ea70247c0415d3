package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// DOM Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryDOM,
		Message:  "Element not found",
		Detail:   "The handle does not wrap an element. The query matched nothing or the id does not exist.",
		DocURL:   "https://mkdom.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryDOM,
		Message:  "Detached node",
		Detail:   "The element has no parent, so it cannot be removed or used as an insertion reference.",
		DocURL:   "https://mkdom.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryDOM,
		Message:  "Invalid selector",
		Detail:   "The host could not compile the CSS selector.",
		DocURL:   "https://mkdom.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryDOM,
		Message:  "Markup parse failed",
		Detail:   "The markup passed as inner content could not be parsed.",
		DocURL:   "https://mkdom.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryDOM,
		Message:  "Hierarchy request error",
		Detail:   "The insertion would make a node its own ancestor, or the reference node is not a child of the parent.",
		DocURL:   "https://mkdom.dev/docs/errors/E005",
	},

	// ============================================
	// Host Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryHost,
		Message:  "Host call failed",
		Detail:   "The host document rejected or could not complete the call.",
		DocURL:   "https://mkdom.dev/docs/errors/E010",
	},
	"E011": {
		Category: CategoryHost,
		Message:  "Listener binding failed",
		Detail:   "The event listener could not be registered or removed on the host.",
		DocURL:   "https://mkdom.dev/docs/errors/E011",
	},
	"E012": {
		Category: CategoryHost,
		Message:  "Foreign node",
		Detail:   "The node value does not belong to this host document.",
		DocURL:   "https://mkdom.dev/docs/errors/E012",
	},
	"E013": {
		Category: CategoryHost,
		Message:  "Browser unavailable",
		Detail:   "No browser could be launched or connected to.",
		DocURL:   "https://mkdom.dev/docs/errors/E013",
	},

	// ============================================
	// Config Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The mkdom.json file could not be read or parsed.",
		DocURL:   "https://mkdom.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No mkdom.json file was found in the directory or any parent.",
		DocURL:   "https://mkdom.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
		DocURL:   "https://mkdom.dev/docs/errors/E122",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Missing input",
		Detail:   "The command needs an input document.",
		DocURL:   "https://mkdom.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The live server stopped with an error.",
		DocURL:   "https://mkdom.dev/docs/errors/E141",
	},

	// ============================================
	// Script Errors (E160-E169)
	// ============================================

	"E160": {
		Category: CategoryScript,
		Message:  "Invalid script",
		Detail:   "The mutation script could not be parsed.",
		DocURL:   "https://mkdom.dev/docs/errors/E160",
	},
	"E161": {
		Category: CategoryScript,
		Message:  "Unknown operation",
		Detail:   "The step names an operation that does not exist.",
		DocURL:   "https://mkdom.dev/docs/errors/E161",
	},
	"E162": {
		Category: CategoryScript,
		Message:  "Missing target",
		Detail:   "The step needs exactly one of all, one, id, new or newNS.",
		DocURL:   "https://mkdom.dev/docs/errors/E162",
	},
	"E163": {
		Category: CategoryScript,
		Message:  "Step failed",
		Detail:   "The operation ran but the host reported an error.",
		DocURL:   "https://mkdom.dev/docs/errors/E163",
	},

	// ============================================
	// Storage Errors (E180-E189)
	// ============================================

	"E180": {
		Category: CategoryStorage,
		Message:  "Document not found",
		Detail:   "The document does not exist at the given location.",
		DocURL:   "https://mkdom.dev/docs/errors/E180",
	},
	"E181": {
		Category: CategoryStorage,
		Message:  "Storage write failed",
		Detail:   "The document could not be written.",
		DocURL:   "https://mkdom.dev/docs/errors/E181",
	},
	"E182": {
		Category: CategoryStorage,
		Message:  "Invalid location",
		Detail:   "The location is neither a local path nor an s3://bucket/key URL.",
		DocURL:   "https://mkdom.dev/docs/errors/E182",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
