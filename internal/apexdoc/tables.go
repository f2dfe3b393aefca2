package apexdoc

// recognized lists the ApexDoc tag names that are detected mid-line.
// At the start of a line any tag is an annotation.
var recognized = map[string]struct{}{
	"author":      {},
	"date":        {},
	"deprecated":  {},
	"description": {},
	"example":     {},
	"exception":   {},
	"group":       {},
	"inheritdoc":  {},
	"override":    {},
	"param":       {},
	"return":      {},
	"returns":     {},
	"see":         {},
	"since":       {},
	"throws":      {},
	"used":        {},
	"version":     {},
}

// groupNames maps lower-cased @group values to their canonical casing.
var groupNames = map[string]string{
	"api":         "API",
	"apex":        "Apex",
	"aura":        "Aura",
	"batch":       "Batch",
	"class":       "Class",
	"controller":  "Controller",
	"domain":      "Domain",
	"enum":        "Enum",
	"exception":   "Exception",
	"handler":     "Handler",
	"helper":      "Helper",
	"integration": "Integration",
	"interface":   "Interface",
	"lwc":         "LWC",
	"queueable":   "Queueable",
	"rest":        "REST",
	"schedulable": "Schedulable",
	"selector":    "Selector",
	"service":     "Service",
	"soap":        "SOAP",
	"test":        "Test",
	"trigger":     "Trigger",
	"utility":     "Utility",
	"visualforce": "Visualforce",
	"wrapper":     "Wrapper",
}

// IsRecognized reports whether name (any case) is a known ApexDoc tag.
func IsRecognized(name string) bool {
	_, ok := recognized[lower(name)]
	return ok
}

// GroupName returns the canonical casing of a @group value.
func GroupName(word string) (string, bool) {
	v, ok := groupNames[lower(word)]
	return v, ok
}
