package format

import "strings"

// annotationNames maps lower-cased Apex annotation names to their canonical casing.
var annotationNames = map[string]string{
	"auraenabled":         "AuraEnabled",
	"deprecated":          "Deprecated",
	"future":              "Future",
	"httpdelete":          "HttpDelete",
	"httpget":             "HttpGet",
	"httppatch":           "HttpPatch",
	"httppost":            "HttpPost",
	"httpput":             "HttpPut",
	"invocablemethod":     "InvocableMethod",
	"invocablevariable":   "InvocableVariable",
	"istest":              "IsTest",
	"jsonaccess":          "JsonAccess",
	"namespaceaccessible": "NamespaceAccessible",
	"readonly":            "ReadOnly",
	"remoteaction":        "RemoteAction",
	"restresource":        "RestResource",
	"suppresswarnings":    "SuppressWarnings",
	"testsetup":           "TestSetup",
	"testvisible":         "TestVisible",
}

// CanonicalAnnotation returns the canonical casing of an Apex annotation
// name, without the leading '@'. Unknown names are returned unchanged.
func CanonicalAnnotation(name string) string {
	if canon, ok := annotationNames[strings.ToLower(name)]; ok {
		return canon
	}
	return name
}
