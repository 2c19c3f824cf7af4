// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches package documents ("packuments") from the npm registry
// (https://registry.npmjs.org) and resolves the license a specific version
// declares. Both package-lock.json and yarn.lock dependencies are resolved
// through it.
//
// # Usage
//
//	client := npm.NewClient(integrations.NewClient(nil), "")
//
//	doc, err := client.FetchPackument(ctx, "left-pad")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.DeclaredLicenses("1.3.0")) // [WTFPL]
//
// # License Shapes
//
// The registry has accumulated several ways of declaring a license over the
// years. [Packument.DeclaredLicenses] understands all of them:
//
//	"license": "MIT"
//	"license": {"type": "MIT", "url": "..."}
//	"licenses": [{"type": "MIT"}, {"type": "Apache-2.0"}]
//	"licenses": ["MIT"]
package npm
