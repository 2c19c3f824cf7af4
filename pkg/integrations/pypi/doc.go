// Package pypi provides an HTTP client for the Python Package Index API.
//
// # Overview
//
// This package fetches release metadata from PyPI (https://pypi.org), the
// official repository for Python packages, for the exact versions pinned in
// poetry.lock.
//
// # Usage
//
//	client := pypi.NewClient(integrations.NewClient(nil), "")
//
//	rel, err := client.FetchRelease(ctx, "flask", "2.0.0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	licenses, isExpr := rel.DeclaredLicenses()
//
// # License Sources
//
// PyPI metadata carries licenses in three places of decreasing quality:
//
//   - license_expression: an SPDX expression (PEP 639, recent uploads)
//   - classifiers: "License :: OSI Approved :: MIT License"
//   - license: free text, anything from "MIT" to the full license body
//
// Package names are normalized following PEP 503.
package pypi
