// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package fetches version metadata from crates.io (https://crates.io),
// the Rust community's package registry. Only the license of the exact
// version pinned in Cargo.lock is of interest.
//
// # Usage
//
//	client := crates.NewClient(integrations.NewClient(nil), "")
//
//	v, err := client.FetchVersion(ctx, "serde", "1.0.193")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(v.License) // MIT OR Apache-2.0
//
// # User-Agent
//
// crates.io answers 403 to anonymous clients; [Client] always identifies
// itself with [integrations.UserAgent].
//
// [integrations.UserAgent]: github.com/matzehuels/licensebat/pkg/integrations.UserAgent
package crates
