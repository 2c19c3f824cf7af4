// Package pubdev provides an HTTP client for pub.dev, the Dart and Flutter
// package registry.
//
// pub.dev does not expose a license field in its package API. Instead the
// score endpoint carries tags such as "license:mit" that pana derived from
// the package's LICENSE file. When no such tag is present the license page
// of the version can be fetched as text and classified offline.
//
//	client := pubdev.NewClient(integrations.NewClient(nil), "")
//	score, err := client.FetchScore(ctx, "http")
//	fmt.Println(score.LicenseTags()) // [bsd-3-clause]
package pubdev
