// Package rubygems provides an HTTP client for the RubyGems API.
//
// It fetches the licenses declared by the exact gem versions pinned in a
// Gemfile.lock through the v2 versions endpoint:
//
//	client := rubygems.NewClient(integrations.NewClient(nil), "")
//	v, err := client.FetchVersion(ctx, "rails", "7.1.2")
//	fmt.Println(v.Licenses) // [MIT]
package rubygems
