package policy_test

import (
	"fmt"

	"github.com/matzehuels/licensebat/pkg/deps"
	"github.com/matzehuels/licensebat/pkg/policy"
)

func ExamplePolicy_Validate() {
	p := policy.New(policy.Deny)
	p.Licenses["MIT"] = policy.Allow
	p.Licenses["Apache-2.0"] = policy.Allow

	dual := deps.NewRetrieved(deps.Dependency{Name: "dual", Version: "1.0.0"}, "npm", "",
		[]string{"MIT", "GPL-3.0"}, nil)
	p.Validate(&dual)

	fmt.Println(dual.Validated, dual.IsValid)
	// Output: true false
}

func ExampleParseLicrc() {
	p, err := policy.ParseLicrc([]byte(`
[licenses]
unaccepted = ["GPL-3.0"]

[dependencies]
ignored = ["internal-tool"]
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.Default, p.Licenses["GPL-3.0"], p.Dependencies["internal-tool"])
	// Output: allow deny ignore
}
