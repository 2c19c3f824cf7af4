// Package python collects poetry.lock dependencies and resolves their
// licenses through PyPI.
//
// # License Resolution
//
// [Retriever] queries https://pypi.org/pypi/<name>/<version>/json and takes
// the first available of:
//
//   - info.license_expression, split on " OR " and " AND "
//   - "License ::" classifiers, each mapped to its last segment
//     ("License :: OSI Approved :: MIT License" => "MIT License")
//   - a short info.license field
package python
