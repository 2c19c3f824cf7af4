// Package io reads and writes license reports.
//
// # JSON
//
// [WriteJSON] encodes records as a JSON array with stable snake_case field
// names; [ReadJSON] decodes it again, so a saved report can be rendered
// later in another format:
//
//	[
//	  {
//	    "name": "left-pad",
//	    "version": "1.3.0",
//	    "url": "https://www.npmjs.com/package/left-pad/v/1.3.0",
//	    "dependency_type": "npm",
//	    "validated": true,
//	    "is_valid": true,
//	    "is_ignored": false,
//	    "error": null,
//	    "licenses": ["MIT"],
//	    "comment": null
//	  }
//	]
//
// JSON output always contains every record.
//
// # Markdown
//
// [WriteMarkdown] renders a report suited for a pull request comment or a
// CI job summary: a summary line, then one table per verdict (invalid,
// valid, ignored). With [MarkdownOptions.HideInvalid] the invalid table is
// replaced by a count.
package io
