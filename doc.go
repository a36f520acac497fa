// Package cson implements parsing for the restricted CSON dialect written
// by legacy Boostnote.
//
// CSON is a CoffeeScript-flavoured cousin of JSON. The dialect Boostnote
// emits is much smaller than full CSON: nesting is always brace-delimited,
// keys are bare identifiers separated from values by ":", list and map
// entries live on their own lines, and strings are either double-quoted or
// triple-quoted (possibly spanning several lines). There are no inline
// comma-separated collections, no "=" separator, no quoted keys, no
// whitespace-joined string literals, and no "|" verbatim blocks.
//
//	title: "Weekly review"
//	tags: [
//	    "work"
//	    "urgent"
//	]
//	isStarred: true
//	content: '''
//	# Weekly review
//	- inbox zero
//	'''
//
// [Parse] converts a document into a generic [Value] tree, and [Unmarshal]
// decodes a document directly into a Go struct, map, or slice in the style
// of encoding/json.
package cson
