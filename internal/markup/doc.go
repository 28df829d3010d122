// Package markup holds the small text helpers shared by the link and results
// parsers.
//
// Result pages published by the league portal concatenate competitor data
// into adjacent text nodes, so the parsers read text the same way throughout:
// each descendant text node is trimmed and the pieces are joined with no
// separator.
package markup
