// Package links finds result-page links on a league portal page.
//
// The portal lists each meeting as a row holding the meeting name and a set of
// download anchors ("HTML", "PDF", ...). An anchor is taken as a result link
// when its text mentions "html" and one of its nearby ancestors mentions the
// competition series being tracked.
package links
