// Package extract pulls structured data out of HTML snapshots: links,
// tables, and heading outlines. Functions come in pairs, one over a raw
// HTML string and one reading through a live browser.Page.
package extract
