// Package lint reports topology problems that resolution tolerates.
//
// The resolver accepts duplicate aliases (the first entry under a defined
// device wins) and skips dangling entries, failing only when nothing else
// lists the alias and someone asks for it. Lint surfaces both ahead of time, plus aliases shadowed by device names and, given the
// openwrt-tests checkout, devices whose targets/<stem>.yaml is missing.
package lint
