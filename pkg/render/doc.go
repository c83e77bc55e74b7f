// Package render turns the topology into a derived artifact, typically the
// labgrid coordinator's places.yaml.
//
// The rendering context exposes three names:
//
//	labnet              the whole topology document
//	inventory_hostname  the selected lab
//	ansible_date_time   {"epoch": <unix seconds at render start>}
//
// These match what the Ansible coordinator role passes to places.yaml.j2,
// so the same template renders unchanged. Two engines are available:
// Jinja (gonja) and Go text/template.
package render
