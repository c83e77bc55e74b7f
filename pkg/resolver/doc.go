// Package resolver maps a device or instance name to its labgrid target file.
//
// Given labnet.yaml with
//
//	devices:
//	  linksys_e8450: {}
//	labs:
//	  labgrid-fcefyn:
//	    device_instances:
//	      linksys_e8450: [belkin_rt3200_1]
//
// both "linksys_e8450" and "belkin_rt3200_1" resolve to
// targets/linksys_e8450.yaml. Resolve does no I/O and never modifies the
// topology; the only side effect is a Prometheus counter per lookup.
package resolver
