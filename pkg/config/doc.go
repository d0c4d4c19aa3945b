// Package config loads deployment profiles. A profile names the canonical
// rule set variant for a deployment along with its time zone, the state
// option set and any extra cross-field edges:
//
//	default: standard
//	profiles:
//	  standard:
//	    variant: v1
//	    timezone: America/Chicago
//	    extraEdges:
//	      - source: zip-code
//	        dependent: state
//
// Profiles are read from any fs.FS; EmbeddedFS ships a default set.
package config
