// Package schema reads YAML type definitions for userprompt generate.
//
// A schema file holds one or more documents:
//
//	apiVersion: userprompt/v1
//	kind: Struct
//	name: Server
//	package: config
//	imports: [time]
//	spec:
//	  fields:
//	    - name: Host
//	      type: string
//	      label: hostname
//	      help: DNS name or address
//	    - name: Timeout
//	      type: "*time.Duration"
//	      optional: true
//	---
//	apiVersion: userprompt/v1
//	kind: Enum
//	name: Shape
//	spec:
//	  variants:
//	    - name: Circle
//	      help: a round shape
//	    - name: Square
//	      fields:
//	        - {name: Side, type: int}
//	    - name: Label
//	      type: string
//
// Types defined this way are declared by the generated file as well as
// derived. Validate reports every problem at once.
package schema
