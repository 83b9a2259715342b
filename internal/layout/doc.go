// Package layout describes field trees in YAML files, validates them and
// builds the node tree a binder works on.
//
// # Schema Overview
//
//	version: "1"
//	prefix: data            # root scope, "data" when omitted
//	track_changes: true     # change tracking, on when omitted
//	skip_empty: false
//	validate_hidden: true
//	fields:
//	  - name: data.name
//	  - name: data.age
//	    kind: integer
//	  - name: data.note
//	    flags: emptynull
//	  - type: group
//	    show: data.active   # string or list of paths
//	    fields:
//	      - name: data.code
//	  - type: select
//	    name: data.country
//	    options: [no, se, {value: dk, label: Denmark}]
//	  - type: collection
//	    name: data.items
//	    flags: sort
//	    sort: {field: pos, type: number}
//	    prefill: '{"qty": 1}'
//	    fields:
//	      - name: items.sku
//	      - name: items.qty
//	        kind: number
//
// Elements default to inputs, or to groups when they only carry fields.
// Field names inside a collection are scoped by the last segment of the
// collection name.
package layout
