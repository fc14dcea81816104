// Package swlist parses software lists, catalogs of the removable media
// (cartridges, disks, tapes...) known to run on an emulated hardware family.
//
// A List is configured with a name, a type and an optional filter. It parses
// its source the first time it's queried, then serves every query from the
// parsed graph:
//
//	List
//	 └── Info      one software title (shortname, longname, parent, ...)
//	      └── Part one loadable component (cartridge, disk side, ...)
//	           ├── Feature   name/value pairs, shared ones inherited from Info
//	           └── ROMEntry  ROM/disk regions, for the address space loader
//
// Malformed entries never make a List unusable: they're skipped, or kept, and
// reported in the list error log (see Errors and ErrorsString).
package swlist
