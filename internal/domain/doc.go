// Package domain contains the core model for skein: the yarn entry list,
// field validation and the combined-yardage computation.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// terminal rendering, or the filesystem. Infra/adapters map into/from these types.
package domain
