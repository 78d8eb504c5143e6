// Package domain contains the core model for gs1dm: export formats, requests,
// results, configuration and the error types shared by every adapter.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// net/http, or the filesystem. Infra/adapters map into/from these types.
package domain
