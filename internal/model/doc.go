// Package model defines the entity records served by the mock API.
//
// Shapes and default values mirror the orchestrator's stable REST
// representations so recorded client expectations stay valid. Constructors
// return fully defaulted records; request handlers bind JSON over them so
// absent fields keep their defaults.
package model
