// Package schemas embeds the JSON Schema documents that describe the
// artifacts written by interview-roadmap.
package schemas

import _ "embed"

// RoadmapFile is the file name of the roadmap schema.
const RoadmapFile = "roadmap.schema.json"

// Roadmap is the JSON Schema for a roadmap artifact.
//
//go:embed roadmap.schema.json
var Roadmap []byte
