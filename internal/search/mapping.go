package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for event documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on titles with English stemming
//  2. Exact keyword matching for tag filters
//  3. Numeric range queries on start time
//  4. Term vectors on title for highlighting
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Title - primary search target, stored for result display.
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Description - searchable but not stored (can be large).
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	// Location - searchable, stored for display.
	locationFieldMapping := bleve.NewTextFieldMapping()
	locationFieldMapping.Analyzer = en.AnalyzerName
	locationFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("location", locationFieldMapping)

	// Tags - exact keyword match for filtering, stored for display.
	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// ID - stored, not analyzed.
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	idFieldMapping.Store = true
	idFieldMapping.Index = false
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Numeric fields for ranges and sorting.
	startsAtFieldMapping := bleve.NewNumericFieldMapping()
	startsAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("starts_at", startsAtFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	indexMapping.DefaultMapping = docMapping

	return indexMapping
}
