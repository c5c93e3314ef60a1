package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for album documents.
//
// Priorities:
//  1. Fast full-text search on album names with English stemming
//  2. Exact keyword matching for genre and rating bucket filters
//  3. Numeric range queries for year and average rating
//  4. Term vectors on the name field for highlighting
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name field - primary search target
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Genre - keyword analyzer keeps multi-word genres intact
	genreFieldMapping := bleve.NewTextFieldMapping()
	genreFieldMapping.Analyzer = keyword.Name
	genreFieldMapping.Store = true
	genreFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("genre", genreFieldMapping)

	// Rating bucket - exact match only ("Highly Rated" must not tokenize)
	rangeFieldMapping := bleve.NewTextFieldMapping()
	rangeFieldMapping.Analyzer = keyword.Name
	rangeFieldMapping.Store = true
	rangeFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("rating_range", rangeFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	yearFieldMapping := bleve.NewNumericFieldMapping()
	yearFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("year", yearFieldMapping)

	avgRatingFieldMapping := bleve.NewNumericFieldMapping()
	avgRatingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("avg_rating", avgRatingFieldMapping)

	numRatingsFieldMapping := bleve.NewNumericFieldMapping()
	numRatingsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("num_ratings", numRatingsFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
