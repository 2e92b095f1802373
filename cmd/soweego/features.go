package main

import (
	"github.com/soweego-go/soweego/internal/iofeatures"
	"github.com/soweego-go/soweego/pkg/external"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// schemaFor picks the entity schema the rest of the pipeline builds its
// tables against. Musicians get the dedicated genre/occupation schema;
// everything else falls back to the general film/credit shape.
func schemaFor(catalog, entity string) model.EntitySchema {
	if entity == "musician" {
		return model.MusicianSchema(catalog)
	}
	return model.FilmEntitySchema(catalog, entity)
}

// defaultFeatures builds the fixed feature set every (catalog, entity)
// pair is scored on, grounded on the original's per-entity feature list
// collapsed to the columns schema.EntitySchema declares.
func defaultFeatures(sparql external.SPARQLClient) []pipeline.Feature {
	features := []pipeline.Feature{
		iofeatures.SimilarStrings{LeftColumn: "name", RightColumn: "name", Algorithm: iofeatures.Levenshtein},
		iofeatures.SimilarStrings{LeftColumn: "name", RightColumn: "name", Algorithm: iofeatures.Cosine},
		iofeatures.SharedTokens{LeftColumn: "name", RightColumn: "name"},
		iofeatures.SharedTokensPlus{LeftColumn: "name", RightColumn: "name"},
		iofeatures.SimilarDates{LeftColumn: "birth_date", RightColumn: "birth_date"},
		iofeatures.SimilarDates{LeftColumn: "death_date", RightColumn: "death_date"},
		iofeatures.ExactMatch{LeftColumn: "gender", RightColumn: "gender"},
	}
	if sparql != nil {
		features = append(features, &iofeatures.SharedOccupations{
			LeftColumn: "occupations", RightColumn: "occupations", SPARQL: sparql,
		})
	}
	return features
}
