// Package iocatalogdb implements pkg/external.CatalogStore against the
// relational schema a catalog importer owns: one row per entity, plus
// satellite tables for links, free-text descriptions and relationships.
// It is the one external collaborator this module ships a concrete
// adapter for, since the core pipeline cannot run without reading a real
// catalog store.
package iocatalogdb

import "time"

// Entity is one catalog record: a person, band, film or other authority
// entry, denormalized just enough for the linker to read in one query.
type Entity struct {
	// TID is the catalog's native identifier, e.g. a Discogs artist ID.
	TID       string `gorm:"column:tid;primaryKey"`
	Catalog   string `gorm:"column:catalog;primaryKey;index:idx_entity_catalog_kind"`
	Kind      string `gorm:"column:kind;primaryKey;index:idx_entity_catalog_kind"`
	Name      string `gorm:"column:name;index"`
	Gender    string `gorm:"column:gender"`
	BirthDate string `gorm:"column:birth_date"`
	DeathDate string `gorm:"column:death_date"`
	BirthPlace string `gorm:"column:birth_place"`
	DeathPlace string `gorm:"column:death_place"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName pins the GORM table name to the importer's naming.
func (Entity) TableName() string { return "entity" }

// LinkEntity is a third-party URL attached to an Entity.
type LinkEntity struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement"`
	TID     string `gorm:"column:tid;index"`
	Catalog string `gorm:"column:catalog;index"`
	URL     string `gorm:"column:url"`
}

func (LinkEntity) TableName() string { return "link_entity" }

// NLPEntity is a free-text description/biography blob attached to an
// Entity, used by the preprocessor's free-text column kind.
type NLPEntity struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement"`
	TID         string `gorm:"column:tid;index"`
	Catalog     string `gorm:"column:catalog;index"`
	Description string `gorm:"column:description"`
}

func (NLPEntity) TableName() string { return "nlp_entity" }

// RelationshipEntity records a work<->person or band<->member edge
// between two Entity rows within the same catalog.
type RelationshipEntity struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Catalog string `gorm:"column:catalog;index"`
	FromTID string `gorm:"column:from_tid;index"`
	ToTID   string `gorm:"column:to_tid;index"`
	Kind    string `gorm:"column:kind"`
	Weight  float64 `gorm:"column:weight"`
}

func (RelationshipEntity) TableName() string { return "relationship_entity" }

// AllModels returns every model for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Entity{},
		&LinkEntity{},
		&NLPEntity{},
		&RelationshipEntity{},
	}
}
