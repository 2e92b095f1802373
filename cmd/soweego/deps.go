// Package main provides the soweego CLI: dataset construction, blocking,
// feature extraction, classifier training/evaluation/linking and the
// dead-ID/links/biographical-data validators, wired onto a Postgres
// catalog store and an embedded sqlite cache.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soweego-go/soweego/internal/iocache"
	"github.com/soweego-go/soweego/internal/iocatalogdb"
	"github.com/soweego-go/soweego/pkg/config"
	"github.com/soweego-go/soweego/pkg/external"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	cfg *config.Config
	log *slog.Logger
)

// externalClients holds the out-of-core-scope collaborators (§4.13):
// knowledge-base web API, SPARQL, edit bot, Mix'n'match. None of them
// has a concrete implementation in this module; an embedding deployment
// wires them in before calling Execute. Commands that need one of these
// and find it nil fail fast with DependencyNotConfiguredError rather
// than silently no-op'ing.
type externalClients struct {
	KB        external.KBClient
	SPARQL    external.SPARQLClient
	EditBot   external.EditBot
	MixNMatch external.MixNMatchUploader
	Importer  external.CatalogImporter
}

// Clients is the injection seam for the interface-only collaborators.
// It is nil by default; set its fields from an external main before
// Execute runs to enable the commands that need them.
var Clients externalClients

func connectCatalogDB(dbCfg config.CatalogDBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Database, dbCfg.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, iocatalogdb.ConnectionError(dsn, err)
	}
	return db, nil
}

// openCatalogStore connects to the catalog database and returns a ready
// external.CatalogStore, the one concrete "external" dependency this
// module provides (§4.13).
func openCatalogStore() (external.CatalogStore, *gorm.DB, error) {
	db, err := connectCatalogDB(cfg.CatalogDB)
	if err != nil {
		return nil, nil, err
	}
	return iocatalogdb.New(db), db, nil
}

func openCache(ctx context.Context) (*iocache.Store, error) {
	path := config.CacheDir(cfg.HomeDir) + "/cache.db"
	return iocache.Open(ctx, path)
}

// closeGormDB releases the connection opened by openCatalogStore. Commands
// that only need the store for the length of a single RunE call this in a
// defer instead of threading a pipelineDeps through.
func closeGormDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func requireKB() (external.KBClient, error) {
	if Clients.KB == nil {
		return nil, DependencyNotConfiguredError("knowledge-base client")
	}
	return Clients.KB, nil
}

func requireEditBot() (external.EditBot, error) {
	if Clients.EditBot == nil {
		return nil, DependencyNotConfiguredError("edit bot")
	}
	return Clients.EditBot, nil
}

func requireMixNMatch() (external.MixNMatchUploader, error) {
	if Clients.MixNMatch == nil {
		return nil, DependencyNotConfiguredError("Mix'n'match uploader")
	}
	return Clients.MixNMatch, nil
}

func requireImporter() (external.CatalogImporter, error) {
	if Clients.Importer == nil {
		return nil, DependencyNotConfiguredError("catalog importer")
	}
	return Clients.Importer, nil
}
