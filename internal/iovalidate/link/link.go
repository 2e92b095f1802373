// Package link checks catalog identifier claims against the URLs known
// on both sides, the Go port of checks.py's check_links.
package link

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/soweego-go/soweego/internal/iopreprocess"
	"github.com/soweego-go/soweego/internal/iotext"
	"github.com/soweego-go/soweego/internal/iovalidate"
	"github.com/soweego-go/soweego/pkg/external"
	"github.com/soweego-go/soweego/pkg/model"
)

// HTTPClient probes catalog-only URLs before they are recommended for
// addition to the KB. Tests override it with a client pointed at a fake
// transport instead of hitting the network.
var HTTPClient = &http.Client{Timeout: 15 * time.Second}

// ExternalIDAddition is a catalog-only URL resolved, via the formatter
// registry, into an (identifier property, value) statement to add.
type ExternalIDAddition struct {
	QID   model.QID
	PID   model.PropertyID
	Value string
}

// URLAddition is a catalog-only URL with no matching formatter, to be
// added as a plain "described at URL" statement.
type URLAddition struct {
	QID model.QID
	URL string
}

// Recommendations is check_links' result: identifier claims to
// deprecate, plus catalog-only URLs split into resolved external IDs and
// plain URL statements.
type Recommendations struct {
	Deprecate   map[model.TID][]model.QID
	ExternalIDs []ExternalIDAddition
	URLs        []URLAddition
}

// Check gathers every KB item carrying catalog's identifier claim and
// the catalog's own URL set, then compares them: an empty intersection
// recommends deprecating the claim, and catalog-only URLs are queued for
// addition, extracted into (property, ID) triples where reg recognizes
// them and left as plain URLs otherwise. Mirrors check_links.
func Check(ctx context.Context, kb external.KBClient, store external.CatalogStore, reg *model.FormatterRegistry, catalog, entity, goal string, pid model.PropertyID) (Recommendations, error) {
	stream, err := kb.StreamForLinker(ctx, catalog, entity, goal)
	if err != nil {
		return Recommendations{}, GatherError(catalog, entity, err)
	}
	var items []model.KBItem
	for item := range stream {
		items = append(items, item)
	}

	records, err := store.StreamEntities(ctx, catalog, entity)
	if err != nil {
		return Recommendations{}, GatherError(catalog, entity, err)
	}
	catalogURLs := make(map[model.TID][]string)
	for record := range records {
		catalogURLs[record.TID] = record.URLs
	}

	return dropDeadURLs(ctx, assess(pid, reg, items, catalogURLs)), nil
}

// dropDeadURLs resolves every plain-URL addition candidate and removes the
// ones that come back confirmed dead, since recommending a dead link to
// the KB defeats the purpose of the check. A resolution that times out,
// loops through redirects, or fails some other way is not evidence the
// URL itself is bad, so those candidates are kept.
func dropDeadURLs(ctx context.Context, recs Recommendations) Recommendations {
	if len(recs.URLs) == 0 {
		return recs
	}
	alive := recs.URLs[:0]
	for _, addition := range recs.URLs {
		status, err := iotext.ResolveURL(ctx, HTTPClient, addition.URL)
		if status == iotext.ResolveDead {
			slog.Info("dropping dead URL from addition candidates", "qid", addition.QID, "url", addition.URL)
			continue
		}
		if status == iotext.ResolveError {
			slog.Debug("URL resolution inconclusive, keeping as candidate",
				"qid", addition.QID, "err", iotext.ResolveURLError(addition.URL, err))
		} else if status != iotext.ResolveAlive {
			slog.Debug("URL resolution inconclusive, keeping as candidate",
				"qid", addition.QID, "url", addition.URL, "status", status)
		}
		alive = append(alive, addition)
	}
	recs.URLs = alive
	return recs
}

func assess(pid model.PropertyID, reg *model.FormatterRegistry, items []model.KBItem, catalogURLs map[model.TID][]string) Recommendations {
	claims := iopreprocess.CollapseTrainingPositives(items, pid)

	// wikiEvidence marks a QID whose KB sitelinks are themselves a
	// Wikimedia project link: Wikidata asserting its own sitelink is
	// authoritative evidence the claim is correct even when the catalog,
	// which never lists a wiki URL among its own links, shares nothing
	// with the KB's URL set.
	wikiEvidence := make(map[model.QID]bool, len(items))

	kbData := make(map[model.QID]map[string]struct{}, len(items))
	for _, item := range items {
		urls := make(map[string]struct{}, len(item.Sitelinks)+len(item.ThirdPartyURLs)+len(item.ExternalIDs))
		for _, u := range item.Sitelinks {
			if iotext.IsWikiLink(u) {
				wikiEvidence[item.QID] = true
			}
			urls[u] = struct{}{}
		}
		for _, u := range item.ThirdPartyURLs {
			urls[u] = struct{}{}
		}
		for extPID, id := range item.ExternalIDs {
			if url, ok := reg.URL(extPID, id); ok {
				urls[url] = struct{}{}
			}
		}
		kbData[item.QID] = urls
	}

	catalogData := make(map[model.TID]map[string]struct{}, len(catalogURLs))
	for tid, urls := range catalogURLs {
		set := make(map[string]struct{}, len(urls))
		for _, u := range urls {
			set[u] = struct{}{}
		}
		catalogData[tid] = set
	}

	assessment := iovalidate.Assess(claims, kbData, catalogData)

	recs := Recommendations{Deprecate: make(map[model.TID][]model.QID, len(assessment.Deprecate))}
	for tid, qids := range assessment.Deprecate {
		for _, qid := range qids {
			if wikiEvidence[qid] {
				slog.Debug("skipping deprecation, KB sitelink is a wiki link", "qid", qid, "tid", tid)
				continue
			}
			recs.Deprecate[tid] = append(recs.Deprecate[tid], qid)
		}
		if len(recs.Deprecate[tid]) == 0 {
			delete(recs.Deprecate, tid)
		}
	}

	for _, key := range claims.Sorted() {
		urls, ok := assessment.Add[key.QID]
		if !ok {
			continue
		}
		for _, url := range urls {
			if id, extPID, ok := iotext.ExtractIDFromURL(reg, url); ok {
				recs.ExternalIDs = append(recs.ExternalIDs, ExternalIDAddition{QID: key.QID, PID: extPID, Value: id})
			} else {
				recs.URLs = append(recs.URLs, URLAddition{QID: key.QID, URL: url})
			}
		}
	}

	slog.Info("links check completed",
		"to_deprecate", len(recs.Deprecate), "external_ids_to_add", len(recs.ExternalIDs), "urls_to_add", len(recs.URLs))
	return recs
}
