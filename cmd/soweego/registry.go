package main

import "github.com/soweego-go/soweego/pkg/model"

// FormatterRegistry maps catalog-owned properties to their canonical URL
// templates, consumed by the links validator. It starts empty; a
// deployment registers its catalogs' formatters before Execute runs,
// mirroring the Clients injection seam for the KB/SPARQL/edit-bot
// collaborators.
var FormatterRegistry = model.NewFormatterRegistry()
