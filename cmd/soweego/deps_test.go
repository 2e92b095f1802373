package main

import (
	"context"
	"testing"

	"github.com/soweego-go/soweego/pkg/external"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireKBFailsFastWhenUnconfigured(t *testing.T) {
	saved := Clients
	defer func() { Clients = saved }()

	Clients = externalClients{}

	_, err := requireKB()
	require.Error(t, err)
	assert.ErrorContains(t, err, "knowledge-base client")
}

func TestRequireKBSucceedsWhenConfigured(t *testing.T) {
	saved := Clients
	defer func() { Clients = saved }()

	kb := fakeKBClient{}
	Clients = externalClients{KB: kb}

	got, err := requireKB()
	require.NoError(t, err)
	assert.Equal(t, kb, got)
}

func TestRequireEditBotMixNMatchImporterFailFastWhenUnconfigured(t *testing.T) {
	saved := Clients
	defer func() { Clients = saved }()

	Clients = externalClients{}

	_, err := requireEditBot()
	assert.ErrorContains(t, err, "edit bot")

	_, err = requireMixNMatch()
	assert.ErrorContains(t, err, "Mix'n'match")

	_, err = requireImporter()
	assert.ErrorContains(t, err, "catalog importer")
}

// fakeKBClient is a minimal external.KBClient used only to exercise the
// Clients injection seam, not a stand-in for a real client.
type fakeKBClient struct{}

func (fakeKBClient) StreamForLinker(_ context.Context, _, _, _ string) (<-chan model.KBItem, error) {
	return nil, nil
}

func (fakeKBClient) GetItem(_ context.Context, _ model.QID) (model.KBItem, error) {
	var zero model.KBItem
	return zero, nil
}

var _ external.KBClient = fakeKBClient{}
