package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemByID(t *testing.T) {
	snap := &Snapshot{
		Systems: []*System{
			{ID: "sys-1", Name: "payments"},
			{ID: "sys-2", Name: "checkout"},
		},
	}

	sys := snap.SystemByID("sys-2")
	require.NotNil(t, sys)
	assert.Equal(t, "checkout", sys.Name)

	assert.Nil(t, snap.SystemByID("sys-3"))
}

func TestSystemByIDNilReceiver(t *testing.T) {
	var snap *Snapshot
	assert.Nil(t, snap.SystemByID("sys-1"))
}

func TestSystemByIDSkipsNullEntries(t *testing.T) {
	// A stored document can carry JSON nulls in the systems array; lookups
	// must step over them instead of dereferencing.
	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"systems":[null,{"id":"sys-1","name":"payments"}]}`), &snap))

	sys := snap.SystemByID("sys-1")
	require.NotNil(t, sys)
	assert.Equal(t, "payments", sys.Name)

	assert.Nil(t, snap.SystemByID("missing"))
}
