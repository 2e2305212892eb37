package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdchart/pkg/contracts/domain"
)

func TestLookupTables_Logo(t *testing.T) {
	tables := NewLookupTables()

	logo, ok := tables.Logo("FA Cup")
	assert.True(t, ok)
	assert.Equal(t, "images/FA_Cup.png", logo)

	logo, ok = tables.Logo("Club Friendlies")
	assert.False(t, ok)
	assert.Empty(t, logo)

	assert.Len(t, tables.Logos(), 7)
}

func TestLookupTables_Canonical(t *testing.T) {
	tables := NewLookupTables()

	tests := []struct {
		raw       string
		wantName  string
		wantStage domain.Stage
		known     bool
	}{
		{"EFL Cup", "League Cup", domain.StageKnockout, true},
		{"Champions League Qualification", "Champions League", domain.StageQualification, true},
		{"Europa League", "Europa League", domain.StageLeague, true},
		{"Emirates Cup", "Emirates Cup", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			alias, ok := tables.Canonical(tt.raw)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.wantName, alias.Trophy)
			assert.Equal(t, tt.wantStage, alias.Stage)
		})
	}
}

func TestLookupTables_CopiesAreIndependent(t *testing.T) {
	tables := NewLookupTables()

	logos := tables.Logos()
	logos["Premier League"] = "hacked.png"
	colours := tables.ManagerColours()
	delete(colours, "David Moyes")
	tenures := tables.Tenures()
	tenures[0].Name = "nobody"

	logo, _ := tables.Logo("Premier League")
	assert.Equal(t, "images/Premier_League.png", logo)
	assert.Equal(t, "#1f77b4", tables.ManagerColour("David Moyes"))
	assert.Equal(t, "David Moyes", tables.Tenures()[0].Name)
}

func TestLookupTables_ManagerColourFallback(t *testing.T) {
	assert.Equal(t, "#999999", NewLookupTables().ManagerColour("Unknown Boss"))
}

func TestLookupTables_TenureAt(t *testing.T) {
	tables := NewLookupTables()
	day := func(s string) time.Time {
		d, err := time.Parse(DateLayout, s)
		require.NoError(t, err)
		return d
	}

	tenure, ok := tables.TenureAt(day("2013-08-11"))
	require.True(t, ok)
	assert.Equal(t, "David Moyes", tenure.Name)

	tenure, ok = tables.TenureAt(day("2014-04-23"))
	require.True(t, ok)
	assert.Equal(t, "Ryan Giggs", tenure.Name, "end date is exclusive")

	tenure, ok = tables.TenureAt(day("2019-03-28"))
	require.True(t, ok)
	assert.Equal(t, domain.ManagerPermanent, tenure.Type)

	tenure, ok = tables.TenureAt(day("2030-01-01"))
	require.True(t, ok)
	assert.Equal(t, "Michael Carrick", tenure.Name, "open-ended tenure")

	_, ok = tables.TenureAt(day("2014-07-01"))
	assert.False(t, ok, "gap between Giggs and van Gaal")
}
