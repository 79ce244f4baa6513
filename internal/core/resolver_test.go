package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testFolders() []*CaseFolder {
	return []*CaseFolder{
		{
			Path:       "/Cases/272/90250273 - De Leon Reyes, Samuel v Citizens",
			Client:     "272",
			Matter:     "90250273",
			Style:      "De Leon Reyes, Samuel v Citizens",
			ModifiedAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			Path:       "/Cases/272/90250274 - Smith, John v Universal Property",
			Client:     "272",
			Matter:     "90250274",
			Style:      "Smith, John v Universal Property",
			ModifiedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Path:       "/Cases/301/55512 - Garcia v Heritage 062024CA018136AXXXCE",
			Client:     "301",
			Matter:     "55512",
			Style:      "Garcia v Heritage 062024CA018136AXXXCE",
			ModifiedAt: time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestResolver_ExactClientMatter(t *testing.T) {
	r := NewFolderResolver(testFolders(), 0.5, zap.NewNop())

	f, err := r.Resolve(CaseIdentity{Client: "272", Matter: "90250273"})
	require.NoError(t, err)
	assert.Equal(t, "/Cases/272/90250273 - De Leon Reyes, Samuel v Citizens", f.Path)
}

func TestResolver_CaseNumberContainment(t *testing.T) {
	r := NewFolderResolver(testFolders(), 0.5, zap.NewNop())

	f, err := r.Resolve(CaseIdentity{CaseNumber: "062024CA018136AXXXCE"})
	require.NoError(t, err)
	assert.Equal(t, "301", f.Client)
}

func TestResolver_StyleTokenOverlap(t *testing.T) {
	r := NewFolderResolver(testFolders(), 0.5, zap.NewNop())

	f, err := r.Resolve(CaseIdentity{Style: "DE LEON REYES v CITIZENS"})
	require.NoError(t, err)
	assert.Equal(t, "90250273", f.Matter)
}

func TestResolver_StyleBelowThresholdMisses(t *testing.T) {
	r := NewFolderResolver(testFolders(), 0.5, zap.NewNop())

	_, err := r.Resolve(CaseIdentity{Style: "Completely Unrelated Caption"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFoundFolder)
}

func TestResolver_EmptyIdentityMisses(t *testing.T) {
	r := NewFolderResolver(testFolders(), 0.5, zap.NewNop())

	_, err := r.Resolve(CaseIdentity{})
	assert.ErrorIs(t, err, ErrNotFoundFolder)
}

func TestResolver_TieBreaksByModifiedThenPath(t *testing.T) {
	folders := []*CaseFolder{
		{
			Path:       "/Cases/A/1 - Jones v Citizens",
			Client:     "A",
			Matter:     "1",
			Style:      "Jones v Citizens",
			ModifiedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Path:       "/Cases/B/2 - Jones v Citizens",
			Client:     "B",
			Matter:     "2",
			Style:      "Jones v Citizens",
			ModifiedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	r := NewFolderResolver(folders, 0.5, zap.NewNop())

	f, err := r.Resolve(CaseIdentity{Style: "Jones v Citizens"})
	require.NoError(t, err)
	assert.Equal(t, "B", f.Client, "most recently modified folder wins the tie")
}

func TestResolver_AmbiguousCaseNumberFallsThrough(t *testing.T) {
	folders := []*CaseFolder{
		{Path: "/Cases/A/1 - Doe v X 2024CA1", Client: "A", Matter: "1", Style: "Doe v X 2024CA1"},
		{Path: "/Cases/B/2 - Roe v Y 2024CA1", Client: "B", Matter: "2", Style: "Roe v Y 2024CA1"},
	}
	r := NewFolderResolver(folders, 0.5, zap.NewNop())

	_, err := r.Resolve(CaseIdentity{CaseNumber: "2024CA1"})
	assert.ErrorIs(t, err, ErrNotFoundFolder)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"case folds", "De Leon REYES", "de leon reyes"},
		{"strips diacritics", "García v Peña", "garcia v pena"},
		{"strips punctuation", "Smith, John v. Universal!", "smith john v universal"},
		{"collapses whitespace", "  a   b\t c ", "a b c"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}
