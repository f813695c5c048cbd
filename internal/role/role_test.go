package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  Role
		ok    bool
	}{
		// CTO variants win first.
		{"CTO", CTO, true},
		{"Chief Technology Officer", CTO, true},
		{"Chief Technical Officer", CTO, true},
		{"Co-Founder & CTO", CTO, true},
		{"Founder and Chief Technology Officer", CTO, true},

		{"Head of Engineering", HeadOfEngineering, true},
		{"Head, Engineering", HeadOfEngineering, true},

		{"VP of Engineering", VPOfEngineering, true},
		{"SVP Engineering", VPOfEngineering, true},
		{"Vice President, Engineering", VPOfEngineering, true},

		{"Talent Acquisition Manager", TalentAcquisition, true},
		{"Talent Aquisition Lead", TalentAcquisition, true},
		{"Head of Talent Acquisition", TalentAcquisition, true},

		{"Co-Founder", Cofounder, true},
		{"Cofounder", Cofounder, true},
		{"Co Founder & COO", Cofounder, true},

		{"Founder", Founder, true},
		{"Founder & Managing Director", Founder, true},

		{"CEO", CEO, true},
		{"Chief Executive Officer", CEO, true},

		// No match.
		{"Software Engineer", "", false},
		{"Director of Sales", "", false},
		{"", "", false},
		{"---", "", false},

		// Word-boundary safety: substrings never match.
		{"Director of Data", "", false},
		{"Octopus Wrangler", "", false},

		// The bare "ta" token is not a Talent Acquisition signal.
		{"TA", "", false},
		{"Senior TA Partner", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			got, ok := Infer(tt.title)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferPriorityOrder(t *testing.T) {
	t.Parallel()

	// A title matching several rules resolves to the highest-priority one.
	got, ok := Infer("Co-Founder & CTO")
	require.True(t, ok)
	assert.Equal(t, CTO, got)

	got, ok = Infer("Founder & CEO")
	require.True(t, ok)
	assert.Equal(t, Founder, got)

	got, ok = Infer("VP of Engineering & Head of Engineering")
	require.True(t, ok)
	assert.Equal(t, HeadOfEngineering, got)
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cto", Key(CTO))
	assert.Equal(t, "headofengineering", Key(HeadOfEngineering))
	assert.Equal(t, "vpofengineering", Key(VPOfEngineering))
	assert.Equal(t, "talentacquisition", Key(TalentAcquisition))

	// Keys separate every member of the canonical set.
	all := []Role{CEO, CTO, Founder, Cofounder, HeadOfEngineering, VPOfEngineering, TalentAcquisition}
	seen := map[string]Role{}
	for _, r := range all {
		k := Key(r)
		_, dup := seen[k]
		assert.False(t, dup, "duplicate key %q", k)
		seen[k] = r
	}
}
