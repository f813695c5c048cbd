package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonHasContactInfo(t *testing.T) {
	t.Parallel()

	empty := ""
	tests := []struct {
		name   string
		person Person
		want   bool
	}{
		{"no fields", Person{Name: "Jane Doe"}, false},
		{"email only", Person{Name: "Jane Doe", Email: StringPtr("jane@acme.com")}, true},
		{"phone only", Person{Name: "Jane Doe", PhoneNumber: StringPtr("+4915112345678")}, true},
		{"empty email", Person{Name: "Jane Doe", Email: &empty}, false},
		{"empty phone", Person{Name: "Jane Doe", PhoneNumber: &empty}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.person.HasContactInfo())
		})
	}
}

func TestCompanyCloneIsDeep(t *testing.T) {
	t.Parallel()

	original := Company{
		Name:     "Acme Inc",
		Location: StringPtr("Berlin"),
		People: []Person{
			{Role: "CTO", Name: "Jane Doe", Email: StringPtr("jane@acme.com")},
		},
	}

	clone := original.Clone()
	require.Len(t, clone.People, 1)

	*clone.Location = "Paris"
	*clone.People[0].Email = "other@acme.com"
	clone.People[0].Name = "Someone Else"

	assert.Equal(t, "Berlin", *original.Location)
	assert.Equal(t, "jane@acme.com", *original.People[0].Email)
	assert.Equal(t, "Jane Doe", original.People[0].Name)
}

func TestCloneAllIndependent(t *testing.T) {
	t.Parallel()

	source := []Company{
		{Name: "Acme", People: []Person{{Role: "CEO", Name: "A"}}},
		{Name: "Globex", People: []Person{{Role: "CTO", Name: "B"}, {Role: "Founder", Name: "C"}}},
	}

	copied := CloneAll(source)
	require.Len(t, copied, 2)
	assert.Equal(t, 3, CountPeople(copied))

	copied[0].People = append(copied[0].People, Person{Name: "D"})
	assert.Len(t, source[0].People, 1)
}
