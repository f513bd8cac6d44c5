package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/larsenwood/easy-eea/internal/domain"
)

func TestStation_HasServiceName(t *testing.T) {
	st := domain.Station{
		ID:           "stop_area:SNCF:87686006",
		Name:         "Paris Gare de Lyon",
		ServiceNames: []string{"Paris Gare de Lyon", "Paris (intramuros)"},
	}

	assert.True(t, st.HasServiceName("Paris (intramuros)"))
	assert.True(t, st.HasServiceName("PARIS (INTRAMUROS)"), "alias match is case-insensitive")
	assert.False(t, st.HasServiceName("Paris"))
	assert.False(t, domain.Station{}.HasServiceName("Paris"))
}
