package refdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/larsenwood/easy-eea/internal/refdata"
)

func TestClassifier_DefaultModes(t *testing.T) {
	c := refdata.NewClassifier(nil)

	assert.True(t, c.Eligible("TGV INOUI"))
	assert.True(t, c.Eligible("Intercités"))
	assert.False(t, c.Eligible("TER"))
	assert.False(t, c.Eligible(""))
}

func TestClassifier_ConfiguredModes(t *testing.T) {
	c := refdata.NewClassifier([]string{"TER"})

	assert.True(t, c.Eligible("TER"))
	// A configured list replaces the default, it does not extend it.
	assert.False(t, c.Eligible("TGV INOUI"))
}
