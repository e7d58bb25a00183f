package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"musafir/shared/wizard"
)

var hotelSteps = []string{"basic_info", "location", "amenities", "images", "tags"}

func TestFlow_NextStopsAtLastStep(t *testing.T) {
	flow, err := wizard.New(hotelSteps...)
	assert.NoError(t, err)

	for range len(hotelSteps) + 3 {
		flow.Next()
	}

	assert.Equal(t, "tags", flow.Current())
	assert.True(t, flow.IsLast())

	current, total := flow.Position()
	assert.Equal(t, 5, current)
	assert.Equal(t, 5, total)
}

func TestFlow_PreviousStopsAtFirstStep(t *testing.T) {
	flow, err := wizard.New(hotelSteps...)
	assert.NoError(t, err)

	flow.Previous()
	flow.Previous()

	assert.Equal(t, "basic_info", flow.Current())
	assert.True(t, flow.IsFirst())
}

func TestFlow_GoTo(t *testing.T) {
	flow, err := wizard.New(hotelSteps...)
	assert.NoError(t, err)

	flow.Next()
	flow.Next()

	// backwards to a visited step is allowed
	assert.NoError(t, flow.GoTo("basic_info"))
	assert.Equal(t, "basic_info", flow.Current())

	// forwards within visited range is allowed
	assert.NoError(t, flow.GoTo("amenities"))
	assert.Equal(t, "amenities", flow.Current())

	// skipping ahead is rejected
	err = flow.GoTo("tags")
	assert.ErrorIs(t, err, wizard.ErrStepNotVisited)
	assert.Equal(t, "amenities", flow.Current())

	err = flow.GoTo("checkout")
	assert.ErrorIs(t, err, wizard.ErrUnknownStep)
}

func TestFlow_Resume(t *testing.T) {
	flow, err := wizard.Resume(hotelSteps, "images")
	assert.NoError(t, err)
	assert.Equal(t, "images", flow.Current())

	// everything up to the persisted step counts as visited
	assert.NoError(t, flow.GoTo("location"))

	_, err = wizard.Resume(hotelSteps, "unknown")
	assert.ErrorIs(t, err, wizard.ErrUnknownStep)
}

func TestFlow_Finished(t *testing.T) {
	flow, err := wizard.New(hotelSteps...)
	assert.NoError(t, err)
	assert.False(t, flow.Finished())

	for range len(hotelSteps) - 1 {
		flow.Next()
	}

	assert.True(t, flow.Finished())

	// moving back after finishing does not unfinish the flow
	flow.Previous()
	assert.True(t, flow.Finished())
}

func TestNew_RequiresSteps(t *testing.T) {
	_, err := wizard.New()
	assert.ErrorIs(t, err, wizard.ErrNoSteps)
}
