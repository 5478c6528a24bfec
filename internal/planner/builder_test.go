package planner_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChipDepot/Bran/internal/planner"
	"github.com/ChipDepot/Bran/internal/types"
)

func TestBuildAdditionOrder_RewritesSingleDatakey(t *testing.T) {
	order := &types.AdditionOrder{Args: []string{"key=topic/raw"}}
	p := planner.ProblemInfo{LocationKey: "roomA", DataRequirementKey: "temp"}

	require.NoError(t, planner.BuildAdditionOrder(order, p))

	assert.Contains(t, order.Args, "temp=topic/raw")
	assert.NotContains(t, order.Args, "key=topic/raw")
	assert.Contains(t, order.Args, "location=roomA")
	assert.Contains(t, order.Args, "topic=temp")

	_, err := uuid.Parse(order.EnvVars["device_uuid"])
	assert.NoError(t, err)
}

func TestBuildAdditionOrder_RewritesEveryMarkerInsideTheMatchedArg(t *testing.T) {
	order := &types.AdditionOrder{Args: []string{"key=a/key=b"}}
	p := planner.ProblemInfo{LocationKey: "roomA", DataRequirementKey: "temp"}

	require.NoError(t, planner.BuildAdditionOrder(order, p))

	assert.Contains(t, order.Args, "temp=a/temp=b")
	assert.NotContains(t, order.Args, "temp=a/key=b")
}

func TestBuildAdditionOrder_NoDatakeyArg(t *testing.T) {
	order := &types.AdditionOrder{Args: []string{"other=value"}}
	p := planner.ProblemInfo{LocationKey: "roomA", DataRequirementKey: "temp"}

	require.NoError(t, planner.BuildAdditionOrder(order, p))

	assert.ElementsMatch(t, order.Args, []string{"other=value", "location=roomA", "topic=temp"})
}

func TestBuildAdditionOrder_AmbiguousDatakeyFails(t *testing.T) {
	order := &types.AdditionOrder{Args: []string{"key=a", "key=b"}}
	p := planner.ProblemInfo{LocationKey: "roomA", DataRequirementKey: "temp"}

	err := planner.BuildAdditionOrder(order, p)
	assert.ErrorIs(t, err, planner.ErrAmbiguousDatakey)
}

func TestBuildAdditionOrder_DoesNotMutateTemplate(t *testing.T) {
	template := &types.AdditionOrder{Args: []string{"key=topic/raw"}}
	clone := template.Clone()

	require.NoError(t, planner.BuildAdditionOrder(clone, planner.ProblemInfo{LocationKey: "roomA", DataRequirementKey: "temp"}))

	assert.Equal(t, []string{"key=topic/raw"}, template.Args)
	assert.Empty(t, template.EnvVars)
}
