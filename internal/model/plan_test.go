package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pawandasila/ai-image-editor/internal/model"
)

func TestCanCreateProject(t *testing.T) {
	cases := []struct {
		name    string
		plan    string
		count   int
		allowed bool
	}{
		{"free under limit", model.PlanFree, 2, true},
		{"free at limit", model.PlanFree, 3, false},
		{"free over limit", model.PlanFree, 5, false},
		{"pro at free limit", model.PlanPro, 3, true},
		{"pro far over", model.PlanPro, 100, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, model.CanCreateProject(tc.plan, tc.count))
		})
	}
}

func TestIsValidPlan(t *testing.T) {
	require.True(t, model.IsValidPlan(model.PlanFree))
	require.True(t, model.IsValidPlan(model.PlanPro))
	require.False(t, model.IsValidPlan("enterprise"))
	require.False(t, model.IsValidPlan(""))
}
