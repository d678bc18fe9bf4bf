package model

const (
	PlanFree = "free"
	PlanPro  = "pro"

	// FreeProjectLimit is the project ceiling for the free tier.
	FreeProjectLimit = 3
)

func IsValidPlan(plan string) bool {
	return plan == PlanFree || plan == PlanPro
}

// CanCreateProject decides whether an owner on the given plan may create
// another project when they already have projectCount of them.
func CanCreateProject(plan string, projectCount int) bool {
	return plan != PlanFree || projectCount < FreeProjectLimit
}
