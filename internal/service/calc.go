package service

import "github.com/financeflow/api/internal/models"

// ItemRemaining is planned minus actual.
func ItemRemaining(item models.BudgetItem) float64 {
	return item.Planned - item.Actual
}

// ItemProgress is the spent percentage, 0 for a non-positive plan and
// capped at 100.
func ItemProgress(item models.BudgetItem) float64 {
	if item.Planned <= 0 {
		return 0
	}
	progress := 100 * item.Actual / item.Planned
	if progress > 100 {
		return 100
	}
	return progress
}

// GoalProgress is the saved percentage, 0 for a zero target. Unlike item
// progress it is not capped: an overfunded goal reads above 100.
func GoalProgress(goal models.Goal) float64 {
	if goal.TargetAmount == 0 {
		return 0
	}
	return 100 * goal.CurrentAmount / goal.TargetAmount
}

// DecorateBudget fills the derived fields on a budget's items in place.
func DecorateBudget(budget *models.Budget) {
	for i := range budget.Items {
		budget.Items[i].Remaining = ItemRemaining(budget.Items[i])
		budget.Items[i].Progress = ItemProgress(budget.Items[i])
	}
}

// DecorateGoal fills the derived progress field in place.
func DecorateGoal(goal *models.Goal) {
	goal.Progress = GoalProgress(*goal)
}
