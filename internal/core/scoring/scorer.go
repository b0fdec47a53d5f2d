package scoring

import (
	"creditdesk/internal/adapters/persistence/models"
)

// Outcome tells the scorer why a score is being recomputed.
type Outcome int

const (
	// OutcomeCompleted means the loan was fully repaid.
	OutcomeCompleted Outcome = iota
	// OutcomeOverdue means the loan slipped past its repayment date.
	OutcomeOverdue
)

// Scorer recomputes a user's credit score from a loan outcome.
// The formula is a policy, not arithmetic fixed by the domain, so it
// stays behind an interface and is injected into the loan service.
type Scorer interface {
	Compute(user *models.User, loan *models.Loan, outcome Outcome) int
}

// Default scorer tuning
const (
	minCreditScore = 0
	maxCreditScore = 1000

	completedBonus     = 20
	completedAmountCap = 30
	overdueMalus       = 50
	overduePenaltyCap  = 50
)

// DefaultScorer rewards completed loans and punishes overdue ones.
// Completion adds a fixed bonus plus an amount-scaled component;
// going overdue subtracts a fixed malus plus a penalty-scaled
// component. The result is clamped to [0, 1000].
type DefaultScorer struct{}

// NewDefaultScorer creates the default credit scorer
func NewDefaultScorer() *DefaultScorer {
	return &DefaultScorer{}
}

func (s *DefaultScorer) Compute(user *models.User, loan *models.Loan, outcome Outcome) int {
	score := user.CreditScore

	switch outcome {
	case OutcomeCompleted:
		bonus := int(loan.Amount / 1000)
		if bonus > completedAmountCap {
			bonus = completedAmountCap
		}
		score += completedBonus + bonus
	case OutcomeOverdue:
		malus := int(loan.Penalty)
		if malus > overduePenaltyCap {
			malus = overduePenaltyCap
		}
		score -= overdueMalus + malus
	}

	if score < minCreditScore {
		return minCreditScore
	}
	if score > maxCreditScore {
		return maxCreditScore
	}
	return score
}
