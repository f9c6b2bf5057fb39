package enforcement

// Action identifies a gated operation performed by an external collaborator.
type Action string

const (
	ActionSendMessage   Action = "SEND_MESSAGE"
	ActionStartCall     Action = "START_CALL"
	ActionWithdraw      Action = "WITHDRAW"
	ActionTopup         Action = "TOPUP"
	ActionCreateListing Action = "CREATE_LISTING"
	ActionAcceptQuest   Action = "ACCEPT_QUEST"
	ActionViewOwnData   Action = "VIEW_OWN_DATA"
	ActionSubmitAppeal  Action = "SUBMIT_APPEAL"
)

// Actions lists every gated action the matrix knows about.
var Actions = []Action{
	ActionSendMessage,
	ActionStartCall,
	ActionWithdraw,
	ActionTopup,
	ActionCreateListing,
	ActionAcceptQuest,
	ActionViewOwnData,
	ActionSubmitAppeal,
}

// Matrix maps (regime, action) to an allow/block answer. Actions absent from
// a regime's block set are allowed, so the lookup is total: every pair has a
// definite answer and the check never fails.
type Matrix struct {
	blocked map[Regime]map[Action]struct{}
}

// DefaultMatrix returns the standard enforcement matrix. VIEW_OWN_DATA and
// SUBMIT_APPEAL are never blocked: a user must always be able to inspect
// their own state and reach the appeal pathway.
func DefaultMatrix() *Matrix {
	return NewMatrix(map[Regime][]Action{
		RegimeNormal:   {},
		RegimeSoftFlag: {},
		RegimeProbation: {
			ActionCreateListing,
			ActionAcceptQuest,
		},
		RegimeRestricted: {
			ActionCreateListing,
			ActionAcceptQuest,
			ActionWithdraw,
			ActionTopup,
		},
		RegimeLockdown: {
			ActionSendMessage,
			ActionStartCall,
			ActionWithdraw,
			ActionTopup,
			ActionCreateListing,
			ActionAcceptQuest,
		},
	})
}

// NewMatrix builds a Matrix from per-regime block lists.
func NewMatrix(blocks map[Regime][]Action) *Matrix {
	blocked := make(map[Regime]map[Action]struct{}, len(blocks))
	for regime, actions := range blocks {
		set := make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			set[a] = struct{}{}
		}
		blocked[regime] = set
	}
	return &Matrix{blocked: blocked}
}

// IsAllowed reports whether action is permitted under regime. Never blocks
// the always-available actions, regardless of configuration.
func (m *Matrix) IsAllowed(regime Regime, action Action) bool {
	if action == ActionViewOwnData || action == ActionSubmitAppeal {
		return true
	}
	set, ok := m.blocked[regime]
	if !ok {
		return true
	}
	_, hit := set[action]
	return !hit
}
