package domain

// Phase is the derived client-facing phase of a room. It is never stored:
// shells recompute it from the current snapshot on every change notification,
// which keeps them self-healing against missed or reordered events.
type Phase string

const (
	PhaseLobby          Phase = "lobby"
	PhaseRoleReveal     Phase = "role_reveal"
	PhaseRevealWait     Phase = "reveal_wait"
	PhaseVoting         Phase = "voting"
	PhaseVoteResult     Phase = "vote_result"
	PhaseVoteConclusion Phase = "vote_conclusion"
	PhaseGameOver       Phase = "game_over"
	PhaseSessionEnded   Phase = "session_ended"
)

// DerivePhase computes the phase for one client from a full snapshot.
// clientAcked is whether the calling client's own game player has confirmed
// their role; it distinguishes "look at your role" from "waiting for the
// others" during reveal. The stored rows win over the stored status where
// they are ahead of it: a reveal game whose players have all acknowledged is
// already voting, and a voting round with a written outcome is already at the
// tally.
func DerivePhase(room *Room, game *Game, round *Round, gamePlayers []*GamePlayer, clientAcked bool) Phase {
	if room == nil {
		return PhaseLobby
	}
	switch room.Status {
	case RoomStatusFinished:
		return PhaseSessionEnded
	case RoomStatusWaiting:
		return PhaseLobby
	}

	if game == nil {
		return PhaseLobby
	}

	switch game.Status {
	case GameStatusReveal:
		if len(gamePlayers) > 0 && allAcknowledged(gamePlayers) {
			return PhaseVoting
		}
		if clientAcked {
			return PhaseRevealWait
		}
		return PhaseRoleReveal
	case GameStatusVoting:
		if round.Resolved() {
			return PhaseVoteResult
		}
		return PhaseVoting
	case GameStatusVoteResult:
		return PhaseVoteResult
	case GameStatusVoteConclusion:
		return PhaseVoteConclusion
	case GameStatusOver:
		return PhaseGameOver
	default:
		return PhaseLobby
	}
}

func allAcknowledged(gamePlayers []*GamePlayer) bool {
	for _, gp := range gamePlayers {
		if !gp.RoleAcknowledged {
			return false
		}
	}
	return true
}
