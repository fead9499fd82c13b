package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePhase(t *testing.T) {
	room := NewRoom("host-client")
	game := NewGame(room.ID, "lantern")

	tests := []struct {
		name        string
		roomStatus  RoomStatus
		gameStatus  GameStatus
		withGame    bool
		clientAcked bool
		want        Phase
	}{
		{name: "waiting room is lobby", roomStatus: RoomStatusWaiting, want: PhaseLobby},
		{name: "finished room wins over everything", roomStatus: RoomStatusFinished, withGame: true, gameStatus: GameStatusVoting, want: PhaseSessionEnded},
		{name: "playing without game falls back to lobby", roomStatus: RoomStatusPlaying, want: PhaseLobby},
		{name: "reveal before own ack", roomStatus: RoomStatusPlaying, withGame: true, gameStatus: GameStatusReveal, want: PhaseRoleReveal},
		{name: "reveal after own ack", roomStatus: RoomStatusPlaying, withGame: true, gameStatus: GameStatusReveal, clientAcked: true, want: PhaseRevealWait},
		{name: "voting", roomStatus: RoomStatusPlaying, withGame: true, gameStatus: GameStatusVoting, want: PhaseVoting},
		{name: "vote result", roomStatus: RoomStatusPlaying, withGame: true, gameStatus: GameStatusVoteResult, want: PhaseVoteResult},
		{name: "vote conclusion", roomStatus: RoomStatusPlaying, withGame: true, gameStatus: GameStatusVoteConclusion, want: PhaseVoteConclusion},
		{name: "game over", roomStatus: RoomStatusPlaying, withGame: true, gameStatus: GameStatusOver, want: PhaseGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room.Status = tt.roomStatus
			var g *Game
			if tt.withGame {
				game.Status = tt.gameStatus
				g = game
			}

			got := DerivePhase(room, g, nil, nil, tt.clientAcked)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerivePhase_NilRoom(t *testing.T) {
	assert.Equal(t, PhaseLobby, DerivePhase(nil, nil, nil, nil, false))
}

func TestDerivePhase_StoredRowsWinOverStatus(t *testing.T) {
	room := NewRoom("host-client")
	room.Status = RoomStatusPlaying
	game := NewGame(room.ID, "lantern")

	acked := NewGamePlayer(game.ID, NewPlayer(room.ID, "c-1", "One").ID)
	acked.RoleAcknowledged = true
	pending := NewGamePlayer(game.ID, NewPlayer(room.ID, "c-2", "Two").ID)

	// Reveal with an outstanding ack stays in reveal.
	game.Status = GameStatusReveal
	assert.Equal(t, PhaseRoleReveal, DerivePhase(room, game, nil, []*GamePlayer{acked, pending}, false))

	// Everyone acknowledged: effectively voting even before the status write.
	pending.RoleAcknowledged = true
	assert.Equal(t, PhaseVoting, DerivePhase(room, game, nil, []*GamePlayer{acked, pending}, false))

	// A voting round that already carries an outcome shows the tally.
	game.Status = GameStatusVoting
	round := NewRound(game.ID, 1)
	assert.Equal(t, PhaseVoting, DerivePhase(room, game, round, []*GamePlayer{acked, pending}, true))

	victim := acked.PlayerID
	round.EliminatedPlayerID = &victim
	assert.Equal(t, PhaseVoteResult, DerivePhase(room, game, round, []*GamePlayer{acked, pending}, true))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABC234", NormalizeCode("  abc234 "))
	assert.Equal(t, "QWERTY", NormalizeCode("qWeRtY"))
}

func TestNewRoomCode(t *testing.T) {
	room := NewRoom("host")
	assert.Len(t, room.Code, 6)
	for _, r := range room.Code {
		assert.Contains(t, codeAlphabet, string(r))
	}
	assert.True(t, room.IsHost("host"))
	assert.False(t, room.IsHost("guest"))
	assert.False(t, room.IsHost(""))
}
