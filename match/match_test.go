package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"mangala/bot"
	"mangala/game"
	"mangala/searcher"
)

func newTestMatch() *Match {
	return InitializeGame(Config{Mode: PvP, Player1Name: "Test1", Player2Name: "Test2"})
}

func TestInitializeGame(t *testing.T) {
	m := newTestMatch()

	if m.ID.String() == "" {
		t.Fatal("expected a match ID")
	}
	if len(m.Sets) != 1 {
		t.Fatalf("expected 1 set, got %d", len(m.Sets))
	}
	set := m.ActiveSet()
	for i := 0; i < game.NumSlots; i++ {
		want := game.SeedStones
		if i == game.StoreA || i == game.StoreB {
			want = 0
		}
		if set.Board[i] != want {
			t.Errorf("slot %d: expected %d stones, got %d", i, want, set.Board[i])
		}
	}
	if set.CurrentPlayer != game.PlayerA {
		t.Errorf("expected player A to start by default, got %s", set.CurrentPlayer)
	}
	if m.Scores != [2]float64{0, 0} || m.Status != Active {
		t.Errorf("unexpected initial scores/status: %v %s", m.Scores, m.Status)
	}
}

func TestInitializeGameFirstPlayer(t *testing.T) {
	m := InitializeGame(Config{Mode: PvE, BotDifficulty: bot.Hard, FirstPlayer: game.PlayerB})

	if m.ActiveSet().CurrentPlayer != game.PlayerB {
		t.Errorf("expected player B to start, got %s", m.ActiveSet().CurrentPlayer)
	}
}

func TestApplyMove(t *testing.T) {
	m := newTestMatch()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	res, err := m.ApplyMove(0)
	if err != nil {
		t.Fatalf("expected no error for a valid move, got %v", err)
	}

	set := m.ActiveSet()
	if set.Board != res.Board {
		t.Errorf("set board not updated")
	}
	if set.CurrentPlayer != game.PlayerB {
		t.Errorf("expected turn to pass to player B, got %s", set.CurrentPlayer)
	}
	if len(set.Moves) != 1 {
		t.Fatalf("expected 1 recorded move, got %d", len(set.Moves))
	}
	mv := set.Moves[0]
	if mv.Player != game.PlayerA || mv.Pit != 0 || !mv.Timestamp.Equal(fixed) || mv.Board != res.Board {
		t.Errorf("unexpected move record %+v", mv)
	}
}

func TestApplyMoveRejected(t *testing.T) {
	m := newTestMatch()
	before := m.ActiveSet().Board

	_, err := m.ApplyMove(9)
	if !errors.Is(err, game.ErrNotYourRegion) {
		t.Fatalf("expected ErrNotYourRegion, got %v", err)
	}
	set := m.ActiveSet()
	if set.Board != before || set.CurrentPlayer != game.PlayerA || len(set.Moves) != 0 {
		t.Errorf("rejected move should not change the set")
	}
}

func TestApplyMoveExtraTurn(t *testing.T) {
	m := newTestMatch()

	res, err := m.ApplyMove(2)
	if err != nil {
		t.Fatal(err)
	}
	if !res.ExtraTurn || m.ActiveSet().CurrentPlayer != game.PlayerA {
		t.Errorf("expected an extra turn for player A")
	}
	if !m.ActiveSet().Moves[0].ExtraTurn {
		t.Errorf("move record should flag the extra turn")
	}
}

func TestApplyMoveFinishesSet(t *testing.T) {
	m := newTestMatch()
	set := m.ActiveSet()
	for i := 0; i < game.PitsPerRow; i++ {
		set.Board[i] = 0
	}
	set.Board[5] = 1

	res, err := m.ApplyMove(5)
	if err != nil {
		t.Fatal(err)
	}
	if !res.SetFinished || res.Winner != game.WinnerB {
		t.Fatalf("expected set won by B, got finished=%t winner=%s", res.SetFinished, res.Winner)
	}
	if set.Status != Finished || set.Winner != game.WinnerB {
		t.Errorf("finished set not recorded: %s %s", set.Status, set.Winner)
	}
	if len(m.Sets) != 2 || m.CurrentSet != 1 {
		t.Fatalf("expected a second set to start, got %d sets", len(m.Sets))
	}
	if m.Scores[game.PlayerB] != 1 {
		t.Errorf("expected B to score 1, got %v", m.Scores)
	}
	if m.ActiveSet().Board != game.NewBoard() {
		t.Errorf("new set should start from the initial board")
	}
	if got := ValidMoves(set, game.PlayerB); got != nil {
		t.Errorf("finished set should have no valid moves, got %v", got)
	}
}

func TestUpdateScore(t *testing.T) {
	m := newTestMatch()
	outcomes := []game.Winner{game.WinnerA, game.WinnerB, game.Draw, game.WinnerA, game.WinnerA}

	for i, w := range outcomes {
		if err := m.UpdateScore(w); err != nil {
			t.Fatalf("set %d: unexpected error %v", i+1, err)
		}
		if i < len(outcomes)-1 && len(m.Sets) != i+2 {
			t.Errorf("after set %d expected %d sets, got %d", i+1, i+2, len(m.Sets))
		}
	}

	if len(m.Sets) != MaxSets {
		t.Errorf("expected %d sets, got %d", MaxSets, len(m.Sets))
	}
	if m.Scores[game.PlayerA] != 3.5 || m.Scores[game.PlayerB] != 1.5 {
		t.Errorf("expected scores 3.5/1.5, got %v", m.Scores)
	}
	if m.Status != Finished || m.Winner != game.WinnerA {
		t.Errorf("expected match won by A, got %s %s", m.Status, m.Winner)
	}
	for i, set := range m.Sets {
		if set.Status != Finished || set.Winner != outcomes[i] {
			t.Errorf("set %d: expected finished with %s, got %s %s", i+1, outcomes[i], set.Status, set.Winner)
		}
	}

	if err := m.UpdateScore(game.WinnerB); !errors.Is(err, ErrMatchFinished) {
		t.Errorf("expected ErrMatchFinished, got %v", err)
	}
	if _, err := m.ApplyMove(0); !errors.Is(err, ErrMatchFinished) {
		t.Errorf("expected ErrMatchFinished, got %v", err)
	}
}

func TestUpdateScoreDrawnMatch(t *testing.T) {
	m := newTestMatch()
	for _, w := range []game.Winner{game.WinnerA, game.WinnerB, game.Draw, game.WinnerA, game.WinnerB} {
		if err := m.UpdateScore(w); err != nil {
			t.Fatal(err)
		}
	}
	if m.Winner != game.Draw {
		t.Errorf("expected a drawn match, got %s", m.Winner)
	}
}

func TestUpdateScoreInvalidWinner(t *testing.T) {
	m := newTestMatch()
	if err := m.UpdateScore(game.NoWinner); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if m.ActiveSet().Status != Active {
		t.Errorf("set should stay active")
	}
}

func TestBotMove(t *testing.T) {
	m := InitializeGame(Config{Mode: PvE, BotDifficulty: bot.Medium})
	if _, err := m.ApplyMove(0); err != nil {
		t.Fatal(err)
	}
	policy := bot.NewPolicy(nil)

	move, _, err := m.BotMove(context.Background(), policy, m.CurrentSet, bot.Medium, 200*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if !game.PlayerB.Owns(move) {
		t.Fatalf("expected a pit of player B, got %d", move)
	}
	if _, err := m.ApplyMove(move); err != nil {
		t.Errorf("bot move should be legal: %v", err)
	}

	if _, _, err := m.BotMove(context.Background(), policy, 3, bot.Medium, 0); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a missing set, got %v", err)
	}
}

func TestBotMoveFinishedSet(t *testing.T) {
	m := newTestMatch()
	if err := m.UpdateScore(game.WinnerA); err != nil {
		t.Fatal(err)
	}

	move, _, err := m.BotMove(context.Background(), bot.NewPolicy(nil), 0, bot.Easy, 0)
	if err != nil || move != searcher.NoMove {
		t.Errorf("expected NoMove for a finished set, got %d %v", move, err)
	}
}
