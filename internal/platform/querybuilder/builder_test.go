package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("squads").
		Where(Eq("user_id", "u1"), IsNotNull("name")).
		OrderBy("created_at").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, name FROM squads WHERE user_id = $1 AND name IS NOT NULL ORDER BY created_at LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ForUpdate(t *testing.T) {
	query, args, err := Select("id", "user_id").
		From("squads").
		Where(Eq("public_id", "s1")).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, user_id FROM squads WHERE public_id = $1 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("players").Where(InStrings("public_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("squad_slots").
		Columns("squad_id", "slot_id").
		Values(int64(1), "GK_1").
		Values(int64(1), "DF_1").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO squad_slots (squad_id, slot_id) VALUES ($1, $2), ($3, $4) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "DF_1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := Update("squads").
		Set("is_active", false).
		SetExpr("updated_at", "GREATEST(updated_at, ?)", at).
		Where(Eq("user_id", "u1"), NotEq("public_id", "s1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE squads SET is_active = $1, updated_at = GREATEST(updated_at, $2) WHERE user_id = $3 AND public_id <> $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != false || args[2] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateAndDeleteRequireWhere(t *testing.T) {
	if _, _, err := Update("squads").Set("name", "x").ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped update")
	}
	if _, _, err := DeleteFrom("squads").ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped delete")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("squads").Where(Eq("public_id", "s1"), Eq("user_id", "u1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM squads WHERE public_id = $1 AND user_id = $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		SquadID int64  `db:"squad_id"`
		SlotID  string `db:"slot_id"`
		Skip    string `db:"-"`
		hidden  string
	}

	query, args, err := InsertModels("squad_slots", "", row{SquadID: 7, SlotID: "GK_1", hidden: "x"}, row{SquadID: 7, SlotID: "BENCH_1"})
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}
	wantQuery := "INSERT INTO squad_slots (squad_id, slot_id) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[1] != "GK_1" || args[3] != "BENCH_1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row]("squad_slots", ""); err == nil {
		t.Fatalf("expected error for no models")
	}
}
