package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("resource", "body").
		From("content_documents").
		Where(Eq("resource", "news"), Eq("body", "[]")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT resource, body FROM content_documents WHERE resource = $1 AND body = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "news" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Select("body").ToSQL(); err == nil {
		t.Fatalf("expected error for select without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("content_documents").
		Columns("resource", "body").
		Values("teams", "[]").
		Suffix("ON CONFLICT (resource) DO UPDATE SET body = EXCLUDED.body").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO content_documents (resource, body) VALUES ($1, $2) ON CONFLICT (resource) DO UPDATE SET body = EXCLUDED.body"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "teams" || args[1] != "[]" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_ValueCountMismatch(t *testing.T) {
	if _, _, err := InsertInto("content_documents").Columns("resource", "body").Values("news").ToSQL(); err == nil {
		t.Fatalf("expected error when values do not match columns")
	}
}

func TestSelectBuilder_ForUpdate(t *testing.T) {
	query, args, err := Select("body").
		From("content_documents").
		Where(Eq("resource", "prediction")).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT body FROM content_documents WHERE resource = $1 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "prediction" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("content_documents").
		Where(Eq("resource", "prediction")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM content_documents WHERE resource = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "prediction" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("content_documents").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where clause")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Resource string `db:"resource"`
		Body     string `db:"body"`
		Ignored  string
	}

	query, args, err := InsertModel("content_documents", row{Resource: "news", Body: "[]"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO content_documents (resource, body) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "news" || args[1] != "[]" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_SkipsReadonlyColumns(t *testing.T) {
	type row struct {
		Resource  string `db:"resource"`
		Body      string `db:"body"`
		UpdatedAt string `db:"updated_at,readonly"`
		internal  string `db:"internal"`
	}

	query, args, err := InsertModel("content_documents", &row{Resource: "teams", Body: "[]", UpdatedAt: "now", internal: "x"}, "ON CONFLICT (resource) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	wantQuery := "INSERT INTO content_documents (resource, body) VALUES ($1, $2) ON CONFLICT (resource) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("content_documents", "teams", ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *struct {
		Resource string `db:"resource"`
	}
	if _, _, err := InsertModel("content_documents", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("content_documents", struct{ Name string }{Name: "x"}, ""); err == nil {
		t.Fatalf("expected error for model without db columns")
	}
}
