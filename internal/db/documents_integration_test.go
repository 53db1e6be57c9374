//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/groepsplan/internal/parsing"
	"github.com/jonathan/groepsplan/internal/quality"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestIntegration_Document_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	teacher := "it-" + uuid.NewString()
	defer func() {
		_, _ = db.pool.Exec(ctx, "DELETE FROM groepsplannen WHERE teacher_id = $1", teacher)
	}()

	raw, err := os.ReadFile("../parsing/testdata/groepsplan.md")
	require.NoError(t, err)
	parsed := parsing.ParseGroepsplanOutput(string(raw))
	vak := "rekenen"

	doc := &Document{
		TeacherID:       teacher,
		Kind:            KindGroepsplan,
		Groep:           parsed.Metadata.Groep,
		Vakgebied:       &vak,
		Prompt:          "prompt",
		RawText:         string(raw),
		Parsed:          parsed,
		Quality:         quality.RunChecks(parsed),
		ComplianceScore: parsed.ComplianceChecks.Overall,
		InspectieProof:  parsed.ComplianceChecks.InspectieProof,
		Attempts:        1,
	}
	require.NoError(t, db.SaveDocument(ctx, doc))
	require.NotEqual(t, uuid.Nil, doc.ID)

	got, err := db.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, teacher, got.TeacherID)
	assert.Equal(t, len(parsed.Sections), len(got.Parsed.Sections))
	assert.Equal(t, parsed.ComplianceChecks.Overall, got.Parsed.ComplianceChecks.Overall)

	list, total, err := db.ListDocuments(ctx, ListDocumentsOptions{TeacherID: teacher, Vakgebied: "rekenen"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, doc.ID, list[0].ID)

	deleted, err := db.DeleteDocument(ctx, doc.ID, "someone-else")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = db.DeleteDocument(ctx, doc.ID, teacher)
	require.NoError(t, err)
	assert.True(t, deleted)

	missing, err := db.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
