package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/writespace/writespace/internal/compress"
	"github.com/writespace/writespace/internal/editor"
	"github.com/writespace/writespace/internal/store"
	"github.com/writespace/writespace/internal/tester"
)

func draftWithBody(t *testing.T, body string) *editor.Draft {
	t.Helper()

	doc, err := editor.ParseHTML(body)
	assert.NoError(t, err)

	draft := editor.NewDraft(uuid.New())
	draft.SetTitle("A Title")
	draft.SetSubtitle("a subtitle")
	draft.SetBody(doc)
	return draft
}

func TestDocumentService_SaveAndLoad(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	svc := NewDocumentService(compress.NewNop(), store.NewGormStore(tester.TestDB()), tester.Cache())

	draft := draftWithBody(t, `<p>Hello <strong>bold</strong> world</p><img src="https://x.test/a.png">`)

	id, err := svc.SaveDocument(context.TODO(), draft)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	loaded, err := svc.LoadDocument(context.TODO(), id)
	assert.NoError(t, err)
	assert.Equal(t, "A Title", loaded.Title)
	assert.Equal(t, "a subtitle", loaded.Subtitle)
	assert.Equal(t, draft.BodyHTML(), loaded.BodyHTML())
	assert.Equal(t, "en", loaded.Language)
	assert.False(t, loaded.Published)
}

func TestDocumentService_SaveCompressedRoundTrip(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	for _, name := range []string{"gzip", "zstd", "brotli"} {
		t.Run(name, func(t *testing.T) {
			codec, err := compress.ForName(name)
			assert.NoError(t, err)

			svc := NewDocumentService(codec, store.NewGormStore(tester.TestDB()), tester.Cache())
			draft := draftWithBody(t, "<p>compressed body content</p>")

			id, err := svc.SaveDocument(context.TODO(), draft)
			assert.NoError(t, err)

			loaded, err := svc.LoadDocument(context.TODO(), id)
			assert.NoError(t, err)
			assert.Equal(t, "<p>compressed body content</p>", loaded.BodyHTML())
		})
	}
}

func TestDocumentService_UpdateSnapshotsRevision(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	svc := NewDocumentService(compress.NewNop(), store.NewGormStore(tester.TestDB()), tester.Cache())

	draft := draftWithBody(t, "<p>first</p>")
	id, err := svc.SaveDocument(context.TODO(), draft)
	assert.NoError(t, err)
	draft.ID = &id

	doc, err := editor.ParseHTML("<p>second</p>")
	assert.NoError(t, err)
	draft.SetBody(doc)

	_, err = svc.SaveDocument(context.TODO(), draft)
	assert.NoError(t, err)

	revisions, err := svc.ListRevisions(context.TODO(), id)
	assert.NoError(t, err)
	assert.Len(t, revisions, 1)
	assert.Equal(t, "<p>first</p>", revisions[0].Content)
	assert.Equal(t, int64(0), revisions[0].Revision)

	loaded, err := svc.LoadDocument(context.TODO(), id)
	assert.NoError(t, err)
	assert.Equal(t, "<p>second</p>", loaded.BodyHTML())
}

func TestDocumentService_RestoreRevision(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	svc := NewDocumentService(compress.NewNop(), store.NewGormStore(tester.TestDB()), tester.Cache())

	draft := draftWithBody(t, "<p>first</p>")
	id, err := svc.SaveDocument(context.TODO(), draft)
	assert.NoError(t, err)
	draft.ID = &id

	doc, err := editor.ParseHTML("<p>second</p>")
	assert.NoError(t, err)
	draft.SetBody(doc)
	_, err = svc.SaveDocument(context.TODO(), draft)
	assert.NoError(t, err)

	assert.NoError(t, svc.RestoreRevision(context.TODO(), id, 0))

	loaded, err := svc.LoadDocument(context.TODO(), id)
	assert.NoError(t, err)
	assert.Equal(t, "<p>first</p>", loaded.BodyHTML())

	// the restore itself is undoable, the replaced row was snapshotted
	revisions, err := svc.ListRevisions(context.TODO(), id)
	assert.NoError(t, err)
	assert.Len(t, revisions, 2)
}

func TestDocumentService_LoadMissing(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	svc := NewDocumentService(compress.NewNop(), store.NewGormStore(tester.TestDB()), tester.Cache())

	_, err := svc.LoadDocument(context.TODO(), uuid.New())
	assert.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	svc := NewDocumentService(compress.NewNop(), store.NewGormStore(tester.TestDB()), tester.Cache())

	draft := draftWithBody(t, "<p>gone soon</p>")
	id, err := svc.SaveDocument(context.TODO(), draft)
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteDocument(context.TODO(), id))

	_, err = svc.LoadDocument(context.TODO(), id)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestDocumentService_ListDocuments(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	svc := NewDocumentService(compress.NewNop(), store.NewGormStore(tester.TestDB()), tester.Cache())

	author := uuid.New()
	for _, body := range []string{"<p>one</p>", "<p>two</p>"} {
		doc, err := editor.ParseHTML(body)
		assert.NoError(t, err)

		draft := editor.NewDraft(author)
		draft.SetTitle("A Title")
		draft.SetBody(doc)

		_, err = svc.SaveDocument(context.TODO(), draft)
		assert.NoError(t, err)
	}

	articles, err := svc.ListDocuments(context.TODO(), author)
	assert.NoError(t, err)
	assert.Len(t, articles, 2)

	other, err := svc.ListDocuments(context.TODO(), uuid.New())
	assert.NoError(t, err)
	assert.Len(t, other, 0)
}
