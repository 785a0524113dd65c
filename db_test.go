package featherdb_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featherdb/featherdb.go"
)

type testDoc struct {
	ID    string  `json:"_id,omitempty"`
	Rev   string  `json:"_rev,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestGet(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/inventory/laptop", r.URL.Path)
		w.Write([]byte(`{"_id":"laptop","_rev":"1-abc","name":"Laptop","price":999.99}`))
	}))

	var doc testDoc
	require.NoError(t, client.DB("inventory").Get(context.Background(), "laptop", &doc))
	assert.Equal(t, testDoc{ID: "laptop", Rev: "1-abc", Name: "Laptop", Price: 999.99}, doc)
}

func TestPut(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/inventory/laptop", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"name":"Laptop","price":999.99}`, string(body))

		w.Write([]byte(`{"ok":true,"id":"laptop","rev":"1-abc"}`))
	}))

	meta, err := client.DB("inventory").Put(context.Background(), "laptop", testDoc{Name: "Laptop", Price: 999.99})
	require.NoError(t, err)
	assert.True(t, meta.OK)
	assert.Equal(t, "laptop", meta.ID)
	assert.Equal(t, "1-abc", meta.Rev)
}

func TestCreateDocGeneratesID(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		w.Write([]byte(`{"ok":true,"id":"generated","rev":"1-abc"}`))
	}))

	_, err := client.DB("inventory").CreateDoc(context.Background(), testDoc{Name: "Mouse"})
	require.NoError(t, err)

	// A fresh UUID becomes the document path segment.
	assert.Regexp(t, `^/inventory/[0-9a-f-]{36}$`, gotPath)
}

func TestCreateDocKeepsExplicitID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/inventory/mouse", r.URL.Path)
		w.Write([]byte(`{"ok":true,"id":"mouse","rev":"1-abc"}`))
	}))

	meta, err := client.DB("inventory").CreateDoc(context.Background(), testDoc{ID: "mouse", Name: "Mouse"})
	require.NoError(t, err)
	assert.Equal(t, "mouse", meta.ID)
}

func TestDelete(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "rev=1-abc", r.URL.RawQuery)
		w.Write([]byte(`{"ok":true,"id":"laptop","rev":"2-def"}`))
	}))

	meta, err := client.DB("inventory").Delete(context.Background(), "laptop", "1-abc")
	require.NoError(t, err)
	assert.Equal(t, "2-def", meta.Rev)

	_, err = client.DB("inventory").Delete(context.Background(), "laptop", "")
	require.ErrorIs(t, err, featherdb.ErrMissingRev)
}

func TestBulkDocs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/inventory/_bulk_docs", r.URL.Path)

		var req struct {
			Docs []json.RawMessage `json:"docs"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Docs, 2)

		w.Write([]byte(`[{"ok":true,"id":"a","rev":"1-x"},{"ok":true,"id":"b","rev":"1-y"}]`))
	}))

	metas, err := client.DB("inventory").BulkDocs(context.Background(), []any{
		testDoc{ID: "a", Name: "A"},
		testDoc{ID: "b", Name: "B"},
	})
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "a", metas[0].ID)
	assert.Equal(t, "b", metas[1].ID)
}

func TestAllDocs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/inventory/_all_docs", r.URL.Path)
		// JSON-kind params carry JSON text; raw params carry plain text.
		require.Equal(t, `include_docs=true&keys=["a","b"]`, r.URL.RawQuery)

		w.Write([]byte(`{"total_rows":2,"offset":0,"rows":[` +
			`{"id":"a","key":"a","value":{"rev":"1-x"},"doc":{"_id":"a"}},` +
			`{"id":"b","key":"b","value":{"rev":"1-y"},"doc":{"_id":"b"}}]}`))
	}))

	result, err := client.DB("inventory").AllDocs(context.Background(), featherdb.AllDocsOptions{
		Keys:        []string{"a", "b"},
		IncludeDocs: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalRows)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "1-x", result.Rows[0].Value.Rev)
	assert.NotEmpty(t, result.Rows[0].Doc)
}

func TestCompactAndPurge(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/inventory/_compact":
			require.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte(`{"ok":true}`))
		case "/inventory/_purge":
			w.Write([]byte(`{"purge_seq":"3-p","purged":{"laptop":["1-abc"]}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	db := client.DB("inventory")
	require.NoError(t, db.Compact(context.Background()))

	result, err := db.Purge(context.Background(), map[string][]string{"laptop": {"1-abc"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1-abc"}, result.Purged["laptop"])
}

func TestSecurityRoundTrip(t *testing.T) {
	stored := `{"admins":{"names":["bob"],"roles":[]},"members":{"names":[],"roles":["reader"]}}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/inventory/_security", r.URL.Path)
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			stored = string(body)
			w.Write([]byte(`{"ok":true}`))
			return
		}
		w.Write([]byte(stored))
	}))

	db := client.DB("inventory")
	sec, err := db.Security(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, sec.Admins.Names)

	sec.Members.Names = []string{"alice"}
	require.NoError(t, db.SetSecurity(context.Background(), sec))

	updated, err := db.Security(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, updated.Members.Names)
}

func TestShards(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/inventory/_shards", r.URL.Path)
		w.Write([]byte(`{"shards":{"00000000-7fffffff":["node1"],"80000000-ffffffff":["node2"]}}`))
	}))

	shards, err := client.DB("inventory").Shards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"node1"}, shards.Shards["00000000-7fffffff"])
}

func TestIndexes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Write([]byte(`{"result":"created","id":"_design/a1","name":"by-price"}`))
		case http.MethodGet:
			w.Write([]byte(`{"indexes":[{"ddoc":"_design/a1","name":"by-price","type":"json"}]}`))
		case http.MethodDelete:
			require.Equal(t, "/inventory/_index/_design%2Fa1/json/by-price", r.URL.EscapedPath())
			w.Write([]byte(`{"ok":true}`))
		}
	}))

	db := client.DB("inventory")

	idx, err := db.CreateIndex(context.Background(), "by-price", []string{"price"})
	require.NoError(t, err)
	assert.Equal(t, "by-price", idx.Name)

	indexes, err := db.Indexes(context.Background())
	require.NoError(t, err)
	require.Len(t, indexes, 1)
	assert.Equal(t, "_design/a1", indexes[0].DesignDoc)

	require.NoError(t, db.DeleteIndex(context.Background(), "_design/a1", "by-price"))
}

func TestFind(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/inventory/_find", r.URL.Path)
		w.Write([]byte(`{"docs":[{"_id":"laptop","price":999.99}]}`))
	}))

	docs, err := client.DB("inventory").Find(context.Background(), map[string]any{
		"selector": map[string]any{"price": map[string]any{"$gt": 100}},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestDBInfo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/inventory", r.URL.Path)
		w.Write([]byte(`{"db_name":"inventory","doc_count":42,"update_seq":"42-xyz"}`))
	}))

	info, err := client.DB("inventory").Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.DocCount)
	assert.Equal(t, "42-xyz", info.UpdateSeq)
}
