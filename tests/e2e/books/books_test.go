//go:build e2e

package books_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"bookride-api/tests/common/authtest"
	"bookride-api/tests/common/builder"
	"bookride-api/tests/common/httptest"
	"bookride-api/tests/common/testutil"
	"bookride-api/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookJSON = `{"id": 1, "title": "1984", "author": "George Orwell", "price": 9.99, "in_stock": true}`

type booksSuite struct {
	e2e.SharedSuite
	token string
}

func TestBooksSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(booksSuite))
}

func (s *booksSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	s.token = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "reader@example.com", "")
}

func (s *booksSuite) headers(kv ...string) map[string]string {
	h := map[string]string{
		"Authorization": "Bearer " + s.token,
		"Content-Type":  "application/json",
	}
	for i := 0; i+1 < len(kv); i += 2 {
		h[kv[i]] = kv[i+1]
	}
	return h
}

func (s *booksSuite) TestBookLifecycle() {
	s.Run("保存した本を各形式で取得できる", func() {
		t := s.T()

		w := httptest.PerformRaw(t, s.Router, http.MethodPost, "/books", []byte(bookJSON), s.headers())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.Equal(t, "1984", created["title"])
		require.Equal(t, 9.99, created["price"])
		httptest.AssertRendered(t, w, "application/json")

		got := httptest.PerformRaw(t, s.Router, http.MethodGet, "/books/1", nil, s.headers("Accept", "application/xml"))
		require.Equal(t, http.StatusOK, got.Code, got.Body.String())
		httptest.AssertRendered(t, got, "application/xml")
		require.Contains(t, got.Body.String(), "George Orwell")

		list := httptest.PerformRaw(t, s.Router, http.MethodGet, "/books", nil, s.headers())
		require.Equal(t, http.StatusOK, list.Code)
		var books []map[string]any
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &books))
		require.Len(t, books, 1)
	})

	s.Run("同じIDの保存は上書きになる", func() {
		t := s.T()

		first := httptest.PerformRaw(t, s.Router, http.MethodPost, "/books", []byte(bookJSON), s.headers())
		require.Equal(t, http.StatusCreated, first.Code)

		updated := `{"id": 1, "title": "Animal Farm", "author": "George Orwell", "price": 5, "in_stock": false}`
		second := httptest.PerformRaw(t, s.Router, http.MethodPost, "/books", []byte(updated), s.headers())
		require.Equal(t, http.StatusCreated, second.Code)

		list := httptest.PerformRaw(t, s.Router, http.MethodGet, "/books", nil, s.headers())
		var books []map[string]any
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &books))
		require.Len(t, books, 1)
		require.Equal(t, "Animal Farm", books[0]["title"])
	})
}

func (s *booksSuite) TestBookErrors() {
	s.Run("受け入れ不可のAcceptでは保存されない", func() {
		t := s.T()

		w := httptest.PerformRaw(t, s.Router, http.MethodPost, "/books", []byte(bookJSON), s.headers("Accept", "text/html"))
		httptest.AssertErrorResponse(t, w, http.StatusNotAcceptable, "Not Acceptable")

		got := httptest.PerformRaw(t, s.Router, http.MethodGet, "/books/1", nil, s.headers())
		httptest.AssertErrorResponse(t, got, http.StatusNotFound, "Book not found")
	})

	s.Run("負の価格はschema_validation", func() {
		body := testutil.JSONBody(s.T(), builder.NewBookBuilder().BuildJSON(), testutil.Field("price", -1))
		w := httptest.PerformRaw(s.T(), s.Router, http.MethodPost, "/books", body, s.headers())

		p := httptest.AssertProblem(s.T(), w, http.StatusUnprocessableEntity, "schema_validation")
		require.NotNil(s.T(), p.Path)
		require.Equal(s.T(), []string{"price"}, *p.Path)
	})

	s.Run("int32を超えるIDは保存されない", func() {
		body := testutil.JSONBody(s.T(), builder.NewBookBuilder().BuildJSON(), testutil.Field("id", int64(3000000000)))
		w := httptest.PerformRaw(s.T(), s.Router, http.MethodPost, "/books", body, s.headers("Accept", "application/x-protobuf"))

		p := httptest.AssertProblem(s.T(), w, http.StatusUnprocessableEntity, "schema_validation")
		require.NotNil(s.T(), p.Path)
		require.Equal(s.T(), []string{"id"}, *p.Path)

		got := httptest.PerformRaw(s.T(), s.Router, http.MethodGet, "/books/3000000000", nil, s.headers())
		httptest.AssertErrorResponse(s.T(), got, http.StatusNotFound, "Book not found")
	})

	s.Run("Protobufの一覧は406", func() {
		w := httptest.PerformRaw(s.T(), s.Router, http.MethodGet, "/books", nil, s.headers("Accept", "application/x-protobuf"))
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotAcceptable, "Protobuf not supported for book lists")
	})

	s.Run("トークンなしは401", func() {
		w := httptest.PerformRaw(s.T(), s.Router, http.MethodGet, "/books", nil, nil)
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
		require.Equal(s.T(), "Bearer", w.Header().Get("WWW-Authenticate"))
	})
}

func (s *booksSuite) TestUserFixture() {
	s.Run("パートナー権限のユーザーも本を参照できる", func() {
		t := s.T()
		partner := authtest.CreateAndLogin(t, s.DB, s.Router, "partner@example.com", "partner.rentals")

		w := httptest.PerformRaw(t, s.Router, http.MethodGet, "/books", nil, map[string]string{"Authorization": "Bearer " + partner})
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, "[]", w.Body.String())
	})
}
