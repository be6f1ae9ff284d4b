package heroapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/Makepad-fr/heroes/internal/model"
	"github.com/Makepad-fr/heroes/internal/store/jsonstore"
)

var fixture = []model.Hero{
	{ID: 1, Name: "SpiderDude", Strength: 8},
	{ID: 2, Name: "Wonderful Woman", Strength: 24},
	{ID: 3, Name: "SuperDude", Strength: 55},
}

func call(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func callAs(h http.Handler, method, target, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeHeroes(rec *httptest.ResponseRecorder) []model.Hero {
	var out []model.Hero
	Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
	return out
}

var _ = Describe("Server", func() {
	var (
		subject *Server
		handler http.Handler
	)

	BeforeEach(func() {
		var err error
		subject, err = New(WithHeroes(fixture))
		Expect(err).To(Succeed())
		handler = subject.Handler()
	})

	Describe("New", func() {
		It("should seed the classic roster by default", func() {
			s, err := New()
			Expect(err).To(Succeed())
			Expect(s.Heroes()).To(Equal(Seed()))
		})
	})

	Describe("GET /api/heroes", func() {
		It("should return every hero in order", func() {
			rec := call(handler, http.MethodGet, "/api/heroes", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(decodeHeroes(rec)).To(Equal(fixture))
		})

		It("should filter by name, case-insensitively", func() {
			rec := call(handler, http.MethodGet, "/api/heroes/?name=dude", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeHeroes(rec)).To(Equal([]model.Hero{fixture[0], fixture[2]}))
		})

		It("should return an empty array when nothing matches", func() {
			rec := call(handler, http.MethodGet, "/api/heroes/?name=zzz", "")
			Expect(rec.Body.String()).To(MatchJSON(`[]`))
		})
	})

	Describe("GET /api/heroes/{id}", func() {
		It("should return the hero", func() {
			rec := call(handler, http.MethodGet, "/api/heroes/3", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"id":3,"name":"SuperDude","strength":55}`))
		})

		It("should 404 for an unknown id", func() {
			rec := call(handler, http.MethodGet, "/api/heroes/42", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(MatchJSON(`{"error":"hero not found"}`))
		})

		It("should 400 for a malformed id", func() {
			rec := call(handler, http.MethodGet, "/api/heroes/abc", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/heroes", func() {
		It("should assign the next id", func() {
			rec := call(handler, http.MethodPost, "/api/heroes", `{"name":"Mr. Ice","strength":4}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(rec.Body.String()).To(MatchJSON(`{"id":4,"name":"Mr. Ice","strength":4}`))
			Expect(subject.Heroes()).To(HaveLen(4))
		})

		It("should ignore a client supplied id", func() {
			rec := call(handler, http.MethodPost, "/api/heroes", `{"id":1,"name":"Mr. Ice"}`)
			Expect(rec.Body.String()).To(MatchJSON(`{"id":4,"name":"Mr. Ice","strength":0}`))
		})

		It("should start at 11 when empty", func() {
			s, err := New(WithHeroes(nil))
			Expect(err).To(Succeed())
			rec := call(s.Handler(), http.MethodPost, "/api/heroes", `{"name":"First"}`)
			Expect(rec.Body.String()).To(MatchJSON(`{"id":11,"name":"First","strength":0}`))
		})

		It("should reject an empty name", func() {
			rec := call(handler, http.MethodPost, "/api/heroes", `{"name":"  "}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring(model.ErrEmptyName.Error()))
		})

		It("should reject a malformed body", func() {
			rec := call(handler, http.MethodPost, "/api/heroes", `{`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /api/heroes/{id}", func() {
		It("should replace the hero and acknowledge", func() {
			rec := call(handler, http.MethodPut, "/api/heroes/2", `{"id":2,"name":"Wonder","strength":30}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{}`))
			Expect(subject.Heroes()[1]).To(Equal(model.Hero{ID: 2, Name: "Wonder", Strength: 30}))
		})

		It("should take the id from the body on the collection route", func() {
			rec := call(handler, http.MethodPut, "/api/heroes", `{"id":1,"name":"Spidey","strength":9}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(subject.Heroes()[0].Name).To(Equal("Spidey"))
		})

		It("should 404 for an unknown id", func() {
			rec := call(handler, http.MethodPut, "/api/heroes/42", `{"name":"Nobody"}`)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should reject an empty name", func() {
			rec := call(handler, http.MethodPut, "/api/heroes/1", `{"name":""}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(subject.Heroes()[0].Name).To(Equal("SpiderDude"))
		})
	})

	Describe("DELETE /api/heroes/{id}", func() {
		It("should remove exactly that hero", func() {
			rec := call(handler, http.MethodDelete, "/api/heroes/3", "")
			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(subject.Heroes()).To(Equal(fixture[:2]))
		})

		It("should 404 for an unknown id", func() {
			rec := call(handler, http.MethodDelete, "/api/heroes/42", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(subject.Heroes()).To(HaveLen(3))
		})
	})

	Describe("unknown routes", func() {
		It("should answer with a JSON 404", func() {
			rec := call(handler, http.MethodGet, "/api/villains", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(ContainSubstring("no route"))
		})
	})

	Describe("WithToken", func() {
		var guarded *Server

		BeforeEach(func() {
			var err error
			guarded, err = New(WithHeroes(fixture), WithToken("Bearer right"))
			Expect(err).To(Succeed())
			handler = guarded.Handler()
		})

		It("should reject a request without a token", func() {
			rec := callAs(handler, http.MethodDelete, "/api/heroes/1", "")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(MatchJSON(`{"error":"missing bearer token"}`))
			Expect(rec.Header().Get("WWW-Authenticate")).To(HavePrefix("Bearer"))
			Expect(guarded.Heroes()).To(HaveLen(3))
		})

		It("should reject a wrong token", func() {
			rec := callAs(handler, http.MethodDelete, "/api/heroes/1", "Bearer wrong")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(MatchJSON(`{"error":"invalid bearer token"}`))
			Expect(guarded.Heroes()).To(HaveLen(3))
		})

		It("should guard reads too", func() {
			rec := callAs(handler, http.MethodGet, "/api/heroes", "")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should accept the right token", func() {
			rec := callAs(handler, http.MethodDelete, "/api/heroes/1", "Bearer right")
			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(guarded.Heroes()).To(Equal(fixture[1:]))
		})

		It("should leave the API open without a token", func() {
			rec := callAs(subject.Handler(), http.MethodDelete, "/api/heroes/1", "")
			Expect(rec.Code).To(Equal(http.StatusNoContent))
		})
	})

	Describe("WithDataFile", func() {
		var dataFile string

		BeforeEach(func() {
			dir, err := os.MkdirTemp("", "heroapi")
			Expect(err).To(Succeed())
			dataFile = filepath.Join(dir, "heroes.json")
		})

		AfterEach(func() {
			os.RemoveAll(filepath.Dir(dataFile))
		})

		It("should seed a missing file", func() {
			_, err := New(WithHeroes(fixture), WithDataFile(dataFile))
			Expect(err).To(Succeed())

			stored, err := jsonstore.Load(dataFile)
			Expect(err).To(Succeed())
			Expect(stored).To(Equal(fixture))
		})

		It("should load an existing file and persist writes", func() {
			Expect(jsonstore.Save(dataFile, fixture[:1])).To(Succeed())

			s, err := New(WithDataFile(dataFile))
			Expect(err).To(Succeed())
			Expect(s.Heroes()).To(Equal(fixture[:1]))

			rec := call(s.Handler(), http.MethodPost, "/api/heroes", `{"name":"Mr. Ice"}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			stored, err := jsonstore.Load(dataFile)
			Expect(err).To(Succeed())
			Expect(stored).To(HaveLen(2))
			Expect(stored[1].Name).To(Equal("Mr. Ice"))
		})

		It("should fail on a corrupt file", func() {
			Expect(os.WriteFile(dataFile, []byte("nope"), 0o644)).To(Succeed())
			_, err := New(WithDataFile(dataFile))
			Expect(err).To(MatchError(ContainSubstring("load data file")))
		})
	})
})
