package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/pipeline"
	"github.com/ppiankov/clarity/internal/rules"
	"github.com/ppiankov/clarity/internal/server"
)

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func serverConfig() model.ServerConfig {
	cfg := model.DefaultConfig().Server
	cfg.MaxBodyBytes = 4096
	return cfg
}

var _ = Describe("Handler", func() {
	var router *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		cfg := model.DefaultConfig()
		p := pipeline.NewPipeline(cfg, rules.Default(), nil, pipeline.WithGrammarService(nil))
		router = server.NewRouter(serverConfig(), p, nil)
	})

	It("reports health", func() {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"ok"`))
	})

	Describe("POST /api/grammar-check", func() {
		It("returns local matches with document offsets", func() {
			w := post(router, "/api/grammar-check", `{"text":"Hello world. She have three cats."}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp server.GrammarResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Source).To(Equal(model.GrammarSourceLocal))
			Expect(resp.Matches).To(HaveLen(1))
			Expect(resp.Matches[0].Offset).To(Equal(13))
			Expect(resp.Matches[0].Category).To(Equal(model.CategoryGrammar))
			Expect(resp.Sentences).To(HaveLen(2))
			Expect(resp.Sentences[1].Issues).To(HaveLen(1))
		})

		It("returns empty matches for empty text", func() {
			w := post(router, "/api/grammar-check", `{"text":""}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"matches":[]`))
			Expect(w.Body.String()).To(ContainSubstring(`"source":"none"`))
		})

		It("returns 400 on malformed JSON", func() {
			w := post(router, "/api/grammar-check", `{`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 413 when the body exceeds the limit", func() {
			body := `{"text":"` + strings.Repeat("a", 5000) + `"}`
			w := post(router, "/api/grammar-check", body)
			Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
		})
	})

	Describe("POST /api/voice-converter", func() {
		It("classifies and converts each sentence", func() {
			w := post(router, "/api/voice-converter", `{"text":"The meal was cooked by the chef. Hi."}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp server.VoiceResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Analyses).To(HaveLen(2))
			Expect(resp.Analyses[0].VoiceType).To(Equal(model.VoicePassive))
			Expect(resp.Analyses[0].Suggestions).To(HaveLen(1))
			Expect(resp.Analyses[0].Suggestions[0].Converted).To(Equal("The chef cooks the meal."))
			Expect(resp.Analyses[1].VoiceType).To(Equal(model.VoiceUnclear))
		})

		It("returns empty analyses for empty text", func() {
			w := post(router, "/api/voice-converter", `{"text":"   "}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"analyses":[]`))
		})
	})

	Describe("POST /api/ambiguity-check", func() {
		It("flags ambiguous words with a clarity score", func() {
			w := post(router, "/api/ambiguity-check", `{"text":"I saw it there."}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp server.AmbiguityResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Analyses).To(HaveLen(1))
			Expect(resp.Analyses[0].ClarityScore).To(Equal(60))

			words := []string{}
			for _, a := range resp.Analyses[0].Ambiguities {
				words = append(words, a.Word)
			}
			Expect(words).To(Equal([]string{"it", "there"}))
		})
	})

	Describe("POST /api/analyze", func() {
		It("returns the full report", func() {
			w := post(router, "/api/analyze", `{"text":"She have three cats. It was there.","language":"en-gb"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			var report model.Report
			Expect(json.Unmarshal(w.Body.Bytes(), &report)).To(Succeed())
			Expect(report.ID).NotTo(BeEmpty())
			Expect(report.Source).To(Equal("api"))
			Expect(report.Language).To(Equal("en-GB"))
			Expect(report.Sentences).To(HaveLen(2))
			Expect(report.Summary.Clarity).NotTo(BeNil())
		})
	})
})

type stubAnalyzer struct {
	deadline bool
}

func (s *stubAnalyzer) AnalyzeGrammar(ctx context.Context, text, lang, style string) model.GrammarResult {
	_, s.deadline = ctx.Deadline()
	return model.GrammarResult{Issues: []model.Issue{}, Source: model.GrammarSourceNone, Sentences: []model.SentenceGrammar{}}
}

func (s *stubAnalyzer) AnalyzeVoice(text string) model.VoiceResult {
	panic("voice exploded")
}

func (s *stubAnalyzer) AnalyzeAmbiguity(text string) model.AmbiguityResult {
	return model.AmbiguityResult{}
}

func (s *stubAnalyzer) Analyze(ctx context.Context, req model.Request) *model.Report {
	return &model.Report{}
}

var _ = Describe("Middleware", func() {
	var (
		router http.Handler
		stub   *stubAnalyzer
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		stub = &stubAnalyzer{}
		router = server.NewRouter(serverConfig(), stub, nil)
	})

	It("recovers from handler panics with 500", func() {
		w := post(router, "/api/voice-converter", `{"text":"boom"}`)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("internal server error"))
	})

	It("bounds the request context", func() {
		w := post(router, "/api/grammar-check", `{"text":"x"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(stub.deadline).To(BeTrue())
	})
})

var _ = Describe("Server", func() {
	It("serves without a logger", func() {
		gin.SetMode(gin.TestMode)
		cfg := serverConfig()

		for _, h := range []http.Handler{
			server.New(cfg, &stubAnalyzer{}, nil).Handler(),
			server.NewRouter(cfg, &stubAnalyzer{}, nil),
		} {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))

			w = post(h, "/api/voice-converter", `{"text":"boom"}`)
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		}
	})

	It("shuts down when the context is cancelled", func() {
		cfg := serverConfig()
		cfg.Addr = "127.0.0.1:0"
		srv := server.New(cfg, &stubAnalyzer{}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx) }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
	})
})
