package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/fortune/common/id"
	"basegraph.app/fortune/common/llm"
	"basegraph.app/fortune/core/config"
	"basegraph.app/fortune/internal/http/dto"
	"basegraph.app/fortune/internal/http/middleware"
	"basegraph.app/fortune/internal/http/router"
	"basegraph.app/fortune/internal/model"
	"basegraph.app/fortune/internal/service"
)

type stubGenerator struct {
	text      string
	err       error
	panicWith any
}

func (s *stubGenerator) Generate(ctx context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &llm.GenerateResponse{Text: s.text}, nil
}

func (s *stubGenerator) Provider() string { return "stub" }
func (s *stubGenerator) Model() string    { return "stub-model" }
func (s *stubGenerator) Close() error     { return nil }

var _ = Describe("Engine", func() {
	var (
		gen    *stubGenerator
		mode   model.FortuneMode
		engine *gin.Engine
	)

	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
		gin.SetMode(gin.TestMode)
		gen = &stubGenerator{}
		mode = model.FortuneModeStructured
	})

	JustBeforeEach(func() {
		services := service.NewServices(service.ServicesConfig{
			Generator:      gen,
			FortuneMode:    mode,
			FortuneTimeout: time.Second,
		})

		var err error
		engine, err = router.NewEngine(config.Config{
			Env:  "test",
			CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
		}, services)
		Expect(err).NotTo(HaveOccurred())
	})

	postFortune := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/fortune", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	It("serves the health check", func() {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"status":"ok"}`))
	})

	Context("in structured mode", func() {
		It("relays the parsed provider JSON", func() {
			gen.text = `{"header":"오늘은 차분한 하루","body":"잠시 하늘을 올려다보세요. 작은 여유가 큰 힘이 됩니다."}`

			w := postFortune()

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(gen.text))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
			Expect(w.Header().Get(middleware.RequestIDHeader)).NotTo(BeEmpty())
		})

		It("returns 500 when the provider text is not JSON", func() {
			gen.text = "오늘은 좋은 하루!"

			w := postFortune()

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(Equal(dto.FortuneErrorMessage))
		})
	})

	Context("in free-form mode", func() {
		BeforeEach(func() {
			mode = model.FortuneModeFreeform
		})

		It("wraps the provider text", func() {
			gen.text = "오늘은 하늘을 한 번 올려다보세요."

			w := postFortune()

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]string
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(Equal(map[string]string{"fortune": gen.text}))
		})

		It("relays blank provider text unchanged", func() {
			gen.text = " \n"

			w := postFortune()

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"fortune":" \n"}`))
		})
	})

	It("returns 500 with the static message on a network error", func() {
		gen.err = errors.New("dial tcp 142.250.0.1:443: connect: network is unreachable")

		w := postFortune()

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(Equal("운세를 생성하는 중에 문제가 발생했습니다."))
	})

	It("answers a panicking provider with the static plain-text 500", func() {
		gen.panicWith = "nil map write"

		w := postFortune()

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Header().Get("Content-Type")).To(HavePrefix("text/plain"))
		Expect(w.Body.String()).To(Equal(dto.FortuneErrorMessage))
		Expect(w.Header().Get(middleware.RequestIDHeader)).NotTo(BeEmpty())
	})

	It("does not route other methods to the fortune handler", func() {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fortune", nil))

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
