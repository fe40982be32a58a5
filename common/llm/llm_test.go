package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/fortune/common/llm"
)

var _ = Describe("New", func() {
	It("requires an API key", func() {
		gen, err := llm.New(context.Background(), llm.Config{Provider: llm.ProviderOpenAI})

		Expect(err).To(MatchError(ContainSubstring("API key is required")))
		Expect(gen).To(BeNil())
	})

	It("rejects unknown providers", func() {
		gen, err := llm.New(context.Background(), llm.Config{Provider: "cohere", APIKey: "k"})

		Expect(err).To(MatchError(ContainSubstring("unsupported LLM provider")))
		Expect(gen).To(BeNil())
	})

	DescribeTable("applies provider default models",
		func(provider, expectedModel string) {
			gen, err := llm.New(context.Background(), llm.Config{Provider: provider, APIKey: "k"})
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(gen.Close)

			Expect(gen.Provider()).To(Equal(provider))
			Expect(gen.Model()).To(Equal(expectedModel))
		},
		Entry("gemini", llm.ProviderGemini, "gemini-2.5-flash"),
		Entry("openai", llm.ProviderOpenAI, "gpt-4o-mini"),
		Entry("anthropic", llm.ProviderAnthropic, "claude-sonnet-4-5-20250929"),
	)

	It("keeps an explicit model name", func() {
		gen, err := llm.New(context.Background(), llm.Config{
			Provider: llm.ProviderGemini,
			APIKey:   "k",
			Model:    "gemini-2.5-pro",
		})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(gen.Close)

		Expect(gen.Model()).To(Equal("gemini-2.5-pro"))
	})
})

var _ = Describe("GenerateSchema", func() {
	type payload struct {
		Header string `json:"header"`
		Body   string `json:"body"`
	}

	It("produces a closed object schema with both properties", func() {
		raw, err := json.Marshal(llm.GenerateSchema[payload]())
		Expect(err).NotTo(HaveOccurred())

		var schema map[string]any
		Expect(json.Unmarshal(raw, &schema)).To(Succeed())
		Expect(schema["type"]).To(Equal("object"))
		Expect(schema["additionalProperties"]).To(BeFalse())
		Expect(schema["properties"]).To(HaveKey("header"))
		Expect(schema["properties"]).To(HaveKey("body"))
		Expect(schema["required"]).To(ConsistOf("header", "body"))
	})
})

var _ = Describe("ErrorAttrs", func() {
	attrMap := func(attrs []any) map[string]any {
		m := make(map[string]any)
		for i := 0; i+1 < len(attrs); i += 2 {
			m[attrs[i].(string)] = attrs[i+1]
		}
		return m
	}

	It("returns nil for nil errors", func() {
		Expect(llm.ErrorAttrs(nil)).To(BeNil())
	})

	DescribeTable("classifies non-API failures",
		func(err error, kind string) {
			attrs := attrMap(llm.ErrorAttrs(err))
			Expect(attrs["failure_kind"]).To(Equal(kind))
			Expect(attrs["error"]).To(Equal(err))
		},
		Entry("deadline", fmt.Errorf("gemini generate content: %w", context.DeadlineExceeded), "timeout"),
		Entry("canceled", fmt.Errorf("openai chat: %w", context.Canceled), "canceled"),
		Entry("empty", fmt.Errorf("gemini: no candidates: %w", llm.ErrEmptyResponse), "empty_response"),
		Entry("network", errors.New("dial tcp: connection refused"), "transport"),
	)
})
