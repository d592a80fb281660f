package strategy

import (
	"fmt"
	"strings"

	"github.com/prathamdarmwal/ragscope/internal/llm"
	"github.com/prathamdarmwal/ragscope/internal/retriever"
)

const answerSystem = "You are a precise machine-learning tutor. Answer the question using the provided context. If the context does not contain the answer, say so briefly."

const directSystem = "You are a precise machine-learning tutor. Answer the question concisely from your own knowledge."

const gradeSystem = `You grade whether a retrieved document is relevant to a question.
Respond with a JSON object: {"relevant": true} or {"relevant": false}.`

const rewriteSystem = `You rewrite search queries to improve retrieval.
Respond with a JSON object: {"query": "<rewritten query>"}.`

const critiqueSystem = `You check whether an answer is supported by the given context.
Respond with a JSON object: {"supported": true|false, "critique": "<one sentence>"}.`

const routeSystem = `You decide how a question should be answered.
Use "retrieve" when the question needs domain documents, "direct" when general
knowledge suffices. Respond with a JSON object: {"route": "retrieve"} or {"route": "direct"}.`

func answerPrompt(query string, docs []retriever.Document) string {
	var sb strings.Builder
	sb.WriteString("Context:\n")
	sb.WriteString(contextBlock(docs))
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)
	return sb.String()
}

func contextBlock(docs []retriever.Document) string {
	if len(docs) == 0 {
		return "(no documents retrieved)"
	}
	var sb strings.Builder
	for i, d := range docs {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "[%d] %s", i+1, strings.TrimSpace(d.Content))
	}
	return sb.String()
}

func gradePrompt(query string, doc retriever.Document) string {
	return fmt.Sprintf("Question: %s\n\nDocument: %s", query, strings.TrimSpace(doc.Content))
}

func rewritePrompt(query string) string {
	return fmt.Sprintf("Original query: %s", query)
}

func critiquePrompt(query string, docs []retriever.Document, answer string) string {
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nAnswer: %s", contextBlock(docs), query, answer)
}

func revisePrompt(query string, docs []retriever.Document, critique string) string {
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nA previous answer was rejected because: %s\nWrite a corrected answer grounded in the context.", contextBlock(docs), query, critique)
}

func routePrompt(query string) string {
	return fmt.Sprintf("Question: %s", query)
}

func userMessage(content string) []llm.Message {
	return []llm.Message{{Role: "user", Content: content}}
}
