package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Run("single term verbatim", func(t *testing.T) {
		q := Translate("  invoice  ")
		assert.Equal(t, "invoice", q.Raw)
		assert.Equal(t, []string{"invoice"}, q.Terms)
		assert.Equal(t, "invoice", q.Expression)
	})

	t.Run("two terms are OR-joined", func(t *testing.T) {
		q := Translate("report pdf")
		assert.Equal(t, "report | pdf", q.Expression)
		assert.Contains(t, q.Expression, "report")
		assert.Contains(t, q.Expression, "pdf")
		assert.Contains(t, q.Expression, OrOperator)
	})

	t.Run("runs of whitespace collapse", func(t *testing.T) {
		q := Translate("one\ttwo   three\n")
		assert.Equal(t, []string{"one", "two", "three"}, q.Terms)
		assert.Equal(t, "one | two | three", q.Expression)
	})

	t.Run("double quotes are escaped", func(t *testing.T) {
		q := Translate(`say "hi"`)
		assert.Equal(t, `say | \"hi\"`, q.Expression)
		assert.Equal(t, []string{"say", `"hi"`}, q.Terms)
	})

	t.Run("other specials pass through", func(t *testing.T) {
		q := Translate("kMDItemFSName==*.pdf")
		assert.Equal(t, "kMDItemFSName==*.pdf", q.Expression)
	})

	t.Run("blank query is empty", func(t *testing.T) {
		assert.True(t, Translate("   ").Empty())
		assert.True(t, Translate("").Empty())
	})
}
