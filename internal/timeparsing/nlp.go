package timeparsing

import (
	"fmt"
	"sync"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	nlpParser *when.Parser
	nlpOnce   sync.Once
)

func initNLP() {
	nlpParser = when.New(nil)
	nlpParser.Add(en.All...)
	nlpParser.Add(common.All...)
}

// ParseNaturalLanguage parses natural-language date expressions like
// "tomorrow", "next monday", or "in 3 days" relative to now.
// The whole input must be a date expression; partial matches are rejected
// so that free-text plan fields don't accidentally parse.
func ParseNaturalLanguage(s string, now time.Time) (time.Time, error) {
	nlpOnce.Do(initNLP)

	r, err := nlpParser.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("natural language parse: %w", err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("not a date expression: %q", s)
	}
	if r.Index != 0 || len(r.Text) != len(s) {
		return time.Time{}, fmt.Errorf("trailing text around date expression: %q", s)
	}
	return r.Time, nil
}
